// Package secrets はSMTP/IMAPのパスワードをOSのキーチェーンまたは環境変数から取得します。
package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService はキーチェーン上でこのアプリのシークレットをまとめるサービス名です。
const KeyringService = "outreach"

// ErrNotFound はキーチェーンにも環境変数にもパスワードがないことを示します。
var ErrNotFound = errors.New("password not found (set it in the keychain or via env)")

// Password はキーチェーンの account を優先し、なければ環境変数 envKey の値を返します。
func Password(account, envKey string) (string, error) {
	if strings.TrimSpace(account) != "" {
		pw, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	if envKey != "" {
		if pw := os.Getenv(envKey); strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}
	return "", fmt.Errorf("%s: %w", account, ErrNotFound)
}

// SetPassword はキーチェーンにパスワードを保存します。
func SetPassword(account, password string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, account, password)
}

// DeletePassword はキーチェーンからパスワードを削除します。
func DeletePassword(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}

// SMTPAccount はSMTPユーザーのキーチェーンアカウント名です。
func SMTPAccount(username string) string {
	return "smtp:" + username
}

// IMAPAccount はIMAPユーザーのキーチェーンアカウント名です。
func IMAPAccount(username, host string) string {
	return fmt.Sprintf("imap:%s@%s", username, host)
}
