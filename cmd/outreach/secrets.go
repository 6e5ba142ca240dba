package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"outreach_backend/internal/feature/replies/adapters/imapinbox"
	"outreach_backend/internal/platform/mail"
	"outreach_backend/internal/platform/secrets"
)

// secretsCmd はキーチェーン上のパスワードを管理します
var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Store or remove SMTP/IMAP passwords in the OS keychain",
	Long: `Store or remove SMTP/IMAP passwords in the OS keychain.

The account is derived from SMTP_USERNAME (smtp) or IMAP_USERNAME and IMAP_HOST (imap).
The password is read from the first line of standard input.`,
}

var secretsSetCmd = &cobra.Command{
	Use:       "set <smtp|imap>",
	Short:     "Store a password read from stdin",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"smtp", "imap"},
	RunE:      runSecretsSet,
}

var secretsDeleteCmd = &cobra.Command{
	Use:       "delete <smtp|imap>",
	Short:     "Remove a stored password",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"smtp", "imap"},
	RunE:      runSecretsDelete,
}

func init() {
	secretsCmd.AddCommand(secretsSetCmd, secretsDeleteCmd)
}

func runSecretsSet(cmd *cobra.Command, args []string) error {
	account, err := keyringAccount(args[0])
	if err != nil {
		return err
	}
	password, err := readPassword(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err := secrets.SetPassword(account, password); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored password for %s\n", account)
	return nil
}

func runSecretsDelete(cmd *cobra.Command, args []string) error {
	account, err := keyringAccount(args[0])
	if err != nil {
		return err
	}
	if err := secrets.DeletePassword(account); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted password for %s\n", account)
	return nil
}

// keyringAccount は種類に応じたキーチェーンのアカウント名を返します。
func keyringAccount(kind string) (string, error) {
	switch kind {
	case "smtp":
		cfg := mail.LoadConfig()
		if !cfg.Enabled() {
			return "", errors.New("SMTP_USERNAME is not set")
		}
		return secrets.SMTPAccount(cfg.Username), nil
	case "imap":
		cfg := imapinbox.LoadConfig()
		if !cfg.Enabled() {
			return "", errors.New("IMAP_USERNAME or SMTP_USERNAME is not set")
		}
		return secrets.IMAPAccount(cfg.Username, cfg.Host), nil
	default:
		return "", fmt.Errorf("unknown secret kind %q (want smtp or imap)", kind)
	}
}

func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
