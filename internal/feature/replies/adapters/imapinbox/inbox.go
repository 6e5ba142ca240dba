// Package imapinbox はIMAPで受信箱を検索するアダプターです。
package imapinbox

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"outreach_backend/internal/feature/replies/usecase"
)

// Config はIMAP接続設定です。
type Config struct {
	Host     string
	Port     string
	Username string
	Mailbox  string
}

// LoadConfig は環境変数からIMAP設定を読み込みます。
// IMAP_USERNAME が未設定の場合は SMTP_USERNAME を使います。
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("IMAP_HOST"),
		Port:     os.Getenv("IMAP_PORT"),
		Username: os.Getenv("IMAP_USERNAME"),
		Mailbox:  os.Getenv("IMAP_MAILBOX"),
	}
	if cfg.Host == "" {
		cfg.Host = "imap.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "993"
	}
	if cfg.Username == "" {
		cfg.Username = os.Getenv("SMTP_USERNAME")
	}
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return cfg
}

// Enabled はIMAPユーザーが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Username != ""
}

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Inbox はIMAP over TLSで受信箱に接続します。
type Inbox struct {
	cfg      Config
	password string
}

var _ usecase.Inbox = (*Inbox)(nil)

// New はInboxの新しいインスタンスを生成します。
func New(cfg Config, password string) *Inbox {
	return &Inbox{cfg: cfg, password: password}
}

// Open は接続・ログインし、メールボックスを読み取り専用で選択します。
func (i *Inbox) Open(ctx context.Context) (usecase.InboxSession, error) {
	if i.cfg.Username == "" || i.password == "" {
		return nil, errors.New("imap username/password is required")
	}

	c, err := imapclient.DialTLS(i.cfg.Addr(), &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: i.cfg.Host},
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial tls: %w", err)
	}
	// ctxがキャンセルされたら接続を切り、待機中のコマンドを終わらせる
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })

	if err := c.Login(i.cfg.Username, i.password).Wait(); err != nil {
		stop()
		_ = c.Close()
		return nil, fmt.Errorf("imap login: %w", err)
	}
	if _, err := c.Select(i.cfg.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		stop()
		_ = c.Close()
		return nil, fmt.Errorf("imap select %s: %w", i.cfg.Mailbox, err)
	}
	return &session{c: c, stop: stop}, nil
}

type session struct {
	c    *imapclient.Client
	stop func() bool
}

func (s *session) HasMessageFrom(_ context.Context, from string, since time.Time) (bool, error) {
	data, err := s.c.UIDSearch(replyCriteria(from, since), nil).Wait()
	if err != nil {
		return false, fmt.Errorf("imap uid search: %w", err)
	}
	return len(data.AllUIDs()) > 0, nil
}

func (s *session) Close() error {
	defer s.stop()
	if err := s.c.Logout().Wait(); err != nil {
		_ = s.c.Close()
		return fmt.Errorf("imap logout: %w", err)
	}
	return s.c.Close()
}

// replyCriteria は from から since 以降に届いたメールの検索条件です。
// IMAPのSINCEは日付単位のため、送信日当日のメールも対象になります。
func replyCriteria(from string, since time.Time) *imap.SearchCriteria {
	return &imap.SearchCriteria{
		Since: since,
		Header: []imap.SearchCriteriaHeaderField{
			{Key: "From", Value: strings.TrimSpace(from)},
		},
	}
}
