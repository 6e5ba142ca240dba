// Package mail はHTMLメールの組み立てとSMTP送信を提供します。
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

const (
	defaultHost = "smtp.gmail.com"
	defaultPort = "587"
)

// Config はSMTP接続設定です。パスワードはここに含めず secrets パッケージから取得します。
type Config struct {
	Host     string
	Port     string
	Username string
	From     string
	FromName string
}

// LoadConfig は環境変数からSMTP設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		From:     os.Getenv("SMTP_FROM"),
		FromName: os.Getenv("SMTP_FROM_NAME"),
	}
	if cfg.Host == "" {
		cfg.Host = defaultHost
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return cfg
}

// Enabled はSMTPユーザーが設定されているかを返します。
func (c Config) Enabled() bool {
	return c.Username != ""
}

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Attachment は添付ファイルです。
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message は送信するメールです。HTMLからプレーンテキストの代替パートを自動生成します。
type Message struct {
	To          []string
	CC          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Recipients はSMTPの RCPT TO に渡す宛先（To と CC）を返します。
func (m Message) Recipients() []string {
	out := make([]string, 0, len(m.To)+len(m.CC))
	out = append(out, m.To...)
	return append(out, m.CC...)
}

// SendFunc はSMTP送信関数です。テストで差し替えるために分離しています。
type SendFunc func(addr string, a sasl.Client, from string, to []string, r io.Reader) error

// Client はSTARTTLSとPLAIN認証でメールを送信します。
type Client struct {
	cfg      Config
	password string
	send     SendFunc
	now      func() time.Time
}

// NewClient はSMTPクライアントを生成します。send が nil の場合は smtp.SendMail を使います。
func NewClient(cfg Config, password string, send SendFunc) *Client {
	if send == nil {
		send = smtp.SendMail
	}
	return &Client{cfg: cfg, password: password, send: send, now: time.Now}
}

// Send はメッセージを組み立てて送信します。
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return errors.New("mail: no recipients")
	}

	data, err := Build(c.cfg.From, c.cfg.FromName, msg, c.now())
	if err != nil {
		return err
	}

	auth := sasl.NewPlainClient("", c.cfg.Username, c.password)
	if err := c.send(c.cfg.Addr(), auth, c.cfg.From, msg.Recipients(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("smtp send via %s: %w", c.cfg.Addr(), err)
	}
	slog.Debug("smtp message delivered", "to", msg.To, "cc", msg.CC, "bytes", len(data))
	return nil
}

// Build はMIMEメッセージを組み立てます。
// 本文は text/plain と text/html の multipart/alternative で、添付ファイルは multipart/mixed に追加します。
func Build(from, fromName string, msg Message, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{{Name: fromName, Address: from}})
	h.SetAddressList("To", addresses(msg.To))
	if len(msg.CC) > 0 {
		h.SetAddressList("Cc", addresses(msg.CC))
	}
	h.SetSubject(msg.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return nil, fmt.Errorf("generate message id: %w", err)
	}

	var buf bytes.Buffer
	w, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("create mail writer: %w", err)
	}

	iw, err := w.CreateInline()
	if err != nil {
		return nil, fmt.Errorf("create inline part: %w", err)
	}
	for _, p := range []struct{ contentType, body string }{
		{"text/plain", PlainText(msg.HTML)},
		{"text/html", msg.HTML},
	} {
		var ih mail.InlineHeader
		ih.SetContentType(p.contentType, map[string]string{"charset": "utf-8"})
		if err := writePart(func() (io.WriteCloser, error) { return iw.CreatePart(ih) }, []byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s part: %w", p.contentType, err)
		}
	}
	if err := iw.Close(); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		var ah mail.AttachmentHeader
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		ah.SetContentType(ct, nil)
		ah.SetFilename(a.Filename)
		if err := writePart(func() (io.WriteCloser, error) { return w.CreateAttachment(ah) }, a.Data); err != nil {
			return nil, fmt.Errorf("write attachment %s: %w", a.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writePart(create func() (io.WriteCloser, error), data []byte) error {
	pw, err := create()
	if err != nil {
		return err
	}
	if _, err := pw.Write(data); err != nil {
		_ = pw.Close()
		return err
	}
	return pw.Close()
}

func addresses(list []string) []*mail.Address {
	out := make([]*mail.Address, 0, len(list))
	for _, a := range list {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, &mail.Address{Address: a})
		}
	}
	return out
}

// PlainText はHTML本文からプレーンテキストを抽出します。段落は空行で区切ります。
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	doc.Find("script, style, head").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, table").AppendHtml("\n\n")
	doc.Find("li, tr").AppendHtml("\n")

	var lines []string
	blank := false
	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(lines) > 0 {
				blank = true
			}
			continue
		}
		if blank {
			lines = append(lines, "")
			blank = false
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
