// Package mailer はoutreachの送信メールをSMTPクライアントに渡します。
package mailer

import (
	"context"

	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/usecase"
	"outreach_backend/internal/platform/mail"
)

// Sender はメッセージを送信するSMTPクライアントです。
type Sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// SMTPMailer はSMTPでメールを送信します。
type SMTPMailer struct {
	client Sender
}

var _ usecase.Mailer = (*SMTPMailer)(nil)

// New はSMTPMailerの新しいインスタンスを生成します。
func New(client Sender) *SMTPMailer {
	return &SMTPMailer{client: client}
}

// Send はメールを送信します。
func (m *SMTPMailer) Send(ctx context.Context, e entity.OutgoingEmail) error {
	return m.client.Send(ctx, toMessage(e))
}

func toMessage(e entity.OutgoingEmail) mail.Message {
	msg := mail.Message{
		To:      []string{e.To},
		Subject: e.Subject,
		HTML:    e.HTML,
	}
	if e.CC != "" {
		msg.CC = []string{e.CC}
	}
	for _, a := range e.Attachments {
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename:    a.Filename,
			ContentType: a.ContentType,
			Data:        a.Data,
		})
	}
	return msg
}
