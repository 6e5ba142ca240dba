package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
)

// Mailer はメールを送信します。
type Mailer interface {
	Send(ctx context.Context, msg entity.OutgoingEmail) error
}

// SentLog は送信済みメールをCRMに記録します。
type SentLog interface {
	RecordSent(ctx context.Context, companyID uint, subject, body string) error
}

// Sender はメールを送信し、企業が指定されていれば送信記録を残します。
type Sender struct {
	mailer Mailer
	log    SentLog
}

// NewSender はSenderの新しいインスタンスを生成します。mailer が nil の場合、送信は常に失敗します。
func NewSender(mailer Mailer, log SentLog) *Sender {
	return &Sender{mailer: mailer, log: log}
}

// Send はメールを送信します。記録の失敗は送信結果に影響しません。
func (s *Sender) Send(ctx context.Context, msg entity.OutgoingEmail, companyID *uint) error {
	if s.mailer == nil {
		return domain.ErrMailerUnavailable
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}
	slog.Info("email sent", "to", msg.To, "cc", msg.CC, "attachments", len(msg.Attachments))

	if companyID == nil || s.log == nil {
		return nil
	}
	if err := s.log.RecordSent(ctx, *companyID, msg.Subject, msg.HTML); err != nil {
		slog.Warn("failed to record sent email", "company_id", *companyID, "error", err)
	}
	return nil
}
