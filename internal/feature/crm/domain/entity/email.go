package entity

import (
	"time"

	"outreach_backend/internal/feature/crm/domain"
)

// EmailStatus は送信済みメールへの返信状況です。
type EmailStatus string

const (
	EmailStatusResponded    EmailStatus = "responded"
	EmailStatusNotResponded EmailStatus = "not_responded"
)

// Email は企業に送信したメールの記録です。
type Email struct {
	ID         uint        `gorm:"primaryKey"`
	CompanyID  uint        `gorm:"not null;index"`
	Company    *Company    `gorm:"constraint:OnDelete:CASCADE;"`
	TemplateID *uint       `gorm:"index"`
	Template   *Template   `gorm:"constraint:OnDelete:SET NULL;"`
	Subject    string      `gorm:"size:255"`
	Body       string      `gorm:"type:text"`
	Status     EmailStatus `gorm:"size:20;not null;default:not_responded"`
	Type       string      `gorm:"size:50"`
	SentAt     time.Time   `gorm:"autoCreateTime"`
}

// Validate はメールレコードの値を検証します。
func (e *Email) Validate() error {
	if e.Status == "" {
		e.Status = EmailStatusNotResponded
	}
	switch e.Status {
	case EmailStatusResponded, EmailStatusNotResponded:
		return nil
	default:
		return domain.ErrInvalidEmailStatus
	}
}

// PendingReply は返信待ちのメールと宛先企業のアドレスです。
type PendingReply struct {
	EmailID      uint
	CompanyEmail string
	Subject      string
	SentAt       time.Time
}
