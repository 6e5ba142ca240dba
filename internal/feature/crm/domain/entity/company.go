// Package entity はcrmフィーチャーのドメインモデルを定義します。
package entity

import (
	"net/mail"
	"strings"
	"time"

	"outreach_backend/internal/feature/crm/domain"
)

// CompanyType はスポンサーシップの種類です。
type CompanyType string

const (
	// CompanyTypeMonetary は金銭的な支援を求める企業です。
	CompanyTypeMonetary CompanyType = "monetary"
	// CompanyTypeParts は部品・物品の提供を求める企業です。
	CompanyTypeParts CompanyType = "parts"
)

// Company はスポンサー候補企業のレコードです。
type Company struct {
	ID            uint        `gorm:"primaryKey"`
	Name          string      `gorm:"size:255;not null;index"`
	Website       string      `gorm:"size:512"`
	Email         *string     `gorm:"size:255;uniqueIndex"` // 未設定はNULL。設定時は一意
	Description   string      `gorm:"type:text"`
	ContactPerson string      `gorm:"size:255"`
	Industry      string      `gorm:"size:100"`
	Location      string      `gorm:"size:255"`
	Size          string      `gorm:"size:50"`
	Type          CompanyType `gorm:"size:20;not null;default:monetary"`
	AddedAt       time.Time   `gorm:"autoCreateTime"`
}

// EmailAddress はメールアドレスを返します。未設定の場合は空文字です。
func (c *Company) EmailAddress() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// SetEmail はメールアドレスを設定します。空文字の場合はNULLとして扱います。
func (c *Company) SetEmail(email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		c.Email = nil
		return
	}
	c.Email = &email
}

// Normalize は保存前に値を整えます。
func (c *Company) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Website = strings.TrimSpace(c.Website)
	c.SetEmail(c.EmailAddress())
	if c.Type == "" {
		c.Type = CompanyTypeMonetary
	}
}

// Validate は企業レコードの不変条件を検証します。
// メールアドレスとWebサイトの少なくとも一方が必要です。
func (c *Company) Validate() error {
	if c.Name == "" {
		return domain.ErrNameRequired
	}
	if c.EmailAddress() == "" && c.Website == "" {
		return domain.ErrContactRequired
	}
	if c.EmailAddress() != "" {
		if _, err := mail.ParseAddress(c.EmailAddress()); err != nil {
			return domain.ErrInvalidEmailAddress
		}
	}
	switch c.Type {
	case CompanyTypeMonetary, CompanyTypeParts:
	default:
		return domain.ErrInvalidCompanyType
	}
	return nil
}
