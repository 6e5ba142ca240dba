package entity

import (
	"strings"
	"time"

	"outreach_backend/internal/feature/crm/domain"
)

// Prompt はユーザーが保存した自由記述のプロンプトです。
type Prompt struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"type:text;not null"`
	Type      string `gorm:"size:50"`
	Link      string `gorm:"size:512"`
	CreatedAt time.Time
}

// Validate はプロンプト本文が空でないことを検証します。
func (p *Prompt) Validate() error {
	if strings.TrimSpace(p.Text) == "" {
		return domain.ErrPromptTextRequired
	}
	return nil
}
