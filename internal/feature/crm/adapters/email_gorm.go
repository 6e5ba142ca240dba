package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

var emailOrderings = map[string]string{
	"sent_at": "sent_at",
	"status":  "status",
	"type":    "type",
}

// emailGorm はEmailRepositoryインターフェースのGORM実装です。
// 返信トラッカー向けの問い合わせも提供します。
type emailGorm struct {
	db *gorm.DB
}

var _ usecase.EmailRepository = (*emailGorm)(nil)

// NewEmailGorm はemailGormの新しいインスタンスを生成します。
func NewEmailGorm(db *gorm.DB) *emailGorm {
	return &emailGorm{db: db}
}

func (r *emailGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Email, error) {
	var out []entity.Email
	tx := applySearch(r.db.WithContext(ctx), q.Search, "subject", "body")
	err := tx.Order(orderClause(q.Ordering, emailOrderings, "sent_at DESC")).Find(&out).Error
	return out, err
}

// ListByCompany は企業に送信したメールを新しい順に返します。
func (r *emailGorm) ListByCompany(ctx context.Context, companyID uint) ([]entity.Email, error) {
	var out []entity.Email
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("sent_at DESC").Find(&out).Error
	return out, err
}

func (r *emailGorm) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Email{}).Where("company_id = ?", companyID).Count(&n).Error
	return n, err
}

func (r *emailGorm) FindByID(ctx context.Context, id uint) (*entity.Email, error) {
	var e entity.Email
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrEmailNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *emailGorm) Create(ctx context.Context, e *entity.Email) error {
	return r.db.WithContext(ctx).Omit("Company", "Template").Create(e).Error
}

func (r *emailGorm) Update(ctx context.Context, e *entity.Email) error {
	return r.db.WithContext(ctx).Omit("Company", "Template").Save(e).Error
}

func (r *emailGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Email{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEmailNotFound
	}
	return nil
}

// ListAwaitingReply は未返信かつ宛先企業にメールアドレスがあるメールを古い順に返します。
func (r *emailGorm) ListAwaitingReply(ctx context.Context) ([]entity.PendingReply, error) {
	var rows []entity.PendingReply
	err := r.db.WithContext(ctx).Table("emails").
		Select("emails.id AS email_id, companies.email AS company_email, emails.subject AS subject, emails.sent_at AS sent_at").
		Joins("JOIN companies ON companies.id = emails.company_id").
		Where("emails.status = ? AND companies.email IS NOT NULL AND companies.email <> ''", entity.EmailStatusNotResponded).
		Order("emails.sent_at ASC").
		Scan(&rows).Error
	return rows, err
}

// MarkResponded はメールのステータスを responded に更新します。
func (r *emailGorm) MarkResponded(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entity.Email{}).Where("id = ?", id).
		Update("status", entity.EmailStatusResponded)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrEmailNotFound
	}
	return nil
}
