package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

var templateOrderings = map[string]string{
	"created_at": "created_at",
	"type":       "type",
}

// templateGorm はTemplateRepositoryインターフェースのGORM実装です。
type templateGorm struct {
	db *gorm.DB
}

var _ usecase.TemplateRepository = (*templateGorm)(nil)

// NewTemplateGorm はtemplateGormの新しいインスタンスを生成します。
func NewTemplateGorm(db *gorm.DB) *templateGorm {
	return &templateGorm{db: db}
}

func (r *templateGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Template, error) {
	var out []entity.Template
	tx := applySearch(r.db.WithContext(ctx), q.Search, "subject", "body")
	err := tx.Order(orderClause(q.Ordering, templateOrderings, "created_at DESC")).Find(&out).Error
	return out, err
}

func (r *templateGorm) FindByID(ctx context.Context, id uint) (*entity.Template, error) {
	var t entity.Template
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *templateGorm) Create(ctx context.Context, t *entity.Template) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *templateGorm) Update(ctx context.Context, t *entity.Template) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete はテンプレートを削除し、参照していたメールの template_id をNULLにします。
func (r *templateGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Email{}).Where("template_id = ?", id).
			Update("template_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Template{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTemplateNotFound
		}
		return nil
	})
}
