package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// promptGorm はPromptRepositoryインターフェースのGORM実装です。
type promptGorm struct {
	db *gorm.DB
}

var _ usecase.PromptRepository = (*promptGorm)(nil)

var promptOrderings = map[string]string{
	"created_at": "created_at",
	"type":       "type",
}

// NewPromptGorm はpromptGormの新しいインスタンスを生成します。
func NewPromptGorm(db *gorm.DB) *promptGorm {
	return &promptGorm{db: db}
}

func (r *promptGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Prompt, error) {
	var out []entity.Prompt
	tx := applySearch(r.db.WithContext(ctx), q.Search, "text", "link")
	err := tx.Order(orderClause(q.Ordering, promptOrderings, "created_at DESC")).Find(&out).Error
	return out, err
}

func (r *promptGorm) FindByID(ctx context.Context, id uint) (*entity.Prompt, error) {
	var p entity.Prompt
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPromptNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *promptGorm) Create(ctx context.Context, p *entity.Prompt) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *promptGorm) Update(ctx context.Context, p *entity.Prompt) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *promptGorm) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.Prompt{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPromptNotFound
	}
	return nil
}
