package usecase

import (
	"context"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// templateUsecase はメールテンプレートのCRUDを提供します。
type templateUsecase struct {
	templates TemplateRepository
}

// NewTemplateUsecase はtemplateUsecaseの新しいインスタンスを生成します。
func NewTemplateUsecase(templates TemplateRepository) *templateUsecase {
	return &templateUsecase{templates: templates}
}

func (u *templateUsecase) List(ctx context.Context, q ListQuery) ([]entity.Template, error) {
	return u.templates.List(ctx, q)
}

func (u *templateUsecase) Get(ctx context.Context, id uint) (*entity.Template, error) {
	return u.templates.FindByID(ctx, id)
}

func (u *templateUsecase) Create(ctx context.Context, t *entity.Template) error {
	return u.templates.Create(ctx, t)
}

// Update は既存のテンプレートに mutate を適用して保存します。
func (u *templateUsecase) Update(ctx context.Context, id uint, mutate func(*entity.Template)) (*entity.Template, error) {
	t, err := u.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(t)
	t.ID = id
	if err := u.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *templateUsecase) Delete(ctx context.Context, id uint) error {
	return u.templates.Delete(ctx, id)
}
