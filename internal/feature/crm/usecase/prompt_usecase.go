package usecase

import (
	"context"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// promptUsecase はプロンプトのCRUDを提供します。
type promptUsecase struct {
	prompts PromptRepository
}

// NewPromptUsecase はpromptUsecaseの新しいインスタンスを生成します。
func NewPromptUsecase(prompts PromptRepository) *promptUsecase {
	return &promptUsecase{prompts: prompts}
}

func (u *promptUsecase) List(ctx context.Context, q ListQuery) ([]entity.Prompt, error) {
	return u.prompts.List(ctx, q)
}

func (u *promptUsecase) Get(ctx context.Context, id uint) (*entity.Prompt, error) {
	return u.prompts.FindByID(ctx, id)
}

func (u *promptUsecase) Create(ctx context.Context, p *entity.Prompt) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return u.prompts.Create(ctx, p)
}

// Update は既存のプロンプトに mutate を適用し、検証後に保存します。
func (u *promptUsecase) Update(ctx context.Context, id uint, mutate func(*entity.Prompt)) (*entity.Prompt, error) {
	p, err := u.prompts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(p)
	p.ID = id
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.prompts.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *promptUsecase) Delete(ctx context.Context, id uint) error {
	return u.prompts.Delete(ctx, id)
}
