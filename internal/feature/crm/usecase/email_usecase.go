package usecase

import (
	"context"
	"errors"
	"fmt"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// emailUsecase は送信メール記録のビジネスロジックを実装します。
type emailUsecase struct {
	emails    EmailRepository
	companies CompanyRepository
	templates TemplateRepository
}

// NewEmailUsecase はemailUsecaseの新しいインスタンスを生成します。
func NewEmailUsecase(emails EmailRepository, companies CompanyRepository, templates TemplateRepository) *emailUsecase {
	return &emailUsecase{emails: emails, companies: companies, templates: templates}
}

func (u *emailUsecase) List(ctx context.Context, q ListQuery) ([]entity.Email, error) {
	return u.emails.List(ctx, q)
}

func (u *emailUsecase) Get(ctx context.Context, id uint) (*entity.Email, error) {
	return u.emails.FindByID(ctx, id)
}

// Create はメール記録を登録します。
// TemplateIDが指定され、件名または本文が空の場合はテンプレートの値で補完します。
func (u *emailUsecase) Create(ctx context.Context, e *entity.Email) error {
	if _, err := u.companies.FindByID(ctx, e.CompanyID); err != nil {
		return err
	}
	if err := u.fillFromTemplate(ctx, e); err != nil {
		return err
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return u.emails.Create(ctx, e)
}

// Update は既存のメール記録に mutate を適用して保存します。
func (u *emailUsecase) Update(ctx context.Context, id uint, mutate func(*entity.Email)) (*entity.Email, error) {
	e, err := u.emails.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(e)
	e.ID = id
	if _, err := u.companies.FindByID(ctx, e.CompanyID); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := u.emails.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (u *emailUsecase) Delete(ctx context.Context, id uint) error {
	return u.emails.Delete(ctx, id)
}

func (u *emailUsecase) fillFromTemplate(ctx context.Context, e *entity.Email) error {
	if e.TemplateID == nil || (e.Subject != "" && e.Body != "") {
		return nil
	}
	t, err := u.templates.FindByID(ctx, *e.TemplateID)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return err
		}
		return fmt.Errorf("failed to load template %d: %w", *e.TemplateID, err)
	}
	if e.Subject == "" {
		e.Subject = t.Subject
	}
	if e.Body == "" {
		e.Body = t.Body
	}
	if e.Type == "" {
		e.Type = t.Type
	}
	return nil
}
