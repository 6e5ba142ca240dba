package usecase

import (
	"context"
	"fmt"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// CompanyDetail は企業と、その企業に送信したメールの一覧です。
type CompanyDetail struct {
	Company     entity.Company
	Emails      []entity.Email
	EmailsCount int64
}

// companyUsecase は企業レコードのビジネスロジックを実装します。
type companyUsecase struct {
	companies CompanyRepository
	emails    EmailRepository
}

// NewCompanyUsecase はcompanyUsecaseの新しいインスタンスを生成します。
func NewCompanyUsecase(companies CompanyRepository, emails EmailRepository) *companyUsecase {
	return &companyUsecase{companies: companies, emails: emails}
}

// List は検索語と並び順に従って企業一覧を返します。
func (u *companyUsecase) List(ctx context.Context, q ListQuery) ([]entity.Company, error) {
	return u.companies.List(ctx, q)
}

// Get は企業の詳細をメール一覧とその件数付きで返します。
func (u *companyUsecase) Get(ctx context.Context, id uint) (*CompanyDetail, error) {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	emails, err := u.emails.ListByCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list emails for company %d: %w", id, err)
	}
	return &CompanyDetail{Company: *c, Emails: emails, EmailsCount: int64(len(emails))}, nil
}

// Create は入力を検証してから企業を登録します。
func (u *companyUsecase) Create(ctx context.Context, c *entity.Company) error {
	c.Normalize()
	if err := c.Validate(); err != nil {
		return err
	}
	return u.companies.Create(ctx, c)
}

// Update は既存の企業に mutate を適用し、検証後に保存します。
// PUT/PATCHの差異は mutate 側で吸収します。
func (u *companyUsecase) Update(ctx context.Context, id uint, mutate func(*entity.Company)) (*entity.Company, error) {
	c, err := u.companies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	mutate(c)
	c.ID = id
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := u.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete は企業を削除します。紐づくメールも削除されます。
func (u *companyUsecase) Delete(ctx context.Context, id uint) error {
	return u.companies.Delete(ctx, id)
}

// Emails は企業に送信したメールの一覧を返します。
func (u *companyUsecase) Emails(ctx context.Context, id uint) ([]entity.Email, error) {
	if _, err := u.companies.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return u.emails.ListByCompany(ctx, id)
}
