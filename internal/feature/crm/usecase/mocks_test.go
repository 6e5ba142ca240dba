package usecase_test

import (
	"context"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
)

// mockCompanyRepository はCompanyRepositoryインターフェースのモック実装です。
type mockCompanyRepository struct {
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Company, error)
	CreateFunc       func(ctx context.Context, c *entity.Company) error
	UpdateFunc       func(ctx context.Context, c *entity.Company) error
	ExistsByNameFunc func(ctx context.Context, name string) (bool, error)
}

func (m *mockCompanyRepository) List(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error) {
	return nil, nil
}

func (m *mockCompanyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return &entity.Company{ID: id, Name: "Acme", Website: "https://acme.test", Type: entity.CompanyTypeMonetary}, nil
}

func (m *mockCompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCompanyRepository) Update(ctx context.Context, c *entity.Company) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, c)
	}
	return nil
}

func (m *mockCompanyRepository) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name)
	}
	return false, nil
}

func (m *mockCompanyRepository) ListNames(ctx context.Context) ([]string, error) { return nil, nil }

// mockTemplateRepository はTemplateRepositoryインターフェースのモック実装です。
type mockTemplateRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Template, error)
}

func (m *mockTemplateRepository) List(ctx context.Context, q usecase.ListQuery) ([]entity.Template, error) {
	return nil, nil
}

func (m *mockTemplateRepository) FindByID(ctx context.Context, id uint) (*entity.Template, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrTemplateNotFound
}

func (m *mockTemplateRepository) Create(ctx context.Context, t *entity.Template) error { return nil }
func (m *mockTemplateRepository) Update(ctx context.Context, t *entity.Template) error { return nil }
func (m *mockTemplateRepository) Delete(ctx context.Context, id uint) error            { return nil }

// mockEmailRepository はEmailRepositoryインターフェースのモック実装です。
type mockEmailRepository struct {
	CreateFunc        func(ctx context.Context, e *entity.Email) error
	ListByCompanyFunc func(ctx context.Context, companyID uint) ([]entity.Email, error)
}

func (m *mockEmailRepository) List(ctx context.Context, q usecase.ListQuery) ([]entity.Email, error) {
	return nil, nil
}

func (m *mockEmailRepository) ListByCompany(ctx context.Context, companyID uint) ([]entity.Email, error) {
	if m.ListByCompanyFunc != nil {
		return m.ListByCompanyFunc(ctx, companyID)
	}
	return nil, nil
}

func (m *mockEmailRepository) CountByCompany(ctx context.Context, companyID uint) (int64, error) {
	return 0, nil
}

func (m *mockEmailRepository) FindByID(ctx context.Context, id uint) (*entity.Email, error) {
	return nil, usecase.ErrEmailNotFound
}

func (m *mockEmailRepository) Create(ctx context.Context, e *entity.Email) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *mockEmailRepository) Update(ctx context.Context, e *entity.Email) error { return nil }
func (m *mockEmailRepository) Delete(ctx context.Context, id uint) error         { return nil }
