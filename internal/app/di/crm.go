// Package di はアプリケーションのコンポーネントを組み立てるファクトリを提供します。
package di

import (
	"gorm.io/gorm"

	crmadapters "outreach_backend/internal/feature/crm/adapters"
	crmhandler "outreach_backend/internal/feature/crm/transport/handler"
	crmusecase "outreach_backend/internal/feature/crm/usecase"
)

// CRM はCRMのCRUDハンドラー一式です。
type CRM struct {
	Companies *crmhandler.CompanyHandler
	Emails    *crmhandler.EmailHandler
	Templates *crmhandler.TemplateHandler
	Prompts   *crmhandler.PromptHandler
}

// NewCRM はGORMリポジトリを使ったCRMハンドラーを生成します。
func NewCRM(db *gorm.DB) *CRM {
	companies := crmadapters.NewCompanyGorm(db)
	emails := crmadapters.NewEmailGorm(db)
	templates := crmadapters.NewTemplateGorm(db)
	prompts := crmadapters.NewPromptGorm(db)

	return &CRM{
		Companies: crmhandler.NewCompanyHandler(crmusecase.NewCompanyUsecase(companies, emails)),
		Emails:    crmhandler.NewEmailHandler(crmusecase.NewEmailUsecase(emails, companies, templates)),
		Templates: crmhandler.NewTemplateHandler(crmusecase.NewTemplateUsecase(templates)),
		Prompts:   crmhandler.NewPromptHandler(crmusecase.NewPromptUsecase(prompts)),
	}
}
