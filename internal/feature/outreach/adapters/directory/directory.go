// Package directory はスポンサー候補企業の登録先としてCRMの企業リポジトリを接続します。
package directory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	crmdomain "outreach_backend/internal/feature/crm/domain"
	crmentity "outreach_backend/internal/feature/crm/domain/entity"
	crmusecase "outreach_backend/internal/feature/crm/usecase"
	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/usecase"
)

// CompanyStore は候補企業の登録に必要な企業リポジトリの操作です。
type CompanyStore interface {
	ListNames(ctx context.Context) ([]string, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, c *crmentity.Company) error
}

// Directory は候補企業をCRMの企業として登録します。
type Directory struct {
	companies CompanyStore
	// mu は同名チェックと登録の間に別の登録が割り込まないようにします。
	mu sync.Mutex
}

// DirectoryがCompanyDirectoryを実装していることをコンパイル時に検証します。
var _ usecase.CompanyDirectory = (*Directory)(nil)

// New はDirectoryの新しいインスタンスを生成します。
func New(companies CompanyStore) *Directory {
	return &Directory{companies: companies}
}

// ListNames は登録済みの企業名を返します。
func (d *Directory) ListNames(ctx context.Context) ([]string, error) {
	return d.companies.ListNames(ctx)
}

// CreateProspect は候補企業を検証して登録します。
func (d *Directory) CreateProspect(ctx context.Context, cand entity.ProspectCandidate) (uint, error) {
	c := toCompany(cand)
	c.Normalize()
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrInvalidProspect, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	exists, err := d.companies.ExistsByName(ctx, c.Name)
	if err != nil {
		return 0, fmt.Errorf("check company %q: %w", c.Name, err)
	}
	if exists {
		return 0, domain.ErrDuplicateProspect
	}

	if err := d.companies.Create(ctx, c); err != nil {
		if errors.Is(err, crmusecase.ErrDuplicateCompany) {
			return 0, fmt.Errorf("%w: %w", domain.ErrDuplicateProspect, err)
		}
		if isValidationError(err) {
			return 0, fmt.Errorf("%w: %w", domain.ErrInvalidProspect, err)
		}
		return 0, err
	}
	return c.ID, nil
}

func toCompany(cand entity.ProspectCandidate) *crmentity.Company {
	c := &crmentity.Company{
		Name:          cand.Name,
		Website:       cand.Website,
		Description:   cand.Description,
		ContactPerson: cand.ContactPerson,
		Industry:      cand.Industry,
		Location:      cand.Location,
		Size:          cand.Size,
		Type:          crmentity.CompanyTypeMonetary,
	}
	if strings.EqualFold(strings.TrimSpace(cand.Type), string(crmentity.CompanyTypeParts)) {
		c.Type = crmentity.CompanyTypeParts
	}
	c.SetEmail(cand.Email)
	return c
}

func isValidationError(err error) bool {
	for _, target := range []error{
		crmdomain.ErrNameRequired,
		crmdomain.ErrContactRequired,
		crmdomain.ErrInvalidEmailAddress,
		crmdomain.ErrInvalidCompanyType,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// EmailRecorder は送信メール記録の登録操作です。CRMのメールユースケースが満たします。
type EmailRecorder interface {
	Create(ctx context.Context, e *crmentity.Email) error
}

// SentLog は送信したメールをCRMのメール記録として残します。
type SentLog struct {
	emails EmailRecorder
}

var _ usecase.SentLog = (*SentLog)(nil)

// NewSentLog はSentLogの新しいインスタンスを生成します。
func NewSentLog(emails EmailRecorder) *SentLog {
	return &SentLog{emails: emails}
}

// RecordSent は返信待ちのメール記録を追加します。
func (l *SentLog) RecordSent(ctx context.Context, companyID uint, subject, body string) error {
	return l.emails.Create(ctx, &crmentity.Email{
		CompanyID: companyID,
		Subject:   subject,
		Body:      body,
		Status:    crmentity.EmailStatusNotResponded,
		Type:      "sponsorship",
	})
}
