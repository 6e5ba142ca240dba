package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/crm/usecase"
	platformdb "outreach_backend/internal/platform/db"
)

var companyOrderings = map[string]string{
	"name":     "name",
	"added_at": "added_at",
	"type":     "type",
}

// companyGorm はCompanyRepositoryインターフェースのGORM実装です。
type companyGorm struct {
	db *gorm.DB
}

// companyGormがCompanyRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyGorm は指定されたgorm.DB接続でcompanyGormの新しいインスタンスを生成します。
func NewCompanyGorm(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// List は名前・業界・所在地・タイプを対象に検索し、指定の順序で返します。デフォルトは追加日時の降順です。
func (r *companyGorm) List(ctx context.Context, q usecase.ListQuery) ([]entity.Company, error) {
	var out []entity.Company
	tx := applySearch(r.db.WithContext(ctx), q.Search, "name", "email", "website", "industry", "location")
	err := tx.Order(orderClause(q.Ordering, companyOrderings, "added_at DESC")).Find(&out).Error
	return out, err
}

// FindByID はIDで企業を取得します。存在しない場合は usecase.ErrCompanyNotFound を返します。
func (r *companyGorm) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create は企業を追加します。メールアドレスが重複する場合は usecase.ErrDuplicateCompany を返します。
func (r *companyGorm) Create(ctx context.Context, c *entity.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrDuplicateCompany
		}
		return err
	}
	return nil
}

// Update は企業のすべてのカラムを保存します。
func (r *companyGorm) Update(ctx context.Context, c *entity.Company) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		if platformdb.IsDuplicateKey(err) {
			return usecase.ErrDuplicateCompany
		}
		return err
	}
	return nil
}

// Delete は企業と紐づくメールを1トランザクションで削除します。
func (r *companyGorm) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", id).Delete(&entity.Email{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&entity.Company{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCompanyNotFound
		}
		return nil
	})
}

// ExistsByName は大文字小文字を区別せずに同名の企業が存在するかを返します。
func (r *companyGorm) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Company{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&n).Error
	return n > 0, err
}

// ListNames は登録済みのすべての企業名を返します。
func (r *companyGorm) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.Company{}).Order("id").Pluck("name", &names).Error
	return names, err
}

// FindByNames は大文字小文字を区別せずに名前が一致する企業を返します。
func (r *companyGorm) FindByNames(ctx context.Context, names []string) ([]entity.Company, error) {
	if len(names) == 0 {
		return nil, nil
	}
	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}
	var out []entity.Company
	err := r.db.WithContext(ctx).Where("LOWER(name) IN ?", lowered).Find(&out).Error
	return out, err
}
