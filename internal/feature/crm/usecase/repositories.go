package usecase

import (
	"context"

	"outreach_backend/internal/feature/crm/domain/entity"
)

// ListQuery は一覧取得時の検索語と並び順です。
// Ordering はフィールド名で、先頭に "-" を付けると降順になります。
type ListQuery struct {
	Search   string
	Ordering string
}

// CompanyRepository は企業レコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type CompanyRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Company, error)
	FindByID(ctx context.Context, id uint) (*entity.Company, error)
	// Create は企業を追加します。メールアドレスが重複する場合は ErrDuplicateCompany を返します。
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) error
	// Delete は企業と、その企業に紐づくメールを削除します。
	Delete(ctx context.Context, id uint) error
	// ExistsByName は大文字小文字を区別せずに同名の企業が存在するかを返します。
	ExistsByName(ctx context.Context, name string) (bool, error)
	ListNames(ctx context.Context) ([]string, error)
}

// TemplateRepository はテンプレートの永続化層を抽象化します。
type TemplateRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Template, error)
	FindByID(ctx context.Context, id uint) (*entity.Template, error)
	Create(ctx context.Context, t *entity.Template) error
	Update(ctx context.Context, t *entity.Template) error
	// Delete はテンプレートを削除し、参照しているメールの template_id をNULLにします。
	Delete(ctx context.Context, id uint) error
}

// EmailRepository は送信メール記録の永続化層を抽象化します。
type EmailRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Email, error)
	ListByCompany(ctx context.Context, companyID uint) ([]entity.Email, error)
	CountByCompany(ctx context.Context, companyID uint) (int64, error)
	FindByID(ctx context.Context, id uint) (*entity.Email, error)
	Create(ctx context.Context, e *entity.Email) error
	Update(ctx context.Context, e *entity.Email) error
	Delete(ctx context.Context, id uint) error
}

// PromptRepository はプロンプトの永続化層を抽象化します。
type PromptRepository interface {
	List(ctx context.Context, q ListQuery) ([]entity.Prompt, error)
	FindByID(ctx context.Context, id uint) (*entity.Prompt, error)
	Create(ctx context.Context, p *entity.Prompt) error
	Update(ctx context.Context, p *entity.Prompt) error
	Delete(ctx context.Context, id uint) error
}
