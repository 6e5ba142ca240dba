package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"outreach_backend/internal/app/config"
	crmadapters "outreach_backend/internal/feature/crm/adapters"
	crmusecase "outreach_backend/internal/feature/crm/usecase"
	"outreach_backend/internal/feature/outreach/adapters/customsearch"
	"outreach_backend/internal/feature/outreach/adapters/directory"
	"outreach_backend/internal/feature/outreach/adapters/filecache"
	"outreach_backend/internal/feature/outreach/adapters/gemini"
	"outreach_backend/internal/feature/outreach/adapters/knowledge"
	"outreach_backend/internal/feature/outreach/adapters/mailer"
	outreachhandler "outreach_backend/internal/feature/outreach/transport/handler"
	"outreach_backend/internal/feature/outreach/usecase"
	"outreach_backend/internal/platform/cache"
	infrahttp "outreach_backend/internal/platform/http"
	"outreach_backend/internal/platform/mail"
	"outreach_backend/internal/platform/secrets"
	"outreach_backend/internal/shared/ratelimiter"
)

// PacerがパイプラインのPacerを実装していることをコンパイル時に検証します。
var _ usecase.Pacer = (*ratelimiter.Pacer)(nil)

// artifactNamespace はRedis上のアーティファクトキーの接頭辞です。
const artifactNamespace = "artifacts"

// Outreach はメール生成パイプラインと送信の組み立て結果です。
type Outreach struct {
	Workflow *usecase.Workflow
	Handler  *outreachhandler.OutreachHandler
}

// NewOutreach はGemini・検索API・キャッシュ・SMTPを接続したパイプラインを生成します。
// rdb が nil の場合はファイルキャッシュのみを使います。
func NewOutreach(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*Outreach, error) {
	llm, err := NewLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	workflow, err := newWorkflow(ctx, cfg, llm, rdb)
	if err != nil {
		return nil, err
	}

	companies := crmadapters.NewCompanyGorm(db)
	emails := crmusecase.NewEmailUsecase(
		crmadapters.NewEmailGorm(db), companies, crmadapters.NewTemplateGorm(db),
	)
	prospector := usecase.NewProspector(llm, directory.New(companies), cfg.Prospects.Count)
	sender := usecase.NewSender(NewMailer(), directory.NewSentLog(emails))

	return &Outreach{
		Workflow: workflow,
		Handler:  outreachhandler.NewOutreachHandler(prospector, workflow, sender),
	}, nil
}

// NewWorkflow はメール生成パイプラインだけを組み立てます。DBには接続しません。
func NewWorkflow(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*usecase.Workflow, error) {
	llm, err := NewLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return newWorkflow(ctx, cfg, llm, rdb)
}

func newWorkflow(ctx context.Context, cfg *config.Config, llm *gemini.Client, rdb *redis.Client) (*usecase.Workflow, error) {
	searcher, err := customsearch.NewClient(ctx, customsearch.LoadConfig())
	if err != nil {
		return nil, err
	}

	store, err := newArtifactStore(cfg, rdb)
	if err != nil {
		return nil, err
	}

	loader := knowledge.NewLoader(llm)
	return usecase.NewWorkflow(usecase.WorkflowDeps{
		LLM:           llm,
		Searcher:      searcher,
		Store:         store,
		Knowledge:     loader,
		Documents:     loader,
		SearchPacer:   ratelimiter.NewPacer(cfg.Pacing.Search, cfg.Pacing.SearchError),
		QuestionPacer: ratelimiter.NewPacer(cfg.Pacing.Question, cfg.Pacing.QuestionError),
		StepPacer:     ratelimiter.NewPacer(cfg.Pacing.Step, 0),
		Settings:      cfg.Settings(),
		Paths:         cfg.Paths(),
	}), nil
}

// NewLLM は設定のモデル名とタイムアウトでGeminiクライアントを生成します。
func NewLLM(ctx context.Context, cfg *config.Config) (*gemini.Client, error) {
	gcfg := gemini.LoadConfig()
	if cfg.LLM.Model != "" {
		gcfg.Model = cfg.LLM.Model
	}
	if cfg.LLM.EmbeddingModel != "" {
		gcfg.EmbeddingModel = cfg.LLM.EmbeddingModel
	}
	gcfg.HTTPClient = infrahttp.NewHTTPClient(cfg.Pacing.RequestTimeout)
	return gemini.NewClient(ctx, gcfg)
}

// newArtifactStore はファイルキャッシュを生成し、Redisがあれば読み込みキャッシュで包みます。
func newArtifactStore(cfg *config.Config, rdb *redis.Client) (usecase.ArtifactStore, error) {
	files, err := filecache.NewStore(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache dir: %w", err)
	}
	if rdb == nil {
		return files, nil
	}
	return cache.NewCachingArtifactStore(rdb, cfg.CacheTTL, files, artifactNamespace), nil
}

// NewMailer はSMTP設定とパスワードが揃っていればMailerを返します。
// 揃っていない場合は nil を返し、送信は ErrMailerUnavailable になります。
func NewMailer() usecase.Mailer {
	cfg := mail.LoadConfig()
	if !cfg.Enabled() {
		slog.Info("SMTP is not configured; email sending disabled")
		return nil
	}
	password, err := secrets.Password(secrets.SMTPAccount(cfg.Username), "SMTP_PASSWORD")
	if err != nil {
		slog.Warn("SMTP password unavailable; email sending disabled", "error", err)
		return nil
	}
	return mailer.New(mail.NewClient(cfg, password, nil))
}
