package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
)

// DocumentPaths はクラブ資料とテンプレートファイルのパスです。
type DocumentPaths struct {
	SponsorshipPacket string
	DesignPackage     string
	Templates         string
}

// WorkflowDeps はWorkflowの構築に必要な依存関係です。
type WorkflowDeps struct {
	LLM       LLM
	Searcher  Searcher
	Store     ArtifactStore
	Knowledge KnowledgeLoader
	Documents DocumentReader

	SearchPacer   Pacer
	QuestionPacer Pacer
	StepPacer     Pacer

	Settings Settings
	Paths    DocumentPaths
}

// Workflow は関係性インテリジェンスを用いたメール生成の全工程を順番に実行します。
type Workflow struct {
	docs        DocumentReader
	store       ArtifactStore
	paths       DocumentPaths
	settings    Settings
	briefer     *ClubBriefer
	analyzer    *TemplateAnalyzer
	researcher  *Researcher
	profiler    *Profiler
	partnership *PartnershipAnalyzer
	culture     *CultureAnalyzer
	selector    *TemplateSelector
	composer    *Composer
}

// NewWorkflow はWorkflowの新しいインスタンスを生成します。
func NewWorkflow(d WorkflowDeps) *Workflow {
	s := d.Settings.withDefaults()
	return &Workflow{
		docs:        d.Documents,
		store:       d.Store,
		paths:       d.Paths,
		settings:    s,
		briefer:     NewClubBriefer(d.Knowledge, d.LLM, d.QuestionPacer, s),
		analyzer:    NewTemplateAnalyzer(d.LLM, d.StepPacer, s),
		researcher:  NewResearcher(d.LLM, d.Searcher, d.SearchPacer, d.Store, s),
		profiler:    NewProfiler(d.LLM, d.Searcher, d.SearchPacer, d.StepPacer, d.Store, s),
		partnership: NewPartnershipAnalyzer(d.LLM, d.Searcher, d.SearchPacer, d.Store, s),
		culture:     NewCultureAnalyzer(d.LLM, d.Searcher, d.SearchPacer, d.Store, s),
		selector:    NewTemplateSelector(d.LLM, s),
		composer:    NewComposer(d.LLM, s),
	}
}

// Run は企業名からスポンサーシップ依頼メールを生成します。
// refresh が true の場合、キャッシュ済みの調査結果を破棄してから実行します。
// 資料やテンプレートの欠落、ctxのキャンセル以外の外部APIの失敗はフォールバック値で継続します。
func (w *Workflow) Run(ctx context.Context, company string, refresh bool) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", domain.ErrCompanyNameRequired
	}
	log := slog.With("company", company, "run_id", uuid.NewString())
	log.Info("starting outreach workflow")

	if refresh && w.store != nil {
		if err := w.store.Purge(ctx, company); err != nil {
			log.Warn("failed to purge cached artifacts", "error", err)
		}
	}

	// 1. テンプレートを先に読み込み、欠落していればAPIを呼ぶ前に失敗させます。
	raw, err := w.docs.ReadText(ctx, w.paths.Templates)
	if err != nil {
		return "", fmt.Errorf("read templates: %w", err)
	}

	// 2. クラブ資料への質問
	log.Info("step: club briefing")
	club, err := w.briefer.Brief(ctx, w.paths.SponsorshipPacket, w.paths.DesignPackage)
	if err != nil {
		return "", err
	}

	// 3-4. テンプレートの解析と分析
	log.Info("step: templates")
	templates := ParseTemplates(raw, w.settings.Identity)
	if len(templates) == 0 {
		return "", fmt.Errorf("%s: %w", w.paths.Templates, domain.ErrNoTemplates)
	}
	analyses, err := w.analyzer.Analyze(ctx, templates)
	if err != nil {
		return "", err
	}

	// 5. 企業調査
	log.Info("step: company research")
	info, err := w.researcher.Research(ctx, company)
	if err != nil {
		return "", err
	}

	// 6. 関係性インテリジェンス
	log.Info("step: relationship intelligence")
	var intel entity.RelationshipIntelligence
	if intel.DecisionMakers, err = w.profiler.Profile(ctx, company); err != nil {
		return "", err
	}
	if intel.Partnership, err = w.partnership.Analyze(ctx, company, club); err != nil {
		return "", err
	}
	if intel.Culture, err = w.culture.Assess(ctx, company); err != nil {
		return "", err
	}

	// 7. テンプレート選択
	log.Info("step: template selection")
	sel, err := w.selector.Select(ctx, analyses, info, intel)
	if err != nil {
		return "", err
	}

	// 8. メール生成
	log.Info("step: compose")
	email, err := w.composer.Compose(ctx, sel, club, info, intel)
	if err != nil {
		return "", err
	}
	log.Info("outreach workflow completed", "template", sel.Template.Title, "chars", len(email))
	return email, nil
}

// LoadTemplates はテンプレートファイルを読み込み、解析結果を返します。
func (w *Workflow) LoadTemplates(ctx context.Context, path string) ([]entity.EmailTemplate, error) {
	if path == "" {
		path = w.paths.Templates
	}
	raw, err := w.docs.ReadText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	templates := ParseTemplates(raw, w.settings.Identity)
	if len(templates) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrNoTemplates)
	}
	return templates, nil
}
