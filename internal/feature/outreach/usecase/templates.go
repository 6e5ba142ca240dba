package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
)

var (
	templateSeparator   = regexp.MustCompile(`(?:TEMPLATE \d+|OTHER EXAMPLES)`)
	templateTitle       = regexp.MustCompile(`Title:\s*(.*?)(?:\n|$)`)
	templateSubject     = regexp.MustCompile(`Subject:\s*(.*?)(?:\n|$)`)
	templateBodyStart   = regexp.MustCompile(`Body:\s*\n`)
	templatePlaceholder = regexp.MustCompile(`\[(.*?)\]`)
)

// ParseTemplates はテンプレートファイルの内容をテンプレートのリストに分解します。
//
// ファイルは "TEMPLATE <n>" または "OTHER EXAMPLES" で区切られ、各ブロックは
// "Title:", "Subject:", "Body:" の行を持ちます。本文は最初の空行までです。
// 本文中の [NAME] と [ROLE] は送信者の名前と役職に置き換えられます。
// どのフィールドも見つからないブロックは無視されます。
func ParseTemplates(content string, id entity.SenderIdentity) []entity.EmailTemplate {
	var out []entity.EmailTemplate
	for _, block := range templateSeparator.Split(content, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		t, ok := parseTemplateBlock(block, id)
		if !ok {
			continue
		}
		slog.Debug("parsed template", "title", t.Title, "subject", t.Subject, "placeholders", t.Placeholders)
		out = append(out, t)
	}
	return out
}

func parseTemplateBlock(block string, id entity.SenderIdentity) (entity.EmailTemplate, bool) {
	var t entity.EmailTemplate
	found := false
	if m := templateTitle.FindStringSubmatch(block); m != nil {
		t.Title = strings.TrimSpace(m[1])
		found = true
	}
	if m := templateSubject.FindStringSubmatch(block); m != nil {
		t.Subject = strings.TrimSpace(m[1])
		found = true
	}
	loc := templateBodyStart.FindStringIndex(block)
	if loc == nil {
		return t, found
	}

	body := block[loc[1]:]
	if i := strings.Index(body, "\n\n"); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "[NAME]", id.Name)
	body = strings.ReplaceAll(body, "[ROLE]", id.Role)
	t.Body = body

	var paragraphs []string
	for _, p := range strings.Split(body, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) > 0 {
		t.Intro = paragraphs[0]
		t.Middle = []string{}
		if len(paragraphs) > 2 {
			t.Middle = paragraphs[1 : len(paragraphs)-1]
		}
		if len(paragraphs) > 1 {
			t.Closing = paragraphs[len(paragraphs)-1]
		}
		t.Placeholders = []string{}
		for _, m := range templatePlaceholder.FindAllStringSubmatch(body, -1) {
			if m[1] != "NAME" && m[1] != "ROLE" {
				t.Placeholders = append(t.Placeholders, m[1])
			}
		}
	}
	return t, true
}

// TemplateAnalyzer は各テンプレートの用途やトーンをLLMで分析します。
type TemplateAnalyzer struct {
	llm      LLM
	steps    Pacer
	settings Settings
}

// NewTemplateAnalyzer はTemplateAnalyzerの新しいインスタンスを生成します。
func NewTemplateAnalyzer(llm LLM, stepPacer Pacer, s Settings) *TemplateAnalyzer {
	return &TemplateAnalyzer{llm: llm, steps: stepPacer, settings: s.withDefaults()}
}

// Analyze はテンプレートを1件ずつ分析します。失敗したテンプレートには失敗理由が記録されます。
func (a *TemplateAnalyzer) Analyze(ctx context.Context, templates []entity.EmailTemplate) ([]entity.TemplateAnalysis, error) {
	out := make([]entity.TemplateAnalysis, 0, len(templates))
	for _, t := range templates {
		if err := a.steps.Pace(ctx); err != nil {
			return nil, err
		}
		prompt, err := render("analysis", map[string]any{"Template": t, "Intro": a.settings.Identity.Intro})
		if err != nil {
			return nil, fmt.Errorf("render analysis prompt: %w", err)
		}
		analysis, err := a.llm.Generate(ctx, prompt, a.settings.Sampling)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("template analysis failed", "title", t.Title, "error", err)
			analysis = fmt.Sprintf("Analysis failed: %v", err)
		}
		out = append(out, entity.TemplateAnalysis{Template: t, Analysis: analysis})
	}
	return out, nil
}

// TemplateSelector は関係性インテリジェンスに基づいて最適なテンプレートを選びます。
type TemplateSelector struct {
	llm      LLM
	settings Settings
}

// NewTemplateSelector はTemplateSelectorの新しいインスタンスを生成します。
func NewTemplateSelector(llm LLM, s Settings) *TemplateSelector {
	return &TemplateSelector{llm: llm, settings: s.withDefaults()}
}

// Select はLLMにテンプレートを順位付けさせ、1件を選びます。analyses は1件以上必要です。
// LLMが失敗した場合は先頭のテンプレートを選びます。
func (s *TemplateSelector) Select(ctx context.Context, analyses []entity.TemplateAnalysis, companyInfo string, intel entity.RelationshipIntelligence) (entity.TemplateSelection, error) {
	if len(analyses) == 0 {
		return entity.TemplateSelection{}, fmt.Errorf("select template: %w", domain.ErrNoTemplates)
	}

	makers := make([]string, len(intel.DecisionMakers))
	for i, dm := range intel.DecisionMakers {
		makers[i] = fmt.Sprintf("CONTACT: %s\nROLE: %s\nCOMMUNICATION STYLE: %s", dm.Name, dm.Role, dm.CommunicationStyle)
	}
	listed := make([]string, len(analyses))
	for i, ta := range analyses {
		listed[i] = fmt.Sprintf("TEMPLATE %d: %s\n%s", i+1, titleOrUnnamed(ta.Template.Title), ta.Analysis)
	}

	prompt, err := render("selection", map[string]any{
		"CompanyInfo":       companyInfo,
		"DecisionMakers":    strings.Join(makers, "\n\n"),
		"Partnership":       intel.Partnership.PartnershipAnalysis,
		"ValuePropositions": intel.Partnership.ValuePropositions,
		"DecisionStyle":     intel.Culture.DecisionStyle,
		"Recommendations":   intel.Culture.Recommendations,
		"Analyses":          strings.Join(listed, "\n\n"),
		"Intro":             s.settings.Identity.Intro,
	})
	if err != nil {
		return entity.TemplateSelection{}, fmt.Errorf("render selection prompt: %w", err)
	}

	response, err := s.llm.Generate(ctx, prompt, s.settings.Sampling)
	if err != nil {
		if ctx.Err() != nil {
			return entity.TemplateSelection{}, ctx.Err()
		}
		slog.Warn("template selection failed, using first template", "error", err)
		return entity.TemplateSelection{
			Index:     0,
			Template:  analyses[0].Template,
			Reasoning: fmt.Sprintf("Default selection due to error: %v", err),
		}, nil
	}

	i := pickTemplate(response, analyses)
	slog.Info("template selected", "index", i, "title", analyses[i].Template.Title)
	return entity.TemplateSelection{Index: i, Template: analyses[i].Template, Reasoning: response}, nil
}

// pickTemplate はLLMの回答から選ばれたテンプレートの番号を判定します。判定できなければ0です。
func pickTemplate(response string, analyses []entity.TemplateAnalysis) int {
	lower := strings.ToLower(response)
	for i, ta := range analyses {
		title := ta.Template.Title
		if !strings.Contains(response, fmt.Sprintf("TEMPLATE %d", i+1)) || !strings.Contains(response, title) {
			continue
		}
		if strings.Contains(lower, "best template") && strings.Contains(lower, strings.ToLower(title)) {
			return i
		}
	}
	return 0
}

func titleOrUnnamed(title string) string {
	if title == "" {
		return "Unnamed"
	}
	return title
}
