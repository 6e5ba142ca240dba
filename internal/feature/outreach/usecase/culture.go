package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

var cultureSuffixes = []string{"press release", "blog", "about us", "mission statement", "values"}

// fallbackCulture はLLM呼び出しに失敗した場合の評価です。キャッシュされません。
var fallbackCulture = entity.CulturalAssessment{
	LanguageAnalysis: "Professional, industry-standard communication style",
	DecisionStyle:    "Likely balances data-driven and relationship-based decision making",
	CulturalValues:   "Innovation, excellence, quality, and professionalism are likely core values",
	Recommendations:  "Maintain professional tone, emphasize technical capabilities, quantify benefits",
}

// CultureAnalyzer は企業の発信内容から文化とコミュニケーションスタイルを評価します。
type CultureAnalyzer struct {
	llm       LLM
	collector collector
	cache     artifacts
	settings  Settings
	now       func() time.Time
}

// NewCultureAnalyzer はCultureAnalyzerの新しいインスタンスを生成します。
func NewCultureAnalyzer(llm LLM, searcher Searcher, pacer Pacer, store ArtifactStore, s Settings) *CultureAnalyzer {
	s = s.withDefaults()
	return &CultureAnalyzer{
		llm:       llm,
		collector: collector{searcher: searcher, pacer: pacer, perQuery: s.ResultsPerQuery},
		cache:     artifacts{store: store},
		settings:  s,
		now:       time.Now,
	}
}

// Assess は言語分析・意思決定スタイル・文化的価値観・推奨事項の順にLLMを呼び出します。
func (a *CultureAnalyzer) Assess(ctx context.Context, company string) (entity.CulturalAssessment, error) {
	var cached entity.CultureRecord
	if a.cache.load(ctx, KindCulture, company, &cached) {
		return cached.Assessment, nil
	}

	hits, err := a.collector.collect(ctx, company, companyQueries(company, cultureSuffixes...))
	if err != nil {
		return entity.CulturalAssessment{}, err
	}
	samples := formatHits(hits, func(h hit) string {
		return fmt.Sprintf("Context: %s\nTitle: %s\nSnippet: %s", h.Query, h.Title, h.Snippet)
	})
	data := map[string]any{
		"Company": company,
		"Club":    a.settings.Identity.Club,
		"Samples": samples,
	}

	var out entity.CulturalAssessment
	steps := []struct {
		prompt string
		dst    *string
		key    string
	}{
		{"language", &out.LanguageAnalysis, "Language"},
		{"decision", &out.DecisionStyle, "DecisionStyle"},
		{"values", &out.CulturalValues, "Values"},
		{"recommendation", &out.Recommendations, ""},
	}
	for _, s := range steps {
		prompt, err := render(s.prompt, data)
		if err != nil {
			return entity.CulturalAssessment{}, fmt.Errorf("render %s prompt: %w", s.prompt, err)
		}
		text, err := a.llm.Generate(ctx, prompt, a.settings.Sampling)
		if err != nil {
			if ctx.Err() != nil {
				return entity.CulturalAssessment{}, ctx.Err()
			}
			slog.Warn("cultural assessment failed, using fallback", "company", company, "step", s.prompt, "error", err)
			return fallbackCulture, nil
		}
		*s.dst = text
		if s.key != "" {
			data[s.key] = text
		}
	}

	a.cache.save(ctx, KindCulture, company, entity.CultureRecord{
		Assessment: out,
		Timestamp:  entity.Timestamp(a.now()),
	})
	return out, nil
}
