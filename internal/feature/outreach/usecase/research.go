package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

var researchSuffixes = []string{"about us", "sponsorships", "donations", "supports", "projects", "technology"}

// Researcher は企業の概要を検索とLLMで調査します。
type Researcher struct {
	llm       LLM
	collector collector
	cache     artifacts
	settings  Settings
	now       func() time.Time
}

// NewResearcher はResearcherの新しいインスタンスを生成します。
func NewResearcher(llm LLM, searcher Searcher, pacer Pacer, store ArtifactStore, s Settings) *Researcher {
	s = s.withDefaults()
	return &Researcher{
		llm:       llm,
		collector: collector{searcher: searcher, pacer: pacer, perQuery: s.ResultsPerQuery},
		cache:     artifacts{store: store},
		settings:  s,
		now:       time.Now,
	}
}

// Research は企業情報のテキストを返します。
// 外部APIの失敗はプレースホルダー文字列に置き換えられ、ctxのキャンセル以外でエラーは返しません。
func (r *Researcher) Research(ctx context.Context, company string) (string, error) {
	var cached entity.CompanyResearch
	if r.cache.load(ctx, KindCompany, company, &cached) {
		return cached.CompanyInfo, nil
	}

	queries := companyQueries(company, researchSuffixes...)
	hits, err := r.collector.collect(ctx, company, queries)
	if err != nil {
		return "", err
	}
	slog.Info("compiling company research", "company", company, "results", len(hits))

	prompt, err := render("research", map[string]any{
		"Company": company,
		"Club":    r.settings.Identity.Club,
		"Results": formatHits(hits, func(h hit) string {
			return fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s\n", h.Title, h.Link, h.Snippet)
		}),
	})
	if err != nil {
		return "", fmt.Errorf("render research prompt: %w", err)
	}

	info, err := r.llm.Generate(ctx, prompt, r.settings.Sampling)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("company research failed", "company", company, "error", err)
		return fmt.Sprintf("Basic information about %s (API error: %v)", company, err), nil
	}

	r.cache.save(ctx, KindCompany, company, entity.CompanyResearch{
		CompanyInfo: info,
		Timestamp:   entity.Timestamp(r.now()),
		QueryCount:  len(queries),
	})
	return info, nil
}
