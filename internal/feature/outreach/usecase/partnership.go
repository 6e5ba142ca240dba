package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

var (
	sponsorshipSuffixes = []string{"sponsors university", "sponsors engineering competition", "university partnership", "education sponsorship"}
	initiativeSuffixes  = []string{"strategic priorities", "innovation focus", "technology development", "future goals"}
)

// PartnershipAnalyzer は企業とクラブの戦略的パートナーシップの可能性を分析します。
type PartnershipAnalyzer struct {
	llm       LLM
	collector collector
	cache     artifacts
	settings  Settings
	now       func() time.Time
}

// NewPartnershipAnalyzer はPartnershipAnalyzerの新しいインスタンスを生成します。
func NewPartnershipAnalyzer(llm LLM, searcher Searcher, pacer Pacer, store ArtifactStore, s Settings) *PartnershipAnalyzer {
	s = s.withDefaults()
	return &PartnershipAnalyzer{
		llm:       llm,
		collector: collector{searcher: searcher, pacer: pacer, perQuery: s.ResultsPerQuery},
		cache:     artifacts{store: store},
		settings:  s,
		now:       time.Now,
	}
}

// Analyze は過去のスポンサー実績と戦略的取り組みを調べ、価値提案を生成します。
func (a *PartnershipAnalyzer) Analyze(ctx context.Context, company string, club entity.ClubBriefing) (entity.PartnershipAnalysis, error) {
	var cached entity.PartnershipRecord
	if a.cache.load(ctx, KindPartnership, company, &cached) {
		return cached.Analysis, nil
	}

	sponsorships, err := a.collector.collect(ctx, company, companyQueries(company, sponsorshipSuffixes...))
	if err != nil {
		return entity.PartnershipAnalysis{}, err
	}
	initiatives, err := a.collector.collect(ctx, company, companyQueries(company, initiativeSuffixes...))
	if err != nil {
		return entity.PartnershipAnalysis{}, err
	}

	clubName := a.settings.Identity.Club
	analysis, err := a.generate(ctx, "partnership", map[string]any{
		"Company":      company,
		"Club":         clubName,
		"Sponsorships": formatHits(sponsorships, queryTitleLinkSnippet("Query")),
		"Initiatives":  formatHits(initiatives, queryTitleLinkSnippet("Query")),
		"ClubInfo":     club.Format("Q", "A"),
	})
	if err != nil {
		return a.fallback(ctx, company, err)
	}
	values, err := a.generate(ctx, "value", map[string]any{
		"Company":  company,
		"Club":     clubName,
		"Analysis": analysis,
	})
	if err != nil {
		return a.fallback(ctx, company, err)
	}

	result := entity.PartnershipAnalysis{PartnershipAnalysis: analysis, ValuePropositions: values}
	a.cache.save(ctx, KindPartnership, company, entity.PartnershipRecord{
		Analysis:  result,
		Timestamp: entity.Timestamp(a.now()),
	})
	return result, nil
}

func (a *PartnershipAnalyzer) generate(ctx context.Context, name string, data any) (string, error) {
	prompt, err := render(name, data)
	if err != nil {
		return "", err
	}
	return a.llm.Generate(ctx, prompt, a.settings.Sampling)
}

func (a *PartnershipAnalyzer) fallback(ctx context.Context, company string, err error) (entity.PartnershipAnalysis, error) {
	if ctx.Err() != nil {
		return entity.PartnershipAnalysis{}, ctx.Err()
	}
	slog.Warn("partnership analysis failed, using fallback", "company", company, "error", err)
	return entity.PartnershipAnalysis{
		PartnershipAnalysis: fmt.Sprintf("Unable to complete detailed analysis for %s due to API error.", company),
		ValuePropositions: "1. VALUE PROPOSITION: Engineering talent pipeline\n" +
			"2. VALUE PROPOSITION: Innovation showcase\n" +
			"3. VALUE PROPOSITION: Brand visibility among engineering students",
	}, nil
}
