package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

var (
	contactSuffixes = []string{
		"sponsorship manager linkedin",
		"marketing director linkedin",
		"corporate social responsibility lead",
		"community relations manager",
		"engineering director",
	}

	// 行頭（番号付きを含む）の大文字始まり2語以上を人名とみなします。
	contactNamePattern = regexp.MustCompile(`(?:^|\n)(?:\d+\.\s*)?([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	contactRolePattern = regexp.MustCompile(`(?:^|\n)(?:\d+\.\s*)?([A-Za-z\s]+Manager|Director|Lead|Head|Officer)`)
	seniorRolePattern  = regexp.MustCompile(`Director|Manager|Lead|Officer|Head`)

	defaultContactRoles = []string{"Sponsorship Manager", "Marketing Director", "CSR Lead"}
	genericContactRoles = []string{"Marketing Director", "Sponsorship Manager", "Corporate Social Responsibility Lead"}
)

// Profiler はスポンサーシップの意思決定者を推定し、プロファイルを作成します。
type Profiler struct {
	llm       LLM
	collector collector
	steps     Pacer
	cache     artifacts
	settings  Settings
	now       func() time.Time
}

// NewProfiler はProfilerの新しいインスタンスを生成します。
// searchPacer は検索間隔、stepPacer はプロファイル作成間隔を制御します。
func NewProfiler(llm LLM, searcher Searcher, searchPacer, stepPacer Pacer, store ArtifactStore, s Settings) *Profiler {
	s = s.withDefaults()
	return &Profiler{
		llm:       llm,
		collector: collector{searcher: searcher, pacer: searchPacer, perQuery: s.ResultsPerQuery},
		steps:     stepPacer,
		cache:     artifacts{store: store},
		settings:  s,
		now:       time.Now,
	}
}

// Profile は意思決定者のプロファイルを返します。順序は抽出順です。
func (p *Profiler) Profile(ctx context.Context, company string) ([]entity.ContactProfile, error) {
	var cached entity.ContactProfiles
	if p.cache.load(ctx, KindContacts, company, &cached) {
		return cached.Profiles, nil
	}

	hits, err := p.collector.collect(ctx, company, companyQueries(company, contactSuffixes...))
	if err != nil {
		return nil, err
	}
	prompt, err := render("contacts", map[string]any{
		"Company": company,
		"Results": formatHits(hits, queryTitleLinkSnippet("Search Context")),
	})
	if err != nil {
		return nil, fmt.Errorf("render contacts prompt: %w", err)
	}

	identified, err := p.llm.Generate(ctx, prompt, p.settings.Sampling)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("contact identification failed, using generic roles", "company", company, "error", err)
		return genericProfiles(), nil
	}

	names := ExtractContacts(identified, p.settings.MaxContacts)
	slog.Info("building contact profiles", "company", company, "contacts", len(names))

	profiles := make([]entity.ContactProfile, 0, len(names))
	for _, name := range names {
		if err := p.steps.Pace(ctx); err != nil {
			return nil, err
		}
		cp, err := p.buildProfile(ctx, company, name)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, cp)
	}

	p.cache.save(ctx, KindContacts, company, entity.ContactProfiles{
		Profiles:  profiles,
		Timestamp: entity.Timestamp(p.now()),
	})
	return profiles, nil
}

// buildProfile は1名分のプロファイルを作成します。LLMの失敗時は最小限のプロファイルを返します。
func (p *Profiler) buildProfile(ctx context.Context, company, name string) (entity.ContactProfile, error) {
	fallback := entity.ContactProfile{
		Name:               name,
		Role:               "Decision Maker",
		Profile:            "Professional at " + company,
		CommunicationStyle: "Professional, concise communication",
		Connections:        "Potential interest in engineering innovation",
	}
	data := map[string]any{
		"Contact":     name,
		"Company":     company,
		"Affiliation": p.settings.Identity.Affiliation,
		"Focus":       p.settings.ConnectionFocus,
	}

	profile, err := p.generate(ctx, "profile", data)
	if err != nil {
		return p.degrade(ctx, fallback, err)
	}
	connections, err := p.generate(ctx, "connections", data)
	if err != nil {
		return p.degrade(ctx, fallback, err)
	}
	data["Profile"] = profile
	style, err := p.generate(ctx, "communication", data)
	if err != nil {
		return p.degrade(ctx, fallback, err)
	}

	role := "Decision Maker"
	if seniorRolePattern.MatchString(name) {
		role = name
	}
	return entity.ContactProfile{
		Name:               name,
		Role:               role,
		Profile:            profile,
		CommunicationStyle: style,
		Connections:        connections,
	}, nil
}

func (p *Profiler) generate(ctx context.Context, name string, data any) (string, error) {
	prompt, err := render(name, data)
	if err != nil {
		return "", err
	}
	return p.llm.Generate(ctx, prompt, p.settings.Sampling)
}

func (p *Profiler) degrade(ctx context.Context, fallback entity.ContactProfile, err error) (entity.ContactProfile, error) {
	if ctx.Err() != nil {
		return entity.ContactProfile{}, ctx.Err()
	}
	slog.Warn("contact profile failed, using fallback", "contact", fallback.Name, "error", err)
	return fallback, nil
}

// ExtractContacts はLLMの回答から人名を抽出します。
// 人名が見つからない場合は役職名を、それもなければデフォルトの役職を返します。
// 重複を除き、最大 limit 件を返します。
func ExtractContacts(text string, limit int) []string {
	names := submatches(contactNamePattern, text)
	if len(names) == 0 {
		names = submatches(contactRolePattern, text)
	}
	if len(names) == 0 {
		names = defaultContactRoles
	}

	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, limit)
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
		if len(out) == limit {
			break
		}
	}
	return out
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if s := strings.TrimSpace(m[1]); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// genericProfiles は意思決定者を特定できなかった場合の汎用プロファイルです。キャッシュされません。
func genericProfiles() []entity.ContactProfile {
	out := make([]entity.ContactProfile, len(genericContactRoles))
	for i, title := range genericContactRoles {
		out[i] = entity.ContactProfile{
			Name:               title,
			Role:               title,
			Profile:            fmt.Sprintf("Generic profile for %s position", title),
			CommunicationStyle: "Professional",
		}
	}
	return out
}
