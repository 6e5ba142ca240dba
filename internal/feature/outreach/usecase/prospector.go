package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"strings"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/domain/entity"
)

const (
	// DefaultProspectCount は1回の生成で提案させる企業数です。
	DefaultProspectCount = 3
	// existingNamesSample はプロンプトに含める既存企業名の上限です。
	existingNamesSample = 50
)

// ProspectSampling は候補企業の生成に使うサンプリング設定です。多様な結果を得るため温度を高くしています。
var ProspectSampling = Sampling{Temperature: 0.9, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048}

var prospectHeading = regexp.MustCompile(`^(?:\d+\.|Company \d+:)\s*(.*)$`)

// Prospector はLLMにスポンサー候補企業を提案させ、CRMに登録します。
type Prospector struct {
	llm   LLM
	dir   CompanyDirectory
	count int
}

// NewProspector はProspectorの新しいインスタンスを生成します。count が0以下の場合は DefaultProspectCount です。
func NewProspector(llm LLM, dir CompanyDirectory, count int) *Prospector {
	if count <= 0 {
		count = DefaultProspectCount
	}
	return &Prospector{llm: llm, dir: dir, count: count}
}

// Generate は条件に合う候補企業を生成して登録します。
// 既存企業と同名（大文字小文字を区別しない）の候補や、同じバッチ内の重複はスキップされます。
func (p *Prospector) Generate(ctx context.Context, c entity.ProspectCriteria) (entity.ProspectResult, error) {
	var result entity.ProspectResult

	names, err := p.dir.ListNames(ctx)
	if err != nil {
		slog.Warn("failed to load existing companies", "error", err)
		names = nil
	}
	count := c.Count
	if count <= 0 {
		count = p.count
	}

	prompt, err := render("prospect", map[string]any{
		"Count":    count,
		"Industry": c.Industry,
		"Size":     c.Size,
		"Location": c.Location,
		"Sector":   c.Sector,
		"Vibe":     c.Vibe,
		"Details":  c.Details,
		"Existing": existingSummary(names),
	})
	if err != nil {
		return result, fmt.Errorf("render prospect prompt: %w", err)
	}

	text, err := p.llm.Generate(ctx, prompt, ProspectSampling)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		slog.Warn("prospect generation failed", "error", err)
		return result, nil
	}

	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	for _, cand := range ParseProspects(text) {
		key := strings.ToLower(strings.TrimSpace(cand.Name))
		if key == "" {
			result.Skipped++
			continue
		}
		if _, dup := seen[key]; dup {
			result.Skipped++
			continue
		}
		seen[key] = struct{}{}

		id, err := p.dir.CreateProspect(ctx, cand)
		switch {
		case errors.Is(err, domain.ErrDuplicateProspect), errors.Is(err, domain.ErrInvalidProspect):
			slog.Debug("skipping prospect", "name", cand.Name, "reason", err)
			result.Skipped++
			continue
		case err != nil:
			return result, fmt.Errorf("create prospect %q: %w", cand.Name, err)
		}
		result.CreatedIDs = append(result.CreatedIDs, id)
		result.Created = append(result.Created, cand)
	}
	slog.Info("prospects generated", "created", len(result.Created), "skipped", result.Skipped)
	return result, nil
}

// existingSummary は既存企業名をカンマ区切りにします。上限を超える場合はランダムに抽出します。
func existingSummary(names []string) string {
	if len(names) <= existingNamesSample {
		return strings.Join(names, ", ")
	}
	sample := make([]string, existingNamesSample)
	for i, j := range rand.Perm(len(names))[:existingNamesSample] {
		sample[i] = names[j]
	}
	return fmt.Sprintf("%s and %d others", strings.Join(sample, ", "), len(names)-existingNamesSample)
}

// ParseProspects はLLMの回答から候補企業を取り出します。
// 最初の '[' から最後の ']' までをJSON配列として解釈し、失敗した場合は "Key: value" 形式の行を解析します。
func ParseProspects(text string) []entity.ProspectCandidate {
	start, end := strings.Index(text, "["), strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		var out []entity.ProspectCandidate
		if err := json.Unmarshal([]byte(text[start:end+1]), &out); err == nil {
			return out
		}
	}
	return parseProspectLines(text)
}

func parseProspectLines(text string) []entity.ProspectCandidate {
	var (
		out []entity.ProspectCandidate
		cur *entity.ProspectCandidate
	)
	flush := func() {
		if cur != nil && cur.Name != "" {
			out = append(out, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "-*• ")
		if line == "" {
			continue
		}
		if m := prospectHeading.FindStringSubmatch(line); m != nil {
			flush()
			cur = &entity.ProspectCandidate{}
			name := m[1]
			if k, v, ok := strings.Cut(name, ":"); ok && strings.EqualFold(strings.Trim(k, "* "), "name") {
				name = v
			}
			cur.Name = strings.Trim(strings.TrimSpace(name), "*")
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := strings.ToLower(strings.Trim(strings.TrimSpace(k), "*"))
		val := strings.Trim(strings.TrimSpace(v), "*")
		val = strings.TrimSpace(val)
		if key == "name" {
			if cur != nil && cur.Name != "" {
				flush()
			}
			if cur == nil {
				cur = &entity.ProspectCandidate{}
			}
			cur.Name = val
			continue
		}
		if cur == nil {
			continue
		}
		switch key {
		case "website":
			cur.Website = val
		case "email":
			cur.Email = val
		case "description":
			cur.Description = val
		case "contact person", "contact_person":
			cur.ContactPerson = val
		case "industry":
			cur.Industry = val
		case "location":
			cur.Location = val
		case "size":
			cur.Size = val
		}
	}
	flush()
	return out
}
