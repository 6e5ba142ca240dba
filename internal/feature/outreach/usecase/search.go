package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

// hit はクエリ文脈付きの検索結果です。
type hit struct {
	Query string
	entity.SearchResult
}

// collector は複数クエリの検索結果を順番に集めます。
// 個々の検索失敗はログに記録して次のクエリへ進みます。
type collector struct {
	searcher Searcher
	pacer    Pacer
	perQuery int
}

// collect はクエリを順番に実行します。ctxがキャンセルされた場合のみエラーを返します。
func (c collector) collect(ctx context.Context, company string, queries []string) ([]hit, error) {
	var hits []hit
	for i, q := range queries {
		if err := c.pacer.Pace(ctx); err != nil {
			return nil, err
		}
		results, err := c.searcher.Search(ctx, q, c.perQuery)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("search query failed", "company", company, "query", q, "error", err)
			if err := c.pacer.Recover(ctx); err != nil {
				return nil, err
			}
			continue
		}
		slog.Debug("search query done", "company", company, "query", q, "n", i+1, "of", len(queries), "results", len(results))
		for _, r := range results {
			hits = append(hits, hit{Query: q, SearchResult: r})
		}
	}
	return hits, nil
}

// companyQueries は "{company} {suffix}" 形式のクエリを生成します。
func companyQueries(company string, suffixes ...string) []string {
	out := make([]string, len(suffixes))
	for i, s := range suffixes {
		out[i] = company + " " + s
	}
	return out
}

// formatHits は検索結果を1件ずつ整形し、空行で連結します。
func formatHits(hits []hit, format func(h hit) string) string {
	parts := make([]string, len(hits))
	for i, h := range hits {
		parts[i] = format(h)
	}
	return strings.Join(parts, "\n\n")
}

func queryTitleLinkSnippet(label string) func(h hit) string {
	return func(h hit) string {
		return fmt.Sprintf("%s: %s\nTitle: %s\nLink: %s\nSnippet: %s", label, h.Query, h.Title, h.Link, h.Snippet)
	}
}
