// Package customsearch はGoogle Programmable Search (Custom Search JSON API) を使ったWeb検索クライアントを提供します。
package customsearch

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"outreach_backend/internal/feature/outreach/domain/entity"
	"outreach_backend/internal/feature/outreach/usecase"
)

// maxResults はAPIが1リクエストで返せる件数の上限です。
const maxResults = 10

// ErrNotConfigured は検索エンジンIDが設定されていないことを示します。
var ErrNotConfigured = errors.New("custom search is not configured")

// Config は検索APIの設定です。
type Config struct {
	APIKey   string
	EngineID string
}

// LoadConfig は環境変数から検索API設定を読み込みます。
func LoadConfig() Config {
	return Config{
		APIKey:   os.Getenv("GOOGLE_SEARCH_API_KEY"),
		EngineID: os.Getenv("GOOGLE_SEARCH_ENGINE_ID"),
	}
}

// Client はCustom Search APIで検索します。
type Client struct {
	svc *customsearch.Service
	cx  string
}

// ClientがSearcherを実装していることをコンパイル時に検証します。
var _ usecase.Searcher = (*Client)(nil)

// NewClient は検索クライアントを生成します。opts はテストでのエンドポイント差し替えに使います。
func NewClient(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if cfg.EngineID == "" {
		return nil, ErrNotConfigured
	}
	if cfg.APIKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}
	return &Client{svc: svc, cx: cfg.EngineID}, nil
}

// Search はクエリに対して最大 n 件の結果を返します。
func (c *Client) Search(ctx context.Context, query string, n int) ([]entity.SearchResult, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > maxResults {
		n = maxResults
	}

	res, err := c.svc.Cse.List().Cx(c.cx).Q(query).Num(int64(n)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("custom search %q failed: %w", query, err)
	}

	results := make([]entity.SearchResult, 0, len(res.Items))
	for _, item := range res.Items {
		results = append(results, entity.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}
