// Package gemini はGoogle Gemini APIを使用したテキスト生成・埋め込みクライアントを提供します。
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/genai"

	"outreach_backend/internal/feature/outreach/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultEmbeddingModel は資料チャンクの埋め込みに使うモデルです。
	DefaultEmbeddingModel = "gemini-embedding-001"

	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Config はGeminiクライアントの設定です。
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	// BaseURL はテスト用のエンドポイント上書きです。
	BaseURL string
	// HTTPClient は接続・タイムアウト設定済みのクライアントです。nil の場合はgenaiの既定を使います。
	HTTPClient *http.Client
}

// LoadConfig は環境変数からGemini設定を読み込みます。
// GEMINI_API_KEY が未設定の場合はADC（Vertex AI）で接続します。
func LoadConfig() Config {
	return Config{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Model:          os.Getenv("GEMINI_MODEL"),
		EmbeddingModel: os.Getenv("GEMINI_EMBEDDING_MODEL"),
	}
}

// Client はGemini APIを使用してテキストを生成します。
type Client struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

// ClientがLLMを実装していることをコンパイル時に検証します。
var _ usecase.LLM = (*Client)(nil)

// NewClient はGeminiクライアントの新しいインスタンスを生成します。
// APIキーがない場合は環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION を使います。
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var cc *genai.ClientConfig
	if cfg.APIKey != "" {
		cc = &genai.ClientConfig{
			APIKey:      cfg.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  cfg.HTTPClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
		}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c := &Client{client: client, model: cfg.Model, embeddingModel: cfg.EmbeddingModel}
	if c.model == "" {
		c.model = DefaultModel
	}
	if c.embeddingModel == "" {
		c.embeddingModel = DefaultEmbeddingModel
	}
	return c, nil
}

// Generate はプロンプトからテキストを生成します。
func (c *Client) Generate(ctx context.Context, prompt string, s usecase.Sampling) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), generationConfig(s))
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini API returned empty response")
	}
	return text, nil
}

// generationConfig はゼロ値の項目をモデル既定値のまま残します。
func generationConfig(s usecase.Sampling) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{MaxOutputTokens: s.MaxOutputTokens}
	if s.Temperature != 0 {
		cfg.Temperature = genai.Ptr(s.Temperature)
	}
	if s.TopP != 0 {
		cfg.TopP = genai.Ptr(s.TopP)
	}
	if s.TopK != 0 {
		cfg.TopK = genai.Ptr(s.TopK)
	}
	return cfg
}

// EmbedDocuments は資料チャンクを検索対象として埋め込みます。
func (c *Client) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	return c.embed(ctx, texts, taskRetrievalDocument)
}

// EmbedQuery は質問文を検索クエリとして埋め込みます。
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.embed(ctx, []string{text}, taskRetrievalQuery)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (c *Client) embed(ctx context.Context, texts []string, task string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.embeddingModel, contents, &genai.EmbedContentConfig{TaskType: task})
	if err != nil {
		return nil, fmt.Errorf("gemini embedding request failed: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	vecs := make([][]float32, len(resp.Embeddings))
	for i, e := range resp.Embeddings {
		vecs[i] = e.Values
	}
	return vecs, nil
}
