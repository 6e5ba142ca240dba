// Package knowledge はクラブ資料（PDF・テキスト）を読み込み、埋め込みで検索できるようにします。
package knowledge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"outreach_backend/internal/feature/outreach/domain"
	"outreach_backend/internal/feature/outreach/usecase"
)

// embedBatchSize は1回の埋め込みリクエストに含めるチャンク数です。
const embedBatchSize = 100

// Embedder はテキストをベクトルに変換します。
// Goの慣例に従い、インターフェースはコンシューマーが定義します。
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Loader はファイルを読み込み、チャンク分割と埋め込みを行います。
type Loader struct {
	embedder  Embedder
	splitter  Splitter
	maxChunks int
}

// LoaderがKnowledgeLoader・DocumentReaderを実装していることをコンパイル時に検証します。
var (
	_ usecase.KnowledgeLoader = (*Loader)(nil)
	_ usecase.DocumentReader  = (*Loader)(nil)
)

// NewLoader はLoaderの新しいインスタンスを生成します。
func NewLoader(embedder Embedder) *Loader {
	return &Loader{embedder: embedder, splitter: NewSplitter(), maxChunks: DefaultMaxChunks}
}

// ReadText はファイルの本文を返します。拡張子が .pdf の場合はテキストを抽出します。
func (l *Loader) ReadText(_ context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	text, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, text); err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	return buf.String(), nil
}

// Load はファイルを順に読み込んで分割し、上限までのチャンクを埋め込んだIndexを返します。
func (l *Loader) Load(ctx context.Context, paths ...string) (usecase.KnowledgeBase, error) {
	var chunks []string
	for _, p := range paths {
		text, err := l.ReadText(ctx, p)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, l.splitter.Split(text)...)
	}
	if len(chunks) > l.maxChunks {
		slog.Warn("club documents truncated", "chunks", len(chunks), "limit", l.maxChunks)
		chunks = chunks[:l.maxChunks]
	}

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		vecs, err := l.embedder.EmbedDocuments(ctx, chunks[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed club documents: %w", err)
		}
		vectors = append(vectors, vecs...)
	}

	slog.Info("club knowledge base built", "documents", len(paths), "chunks", len(chunks))
	return &Index{embedder: l.embedder, chunks: chunks, vectors: vectors}, nil
}
