// Package usecase はoutreachフィーチャーのビジネスロジックを実装します。
// 企業調査・意思決定者のプロファイリング・テンプレート選択・メール生成を順番に実行します。
package usecase

import (
	"context"

	"outreach_backend/internal/feature/outreach/domain/entity"
)

// Sampling はLLM呼び出し時のサンプリングパラメータです。ゼロ値の項目はモデルの既定値を使います。
type Sampling struct {
	Temperature     float32
	TopP            float32
	TopK            float32
	MaxOutputTokens int32
}

// LLM はプロンプトからテキストを生成するクライアントです。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type LLM interface {
	Generate(ctx context.Context, prompt string, s Sampling) (string, error)
}

// Searcher はWeb検索クライアントです。
type Searcher interface {
	// Search はクエリに対して最大 n 件の結果を返します。
	Search(ctx context.Context, query string, n int) ([]entity.SearchResult, error)
}

// ArtifactStore は企業ごとの中間成果物（調査結果・プロファイルなど）を保存します。
// 存在しない場合、Load は domain.ErrArtifactNotFound を返します。
type ArtifactStore interface {
	Load(ctx context.Context, kind, company string) ([]byte, error)
	Save(ctx context.Context, kind, company string, data []byte) error
	// Purge は企業に関するすべての成果物を削除します。
	Purge(ctx context.Context, company string) error
}

// KnowledgeBase はクラブ資料のチャンクを質問に対する類似度で検索します。
type KnowledgeBase interface {
	Retrieve(ctx context.Context, question string, k int) ([]string, error)
}

// KnowledgeLoader はクラブ資料を読み込み、検索可能なKnowledgeBaseを構築します。
// ファイルが存在しない場合は domain.ErrDocumentNotFound を返します。
type KnowledgeLoader interface {
	Load(ctx context.Context, paths ...string) (KnowledgeBase, error)
}

// DocumentReader はテキストファイル（テンプレートなど）を読み込みます。
// ファイルが存在しない場合は domain.ErrDocumentNotFound を返します。
type DocumentReader interface {
	ReadText(ctx context.Context, path string) (string, error)
}

// Pacer は外部API呼び出しの間隔を制御します。
type Pacer interface {
	Pace(ctx context.Context) error
	Recover(ctx context.Context) error
}

// CompanyDirectory は候補企業の登録先（CRM）です。
type CompanyDirectory interface {
	ListNames(ctx context.Context) ([]string, error)
	// CreateProspect は候補企業を登録します。
	// 重複は domain.ErrDuplicateProspect、検証エラーは domain.ErrInvalidProspect を返します。
	CreateProspect(ctx context.Context, c entity.ProspectCandidate) (uint, error)
}

// Artifact kinds. ファイル名の接頭辞としても使われます。
const (
	KindCompany     = "company"
	KindContacts    = "contacts"
	KindPartnership = "partnership"
	KindCulture     = "culture"
)
