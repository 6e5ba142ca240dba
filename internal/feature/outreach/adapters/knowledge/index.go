package knowledge

import (
	"context"
	"fmt"
	"math"
	"sort"

	"outreach_backend/internal/feature/outreach/usecase"
)

// Index はチャンクと埋め込みベクトルを保持し、コサイン類似度で検索します。
type Index struct {
	embedder Embedder
	chunks   []string
	vectors  [][]float32
}

// IndexがKnowledgeBaseを実装していることをコンパイル時に検証します。
var _ usecase.KnowledgeBase = (*Index)(nil)

// Len は登録済みチャンク数を返します。
func (x *Index) Len() int { return len(x.chunks) }

// Retrieve は質問に近い順に最大 k 件のチャンクを返します。
func (x *Index) Retrieve(ctx context.Context, question string, k int) ([]string, error) {
	if len(x.chunks) == 0 || k <= 0 {
		return nil, nil
	}

	q, err := x.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	type scored struct {
		i     int
		score float64
	}
	ranked := make([]scored, len(x.vectors))
	for i, v := range x.vectors {
		ranked[i] = scored{i: i, score: cosine(q, v)}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := range k {
		out[i] = x.chunks[ranked[i].i]
	}
	return out, nil
}

func cosine(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, na, nb float64
	for i := range n {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
