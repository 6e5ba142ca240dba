package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"outreach_backend/internal/feature/outreach/domain"
)

// unsafeKeyChars はファイル名やRedisキーに使えない文字です。
var unsafeKeyChars = regexp.MustCompile(`[/\\:*?"<>|\x00]`)

// ArtifactKey は企業名を成果物の保存キーに正規化します。
// 小文字化し、空白と使えない文字を _ に置き換えます。ArtifactStoreの実装はすべてこれを使います。
func ArtifactKey(company string) string {
	name := strings.ToLower(strings.TrimSpace(company))
	name = strings.ReplaceAll(name, " ", "_")
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// artifacts はArtifactStoreへのJSON読み書きを行います。
// キャッシュの失敗はパイプラインを止めず、ログに記録するだけです。
type artifacts struct {
	store ArtifactStore
}

// load はキャッシュ済みの成果物を v に読み込みます。ヒットした場合のみ true を返します。
func (a artifacts) load(ctx context.Context, kind, company string, v any) bool {
	if a.store == nil {
		return false
	}
	b, err := a.store.Load(ctx, kind, company)
	if err != nil {
		if !errors.Is(err, domain.ErrArtifactNotFound) {
			slog.Warn("failed to load cached artifact", "kind", kind, "company", company, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		slog.Warn("cached artifact is corrupt, recomputing", "kind", kind, "company", company, "error", err)
		return false
	}
	slog.Info("using cached artifact", "kind", kind, "company", company)
	return true
}

// save は成果物を保存します。
func (a artifacts) save(ctx context.Context, kind, company string, v any) {
	if a.store == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode artifact", "kind", kind, "company", company, "error", err)
		return
	}
	if err := a.store.Save(ctx, kind, company, b); err != nil {
		slog.Warn("failed to cache artifact", "kind", kind, "company", company, "error", err)
	}
}
