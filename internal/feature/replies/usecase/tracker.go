// Package usecase は送信済みメールへの返信を受信箱から検出します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	crmentity "outreach_backend/internal/feature/crm/domain/entity"
	"outreach_backend/internal/feature/replies/domain"
	"outreach_backend/internal/feature/replies/domain/entity"
)

// PendingStore は返信待ちメールの取得と更新を行います。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type PendingStore interface {
	ListAwaitingReply(ctx context.Context) ([]crmentity.PendingReply, error)
	MarkResponded(ctx context.Context, id uint) error
}

// Inbox は受信箱への接続を開きます。
type Inbox interface {
	Open(ctx context.Context) (InboxSession, error)
}

// InboxSession はログイン済みの受信箱です。使用後は Close を呼んでください。
type InboxSession interface {
	// HasMessageFrom は since 以降に from から届いたメールがあるかを返します。
	HasMessageFrom(ctx context.Context, from string, since time.Time) (bool, error)
	Close() error
}

// Tracker は未返信メールの宛先企業から届いたメールを探し、見つかったものを responded にします。
type Tracker struct {
	store PendingStore
	inbox Inbox
}

// NewTracker はTrackerの新しいインスタンスを生成します。inbox が nil の場合、Track は domain.ErrInboxNotConfigured を返します。
func NewTracker(store PendingStore, inbox Inbox) *Tracker {
	return &Tracker{store: store, inbox: inbox}
}

// Track は返信待ちメールをすべて確認します。
// 個々のメールの検索や更新に失敗した場合はログに記録して次へ進みます。
func (t *Tracker) Track(ctx context.Context) (entity.TrackResult, error) {
	var res entity.TrackResult
	if t.inbox == nil {
		return res, domain.ErrInboxNotConfigured
	}

	pending, err := t.store.ListAwaitingReply(ctx)
	if err != nil {
		return res, fmt.Errorf("list pending emails: %w", err)
	}
	if len(pending) == 0 {
		return res, nil
	}

	sess, err := t.inbox.Open(ctx)
	if err != nil {
		return res, fmt.Errorf("open inbox: %w", err)
	}
	defer func() {
		if err := sess.Close(); err != nil {
			slog.Warn("failed to close inbox", "error", err)
		}
	}()

	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++

		found, err := sess.HasMessageFrom(ctx, p.CompanyEmail, p.SentAt)
		if err != nil {
			slog.Warn("inbox search failed", "email_id", p.EmailID, "from", p.CompanyEmail, "error", err)
			continue
		}
		if !found {
			continue
		}
		if err := t.store.MarkResponded(ctx, p.EmailID); err != nil {
			slog.Warn("failed to mark email responded", "email_id", p.EmailID, "error", err)
			continue
		}
		slog.Info("reply detected", "email_id", p.EmailID, "from", p.CompanyEmail, "subject", p.Subject)
		res.Responded++
	}
	return res, nil
}
