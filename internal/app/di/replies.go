package di

import (
	"log/slog"

	"gorm.io/gorm"

	crmadapters "outreach_backend/internal/feature/crm/adapters"
	"outreach_backend/internal/feature/replies/adapters/imapinbox"
	replieshandler "outreach_backend/internal/feature/replies/transport/handler"
	repliesusecase "outreach_backend/internal/feature/replies/usecase"
	"outreach_backend/internal/platform/secrets"
)

// NewReplyTracker は返信待ちメールとIMAP受信箱を接続したTrackerを生成します。
// IMAPが未設定の場合、追跡は ErrInboxNotConfigured を返します。
func NewReplyTracker(db *gorm.DB) *repliesusecase.Tracker {
	return repliesusecase.NewTracker(crmadapters.NewEmailGorm(db), newInbox())
}

// NewRepliesHandler は返信追跡のハンドラーを生成します。
func NewRepliesHandler(db *gorm.DB) *replieshandler.RepliesHandler {
	return replieshandler.NewRepliesHandler(NewReplyTracker(db))
}

func newInbox() repliesusecase.Inbox {
	cfg := imapinbox.LoadConfig()
	if !cfg.Enabled() {
		return nil
	}
	password, err := secrets.Password(secrets.IMAPAccount(cfg.Username, cfg.Host), "IMAP_PASSWORD")
	if err != nil {
		slog.Warn("IMAP password unavailable; reply tracking disabled", "error", err)
		return nil
	}
	return imapinbox.New(cfg, password)
}
