// Package handler はrepliesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"outreach_backend/internal/api"
	"outreach_backend/internal/feature/replies/domain"
	"outreach_backend/internal/feature/replies/domain/entity"
)

// ReplyTracker は返信チェックのユースケースです。
type ReplyTracker interface {
	Track(ctx context.Context) (entity.TrackResult, error)
}

// RepliesHandler は返信トラッキングのHTTPリクエストを処理します。
type RepliesHandler struct {
	tracker ReplyTracker
}

// NewRepliesHandler はRepliesHandlerの新しいインスタンスを生成します。
func NewRepliesHandler(tracker ReplyTracker) *RepliesHandler {
	return &RepliesHandler{tracker: tracker}
}

// TrackReplies は POST /api/emails/track_replies を処理します。
func (h *RepliesHandler) TrackReplies(c *gin.Context) {
	res, err := h.tracker.Track(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInboxNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "reply tracking is not configured"})
			return
		}
		slog.Error("failed to track replies", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to check inbox"})
		return
	}
	c.JSON(http.StatusOK, api.TrackRepliesResponse{Checked: res.Checked, Responded: res.Responded})
}
