// Package middleware はGinの共通ミドルウェア（リクエストID・アクセスログ）を提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID はリクエストIDを受け渡すHTTPヘッダーです。
	HeaderRequestID = "X-Request-ID"
	// ContextRequestID はgin.ContextにリクエストIDを保存するキーです。
	ContextRequestID = "request_id"

	maxRequestIDLength = 128
)

// RequestID は受信したX-Request-IDを引き継ぎ、なければUUIDを発行します。
// IDはレスポンスヘッダーとgin.Contextに設定されます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog はリクエストごとに1行のslogログを出力します。5xxはError、4xxはWarnです。
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"remote_addr", c.ClientIP(),
			"request_id", c.GetString(ContextRequestID),
		}
		switch {
		case status >= 500:
			slog.Error("request", attrs...)
		case status >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
