// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は依存先1件あたりの疎通確認の上限時間です。
const checkTimeout = 2 * time.Second

// Check は依存先（DB・Redisなど）の疎通確認です。Ping が nil の場合は "disabled" と報告します。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler はサービスヘルスチェック用の /healthz エンドポイントを処理します。
type HealthHandler struct {
	checks []Check
}

// NewHealthHandler はHealthHandlerの新しいインスタンスを生成します。
func NewHealthHandler(checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health は依存先の状態を確認し、HTTPメソッドに応じてレスポンスします。
// いずれかの依存先が失敗した場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	status, results := h.run(c.Request.Context())
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(code)
		return
	}
	body := gin.H{"status": status}
	if len(results) > 0 {
		body["checks"] = results
	}
	c.JSON(code, body)
}

func (h *HealthHandler) run(ctx context.Context) (string, map[string]string) {
	status := "ok"
	results := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if chk.Ping == nil {
			results[chk.Name] = "disabled"
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := chk.Ping(cctx)
		cancel()
		if err != nil {
			results[chk.Name] = "error"
			status = "degraded"
			continue
		}
		results[chk.Name] = "ok"
	}
	return status, results
}
