// Package ratelimiter は外部API呼び出しの間隔を制御するペーサーを提供します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Pacer は呼び出し間隔を固定し、エラー後には長めの待機を行います。
// リトライやバックオフは行いません。
type Pacer struct {
	limiter  *rate.Limiter
	recovery time.Duration
}

// NewPacer は新しいPacerのインスタンスを生成します。
// interval が0以下の場合は待機しません。
func NewPacer(interval, recovery time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		limiter:  rate.NewLimiter(limit, 1),
		recovery: recovery,
	}
}

// Pace は次の呼び出しが許可されるまで待機します。ctxがキャンセルされた場合はエラーを返します。
func (p *Pacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Recover はエラー後の回復待機を行います。
func (p *Pacer) Recover(ctx context.Context) error {
	if p.recovery <= 0 {
		return nil
	}
	slog.Debug("pacing after error", "sleep", p.recovery)

	t := time.NewTimer(p.recovery)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
