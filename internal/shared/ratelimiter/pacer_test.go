package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPacer_Pace は2回目以降の呼び出しがinterval分待機することを検証します。
func TestPacer_Pace(t *testing.T) {
	t.Parallel()

	p := NewPacer(50*time.Millisecond, 0)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Pace(ctx))
	require.NoError(t, p.Pace(ctx))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}

// TestPacer_ZeroInterval はintervalが0の場合に待機しないことを検証します。
func TestPacer_ZeroInterval(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Pace(ctx))
	}
	require.NoError(t, p.Recover(ctx))

	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

// TestPacer_Recover はrecovery期間だけ待機することを検証します。
func TestPacer_Recover(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, 30*time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Recover(context.Background()))

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

// TestPacer_RecoverCanceled はctxキャンセル時に即座にエラーを返すことを検証します。
func TestPacer_RecoverCanceled(t *testing.T) {
	t.Parallel()

	p := NewPacer(0, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Recover(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
