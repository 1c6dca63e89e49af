package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// RetryConfig は起動時のDB接続リトライ設定。
type RetryConfig struct {
	// Attempts は疎通確認の最大試行回数（1以上）。
	Attempts int
	// PingTimeout は1回の疎通確認のタイムアウト。
	PingTimeout time.Duration
	// InitialBackoff は初回失敗後の待機時間。以降2倍ずつ増加する。
	InitialBackoff time.Duration
	// MaxBackoff は待機時間の上限。
	MaxBackoff time.Duration
}

// DefaultRetryConfig はデフォルトのリトライ設定を返す。
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:       5,
		PingTimeout:    5 * time.Second,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     8 * time.Second,
	}
}

// CalculateBackoff は連続失敗回数に基づいて指数バックオフ遅延を計算する。
func (c RetryConfig) CalculateBackoff(consecutiveErrors int) time.Duration {
	delay := c.InitialBackoff
	for i := 0; i < consecutiveErrors; i++ {
		delay *= 2
		if delay > c.MaxBackoff {
			return c.MaxBackoff
		}
	}
	return delay
}

// WaitForConnection はDBに到達できるまで指数バックオフで疎通確認を繰り返す。
// 全試行が失敗した場合、またはctxがキャンセルされた場合は最後のエラーを返す。
func WaitForConnection(ctx context.Context, db *sql.DB, cfg RetryConfig) error {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = Ping(ctx, db, cfg.PingTimeout)
		if lastErr == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		delay := cfg.CalculateBackoff(i)
		slog.Warn("database not reachable, retrying",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			slog.Duration("backoff", delay),
			slog.String("error", lastErr.Error()),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("gave up waiting for database: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("database not reachable after %d attempts: %w", attempts, lastErr)
}
