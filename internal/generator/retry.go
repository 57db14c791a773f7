package generator

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy 固定间隔重试
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy 最多 3 次，每次失败后等待 1 秒
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, Delay: time.Second}

// Do 执行 fn 直到成功或次数耗尽；onFailure 可为 nil，每次失败后回调（attempt 从 1 开始）
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error, onFailure func(attempt int, err error)) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		if onFailure != nil {
			onFailure(attempt, err)
		}

		if attempt == attempts {
			break
		}
		if p.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay):
			}
		} else if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("generator: %d attempts failed: %w", attempts, lastErr)
}
