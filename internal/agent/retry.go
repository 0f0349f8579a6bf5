package agent

import (
	"context"
	"errors"
	"time"
)

// 重试策略默认值 / Retry policy defaults
const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = 1500 * time.Millisecond
)

// RetryOptions 有界重试加线性退避的策略。Sleep 可注入以便测试同步执行。
// RetryOptions is the bounded-retry-with-linear-backoff policy. Sleep is
// injectable so tests run synchronously.
type RetryOptions struct {
	MaxRetries int
	BaseDelay  time.Duration
	Sleep      func(time.Duration)
}

func (o RetryOptions) normalized() RetryOptions {
	if o.MaxRetries <= 0 {
		o.MaxRetries = DefaultMaxRetries
	}
	if o.BaseDelay <= 0 {
		o.BaseDelay = DefaultBaseDelay
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}
	return o
}

// Messages 每种操作的失败文案：传输失败且无错误消息时的兜底文案，
// 以及矫正失败的固定文案。
// Messages holds the per-operation failure wording: the fallback when a
// transport failure carries no message, and the fixed coercion-failure text.
type Messages struct {
	TransportFallback string
	ParseFailure      string
}

// Call 以有界重试包装一次智能体调用。第 0 次尝试立即发起，第 n 次尝试
// 前先等 baseDelay*n（1500ms、3000ms…）。传输失败与矫正失败同等对待，
// 都记录消息并进入下一次尝试；首个可用的矫正结果立即返回。
// 尝试耗尽后以最后记录的消息作为终态错误，绝不无声放弃。
// Call wraps one agent invocation with bounded retry. Attempt 0 fires
// immediately; attempt n is preceded by a baseDelay*n sleep (1500ms,
// 3000ms...). Transport and coercion failures are treated alike: record the
// message and continue. The first usable coerced value returns immediately.
// After exhausting all attempts the last recorded message becomes the
// terminal error; the wrapper never gives up silently.
func Call[T any](ctx context.Context, client Client, message, agentID string, coerce func(any) (T, bool), msgs Messages, opts RetryOptions) (T, error) {
	opts = opts.normalized()

	var zero T
	lastError := ""

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			opts.Sleep(opts.BaseDelay * time.Duration(attempt))
		}

		result := client.Invoke(ctx, message, agentID)
		if !result.Success {
			lastError = result.Error
			if lastError == "" {
				lastError = msgs.TransportFallback
			}
			continue
		}

		var payload any
		if result.Response != nil {
			payload = result.Response.Result
		}
		if value, ok := coerce(payload); ok {
			return value, nil
		}
		lastError = msgs.ParseFailure
	}

	if lastError == "" {
		lastError = msgs.TransportFallback
	}
	return zero, errors.New(lastError)
}
