package generator

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/LJTian/MarketCards/internal/processor"
)

// ErrEmptyResponse 模型返回了空文本，按失败处理并重试
var ErrEmptyResponse = errors.New("generator: empty response")

// Provider 外部文本生成服务
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Options struct {
	Policy RetryPolicy
	// Timeout 单次调用超时，0 表示不限制
	Timeout time.Duration
	// RPS 调用速率上限，0 表示不限速
	RPS    float64
	Logger logrus.FieldLogger
}

// Transformer 带重试的模型调用，失败只影响当前条目
type Transformer struct {
	provider Provider
	policy   RetryPolicy
	timeout  time.Duration
	limiter  *rate.Limiter
	log      logrus.FieldLogger
}

// Result 一次转换的结果
type Result struct {
	processor.Transformed
	Case     ParseCase
	Attempts int
	// Degraded 重试耗尽，Transformed 为占位内容
	Degraded bool
}

func NewTransformer(p Provider, opts Options) *Transformer {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), 1)
	}
	if opts.Policy.MaxAttempts <= 0 {
		opts.Policy = DefaultRetryPolicy
	}
	l := opts.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}

	return &Transformer{
		provider: p,
		policy:   opts.Policy,
		timeout:  opts.Timeout,
		limiter:  limiter,
		log:      l.WithField("component", "generator"),
	}
}

// Transform 调用模型并解析输出；总是返回一个可用的结果
func (t *Transformer) Transform(ctx context.Context, prompt string) Result {
	var (
		text     string
		attempts int
	)

	err := t.policy.Do(ctx, func(ctx context.Context) error {
		attempts++
		out, err := t.generate(ctx, prompt)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, func(attempt int, err error) {
		t.log.WithError(err).Warnf("gemini error, retrying (%d/%d)", attempt, t.policy.MaxAttempts)
	})
	if err != nil {
		return Result{
			Transformed: processor.Transformed{Question: FailedQuestion},
			Case:        ParsedFallback,
			Attempts:    attempts,
			Degraded:    true,
		}
	}

	tr, c := ParseResponse(text)
	return Result{Transformed: tr, Case: c, Attempts: attempts}
}

func (t *Transformer) generate(ctx context.Context, prompt string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	text, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
