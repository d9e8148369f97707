package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDo_SuccessFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetryThenSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient failure")
		}
		return nil
	},
		WithMaxRetries(5),
		WithInitialDelay(time.Millisecond),
	)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_AllAttemptsFail(t *testing.T) {
	calls := 0
	sentinel := errors.New("permanent failure")

	err := Do(context.Background(), func() error {
		calls++
		return sentinel
	},
		WithMaxRetries(2),
		WithInitialDelay(time.Millisecond),
	)

	assert.Error(t, err)
	// 首次尝试 + 2 次重试
	assert.Equal(t, 3, calls)
	// 原始错误可以被 errors.Is 找到
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_NilFunction(t *testing.T) {
	err := Do(context.Background(), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be nil")
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := Do(ctx, func() error {
		calls++
		return errors.New("always failing")
	},
		WithMaxRetries(10),
		WithInitialDelay(time.Second), // 退避远长于 cancel 时间
	)

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := Do(ctx, func() error {
		return errors.New("slow dependency")
	},
		WithMaxRetries(10),
		WithInitialDelay(50*time.Millisecond),
	)

	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDo_OptionValidation(t *testing.T) {
	// 非法选项值被忽略，退回默认值，不 panic
	calls := 0
	err := Do(context.Background(), func() error {
		calls++
		return nil
	},
		WithMaxRetries(-1),
		WithInitialDelay(-time.Second),
		WithMaxDelay(0),
		WithMultiplier(-2),
	)

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConfig_DelayFor(t *testing.T) {
	cfg := &Config{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     time.Second,
		multiplier:   2.0,
	}

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "第一次重试", attempt: 1, expected: 100 * time.Millisecond},
		{name: "第二次重试", attempt: 2, expected: 200 * time.Millisecond},
		{name: "第三次重试", attempt: 3, expected: 400 * time.Millisecond},
		{name: "超过上限被截断", attempt: 10, expected: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cfg.delayFor(tt.attempt))
		})
	}
}

func TestConfig_DelayForWithJitter(t *testing.T) {
	cfg := &Config{
		initialDelay: 100 * time.Millisecond,
		maxDelay:     time.Minute,
		multiplier:   2.0,
		jitter:       true,
	}

	// 抖动范围 [delay, delay*1.2)
	for i := 0; i < 20; i++ {
		d := cfg.delayFor(1)
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.Less(t, d, 120*time.Millisecond)
	}
}
