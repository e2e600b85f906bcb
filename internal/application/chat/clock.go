package chat

import (
	"context"
	"time"
)

// Clock 可注入的时间源
// 轮询循环通过它睡眠，测试里换成假时钟就不用真实等待
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

// systemClock 真实时钟
type systemClock struct{}

// NewSystemClock 创建真实时钟
func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Sleep 可被上下文取消的睡眠，客户端断开时及时释放请求
func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
