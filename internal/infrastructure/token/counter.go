package token

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// 在包初始化时设置离线加载器，避免运行期下载编码文件
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Counter 使用 tiktoken 统计文本 token 数量
type Counter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex
}

var (
	counterInstance *Counter
	counterOnce     sync.Once
	counterErr      error
)

// NewCounter 获取 Counter 单例
// 编码文件加载开销大，进程内只做一次
func NewCounter() (*Counter, error) {
	counterOnce.Do(func() {
		// cl100k_base 与 GPT-4 系模型兼容
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			counterErr = err
			return
		}
		counterInstance = &Counter{encoding: enc}
	})

	if counterErr != nil {
		return nil, counterErr
	}
	return counterInstance, nil
}

// Count 计算文本的 token 数量
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.encoding.Encode(text, nil, nil))
}
