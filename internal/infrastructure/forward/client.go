package forward

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"log/slog"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// Client 自引用转发客户端
// 上传管道配置了 forward_base_url 时，提取出的文档内容通过 HTTP
// 回环投递到本服务的消息端点，而不是进程内直接调用
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient 创建转发客户端；baseURL 形如 http://localhost:8080
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// 下游自己会轮询运行状态，这里给足余量
			Timeout: 5 * time.Minute,
		},
		logger: log.NewModuleLogger("forward", "client"),
	}
}

// messageRequest 消息端点的请求体
type messageRequest struct {
	Content string                   `json:"content"`
	History []assistant.HistoryEntry `json:"history,omitempty"`
}

// messageResponse 消息端点的响应体
type messageResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

// SendMessage 把一轮用户内容投递到消息端点并取回助手回复
func (c *Client) SendMessage(ctx context.Context, threadID, content string, history []assistant.HistoryEntry) (string, error) {
	body, err := json.Marshal(messageRequest{
		Content: content,
		History: history,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal forward request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/v1/assistants/threads/%s/messages",
		c.baseURL, url.PathEscape(threadID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create forward request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Forwarding message", "endpoint", endpoint, "thread_id", threadID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("forward request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read forward response: %w", err)
	}

	var out messageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("malformed forward response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := out.Error
		if msg == "" {
			msg = string(raw)
		}
		return "", &assistant.RemoteError{Status: resp.StatusCode, Message: msg}
	}

	// 回复字段缺失按空回复处理，而不是当成 nil 解引用去崩
	if out.Reply == "" {
		return "", assistant.ErrEmptyReply
	}
	return out.Reply, nil
}
