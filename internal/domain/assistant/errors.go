package assistant

import (
	"errors"
	"fmt"
)

// 错误分类：
//   - BadRequestError / UnsupportedFormatError / DocumentTooLargeError → 400
//   - ErrRunTimeout → 504
//   - 其余（提取失败、远端失败、运行失败、空回复）→ 500
var (
	// ErrEmptyReply 运行完成但消息列表里找不到助手回复
	// 与运行失败是两种情况，调用方需要区分
	ErrEmptyReply = errors.New("run completed but no assistant reply was found")

	// ErrRunTimeout 轮询在配置的时限内未等到终态
	ErrRunTimeout = errors.New("assistant run did not reach a terminal state in time")
)

// BadRequestError 输入缺失或格式非法
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return e.Reason
}

// NewBadRequest 创建输入错误
func NewBadRequest(reason string) error {
	return &BadRequestError{Reason: reason}
}

// UnsupportedFormatError 上传文件的 MIME 类型不受支持
type UnsupportedFormatError struct {
	MIMEType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s", e.MIMEType)
}

// ExtractionError 文档解析失败（损坏、编码异常等），携带底层原因
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract document text: %v", e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// DocumentTooLargeError 提取文本超过配置的 token 上限
type DocumentTooLargeError struct {
	Tokens int
	Limit  int
}

func (e *DocumentTooLargeError) Error() string {
	return fmt.Sprintf("document too large: %d tokens (limit %d)", e.Tokens, e.Limit)
}

// RemoteError 远端服务商拒绝或失败的调用
// 不做本地错误码翻译，原样携带状态码与消息
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("assistant API error (status %d): %s", e.Status, e.Message)
}

// RunFailedError 运行到达非成功终态
type RunFailedError struct {
	Status    RunStatus
	LastError string
}

func (e *RunFailedError) Error() string {
	if e.LastError != "" {
		return fmt.Sprintf("assistant run %s: %s", e.Status, e.LastError)
	}
	return fmt.Sprintf("assistant run %s", e.Status)
}
