package llm

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// Client 远端助手 API 客户端
// 实现 assistant.Client 与 assistant.Completer 两种能力，
// 除传输层外不做任何客户端重试
type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient 创建远端客户端
func NewClient(cfg *config.Config) *Client {
	apiCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		apiCfg.BaseURL = cfg.OpenAI.BaseURL
	}

	return &Client{
		api:    openai.NewClientWithConfig(apiCfg),
		model:  cfg.OpenAI.Model,
		logger: log.NewModuleLogger("llm", "client"),
	}
}

var (
	_ assistant.Client    = (*Client)(nil)
	_ assistant.Completer = (*Client)(nil)
)

// CreateThread 创建新会话线程
func (c *Client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", c.remoteErr("create thread", err)
	}

	c.logger.Debug("Thread created", "thread_id", thread.ID)
	return thread.ID, nil
}

// PostMessage 向线程追加消息
func (c *Client) PostMessage(ctx context.Context, threadID, role, text string) (string, error) {
	msg, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    role,
		Content: text,
	})
	if err != nil {
		return "", c.remoteErr("post message", err)
	}
	return msg.ID, nil
}

// StartRun 在线程上启动一次运行
func (c *Client) StartRun(ctx context.Context, threadID, assistantID, instructions string) (assistant.Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID:  assistantID,
		Instructions: instructions,
	})
	if err != nil {
		return assistant.Run{}, c.remoteErr("start run", err)
	}

	c.logger.Debug("Run started",
		"thread_id", threadID,
		"run_id", run.ID,
		"status", run.Status,
	)
	return toRun(run), nil
}

// GetRun 查询运行状态
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (assistant.Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return assistant.Run{}, c.remoteErr("get run", err)
	}
	return toRun(run), nil
}

// SubmitToolOutputs 回传工具结果
func (c *Client) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []assistant.ToolOutput) (assistant.Run, error) {
	toolOutputs := make([]openai.ToolOutput, 0, len(outputs))
	for _, o := range outputs {
		toolOutputs = append(toolOutputs, openai.ToolOutput{
			ToolCallID: o.ToolCallID,
			Output:     o.Output,
		})
	}

	run, err := c.api.SubmitToolOutputs(ctx, threadID, runID, openai.SubmitToolOutputsRequest{
		ToolOutputs: toolOutputs,
	})
	if err != nil {
		return assistant.Run{}, c.remoteErr("submit tool outputs", err)
	}
	return toRun(run), nil
}

// ListMessages 按服务商顺序（最新在前）返回线程消息
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]assistant.Message, error) {
	list, err := c.api.ListMessage(ctx, threadID, nil, nil, nil, nil, nil)
	if err != nil {
		return nil, c.remoteErr("list messages", err)
	}

	messages := make([]assistant.Message, 0, len(list.Messages))
	for _, m := range list.Messages {
		messages = append(messages, assistant.Message{
			ID:        m.ID,
			Role:      m.Role,
			Text:      messageText(m),
			CreatedAt: int64(m.CreatedAt),
		})
	}
	return messages, nil
}

// UploadFile 上传文件，purpose 固定为 assistants
func (c *Client) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	file, err := c.api.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    filename,
		Bytes:   data,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		return "", c.remoteErr("upload file", err)
	}

	c.logger.Info("File uploaded", "file_id", file.ID, "filename", filename)
	return file.ID, nil
}

// AttachFileToStore 把文件挂到知识库，索引由远端异步推进
func (c *Client) AttachFileToStore(ctx context.Context, fileID, storeID string) error {
	_, err := c.api.CreateVectorStoreFile(ctx, storeID, openai.VectorStoreFileRequest{
		FileID: fileID,
	})
	if err != nil {
		return c.remoteErr("attach file to store", err)
	}
	return nil
}

// ListStoreFiles 列出知识库文件及索引状态
func (c *Client) ListStoreFiles(ctx context.Context, storeID string) ([]assistant.FileStatus, error) {
	list, err := c.api.ListVectorStoreFiles(ctx, storeID, openai.Pagination{})
	if err != nil {
		return nil, c.remoteErr("list store files", err)
	}

	statuses := make([]assistant.FileStatus, 0, len(list.VectorStoreFiles))
	for _, vf := range list.VectorStoreFiles {
		status := assistant.FileStatus{
			FileID: vf.ID,
			Status: vf.Status,
		}
		// 知识库条目不带文件名，需要回查文件对象
		if file, err := c.api.GetFile(ctx, vf.ID); err == nil {
			status.Filename = file.FileName
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// DetachFileFromStore 从知识库摘除文件
func (c *Client) DetachFileFromStore(ctx context.Context, fileID, storeID string) error {
	if err := c.api.DeleteVectorStoreFile(ctx, storeID, fileID); err != nil {
		return c.remoteErr("detach file from store", err)
	}
	return nil
}

// DeleteFile 删除远端文件
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.api.DeleteFile(ctx, fileID); err != nil {
		return c.remoteErr("delete file", err)
	}
	return nil
}

// GetOrCreateStore 幂等获取助手关联的知识库
// 并发首次调用可能各自建库（check-then-act 竞态），重复库代价低，可接受
func (c *Client) GetOrCreateStore(ctx context.Context, assistantID string) (string, error) {
	a, err := c.api.RetrieveAssistant(ctx, assistantID)
	if err != nil {
		return "", c.remoteErr("retrieve assistant", err)
	}

	if a.ToolResources != nil && a.ToolResources.FileSearch != nil &&
		len(a.ToolResources.FileSearch.VectorStoreIDs) > 0 {
		return a.ToolResources.FileSearch.VectorStoreIDs[0], nil
	}

	store, err := c.api.CreateVectorStore(ctx, openai.VectorStoreRequest{
		Name: "docuchat-knowledge",
	})
	if err != nil {
		return "", c.remoteErr("create vector store", err)
	}

	_, err = c.api.ModifyAssistant(ctx, assistantID, openai.AssistantRequest{
		Model: a.Model,
		Tools: ensureFileSearchTool(a.Tools),
		ToolResources: &openai.AssistantToolResource{
			FileSearch: &openai.AssistantToolFileSearch{
				VectorStoreIDs: []string{store.ID},
			},
		},
	})
	if err != nil {
		return "", c.remoteErr("attach store to assistant", err)
	}

	c.logger.Info("Knowledge store created",
		"assistant_id", assistantID,
		"store_id", store.ID,
	)
	return store.ID, nil
}

// Complete 无状态聊天补全：客户端回放历史 + 本轮内容
func (c *Client) Complete(ctx context.Context, history []assistant.HistoryEntry, content string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	for _, h := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    h.Role,
			Content: h.Text,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: content,
	})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", c.remoteErr("chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", assistant.ErrEmptyReply
	}
	return resp.Choices[0].Message.Content, nil
}

// ensureFileSearchTool 保证助手启用了 file_search 工具
func ensureFileSearchTool(tools []openai.AssistantTool) []openai.AssistantTool {
	for _, t := range tools {
		if t.Type == openai.AssistantToolTypeFileSearch {
			return tools
		}
	}
	return append(tools, openai.AssistantTool{Type: openai.AssistantToolTypeFileSearch})
}

// toRun 转换为领域运行对象
func toRun(run openai.Run) assistant.Run {
	out := assistant.Run{
		ID:       run.ID,
		ThreadID: run.ThreadID,
		Status:   assistant.RunStatus(run.Status),
	}

	if run.RequiredAction != nil && run.RequiredAction.SubmitToolOutputs != nil {
		for _, tc := range run.RequiredAction.SubmitToolOutputs.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, assistant.ToolCall{
				ID:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}
	if run.LastError != nil {
		out.LastError = run.LastError.Message
	}
	return out
}

// messageText 取第一段文本内容
func messageText(m openai.Message) string {
	for _, part := range m.Content {
		if part.Text != nil {
			return part.Text.Value
		}
	}
	return ""
}

// remoteErr 把服务商错误统一映射为 RemoteError，不做本地错误码翻译
func (c *Client) remoteErr(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		c.logger.Error("Assistant API call failed",
			"op", op,
			"status", apiErr.HTTPStatusCode,
			"message", apiErr.Message,
		)
		return &assistant.RemoteError{
			Status:  apiErr.HTTPStatusCode,
			Message: apiErr.Message,
		}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &assistant.RemoteError{
			Status:  reqErr.HTTPStatusCode,
			Message: reqErr.Error(),
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
