package ingest

import (
	"context"

	"log/slog"

	appChat "github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
	"github.com/docuchat/backend/internal/infrastructure/token"
)

// UploadPreamble 上传文档的固定导语，标识这是一条文档评审请求
const UploadPreamble = "📄 I’ve uploaded a file. Please read the following content and provide insights:\n\n"

// uploadInstructions 上传回合的运行级指令（thread 模式）
const uploadInstructions = `When a file is uploaded:
1. Read and analyse it for outcome, impact, key steps and dependencies.
2. Begin your response with: "Thanks, it looks like you are trying to…" followed by a single-sentence summary of the document's purpose.
3. Then offer to review the document together in more detail.`

// PreviewLimit 返回给前端的提取文本预览长度
const PreviewLimit = 1000

// Messenger 进程内投递通道
type Messenger interface {
	SendMessage(ctx context.Context, threadID, content string, history []assistant.HistoryEntry, instructions string) (*appChat.TurnResult, error)
}

// Forwarder HTTP 回环投递通道
type Forwarder interface {
	SendMessage(ctx context.Context, threadID, content string, history []assistant.HistoryEntry) (string, error)
}

// Service 上传摄取管道：校验 → 提取 → 组装导语 → 投递 → 预览
type Service struct {
	extractor assistant.Extractor
	messenger Messenger
	forwarder Forwarder
	counter   *token.Counter
	maxTokens int
	logger    *slog.Logger
}

// NewService 创建摄取管道
// forwarder 非 nil 时改走 HTTP 回环投递（由组装层按配置注入）
func NewService(cfg *config.Config, extractor assistant.Extractor, messenger Messenger, forwarder Forwarder, counter *token.Counter) *Service {
	return &Service{
		extractor: extractor,
		messenger: messenger,
		forwarder: forwarder,
		counter:   counter,
		maxTokens: cfg.Upload.MaxDocumentTokens,
		logger:    log.NewModuleLogger("ingest", "service"),
	}
}

// Request 一次摄取请求；文件字节是请求作用域的，用完即弃
type Request struct {
	Data     []byte
	MIMEType string
	ThreadID string
	History  []assistant.HistoryEntry
}

// Result 摄取结果
type Result struct {
	Reply       string `json:"reply"`
	FilePreview string `json:"filePreview"`
}

// Ingest 执行摄取流程
func (s *Service) Ingest(ctx context.Context, req Request) (*Result, error) {
	if len(req.Data) == 0 || req.ThreadID == "" {
		return nil, assistant.NewBadRequest("Missing file or thread ID.")
	}
	if err := assistant.ValidateThreadID(req.ThreadID); err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(req.Data, req.MIMEType)
	if err != nil {
		// 提取错误原样上抛
		return nil, err
	}

	if s.counter != nil {
		tokens := s.counter.Count(text)
		s.logger.Info("Document text extracted",
			"thread_id", req.ThreadID,
			"chars", len(text),
			"tokens", tokens,
		)
		if s.maxTokens > 0 && tokens > s.maxTokens {
			return nil, &assistant.DocumentTooLargeError{Tokens: tokens, Limit: s.maxTokens}
		}
	}

	content := UploadPreamble + text

	var reply string
	if s.forwarder != nil {
		reply, err = s.forwarder.SendMessage(ctx, req.ThreadID, content, req.History)
	} else {
		var result *appChat.TurnResult
		result, err = s.messenger.SendMessage(ctx, req.ThreadID, content, req.History, uploadInstructions)
		if err == nil {
			reply = result.Reply
		}
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Reply:       reply,
		FilePreview: preview(text),
	}, nil
}

// preview 截取预览，按 rune 截断避免劈开多字节字符
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= PreviewLimit {
		return text
	}
	return string(runes[:PreviewLimit])
}
