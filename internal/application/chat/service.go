package chat

import (
	"context"
	"strings"

	"log/slog"

	"github.com/google/uuid"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// Service 会话服务，按部署级传输模式分发：
//   - thread 模式：历史存在远端线程，走运行编排器
//   - completion 模式：历史由客户端回放，走无状态补全
//
// 模式对所有路由统一生效，不允许路由间静默分叉
type Service struct {
	mode         string
	orchestrator *Orchestrator
	client       assistant.Client
	completer    assistant.Completer
	logger       *slog.Logger
}

// NewService 创建会话服务
func NewService(cfg *config.Config, client assistant.Client, completer assistant.Completer, orchestrator *Orchestrator) *Service {
	return &Service{
		mode:         cfg.Chat.Mode,
		orchestrator: orchestrator,
		client:       client,
		completer:    completer,
		logger:       log.NewModuleLogger("chat", "service"),
	}
}

// CreateThread 开启新会话
// thread 模式在远端建线程；completion 模式没有远端线程，
// 生成本地句柄供客户端关联自己的历史
func (s *Service) CreateThread(ctx context.Context) (string, error) {
	if s.mode == config.ModeCompletion {
		local := assistant.ThreadIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
		s.logger.Debug("Local thread handle issued", "thread_id", local)
		return local, nil
	}
	return s.client.CreateThread(ctx)
}

// SendMessage 处理一轮用户消息
// history 仅 completion 模式使用；thread 模式依赖远端线程侧历史
func (s *Service) SendMessage(ctx context.Context, threadID, content string, history []assistant.HistoryEntry, instructions string) (*TurnResult, error) {
	if err := assistant.ValidateThreadID(threadID); err != nil {
		return nil, err
	}
	if content == "" {
		return nil, assistant.NewBadRequest("Missing message content.")
	}

	// 历史缺省按空列表处理
	if history == nil {
		history = []assistant.HistoryEntry{}
	}

	if s.mode == config.ModeCompletion {
		reply, err := s.completer.Complete(ctx, history, content)
		if err != nil {
			return nil, err
		}
		return &TurnResult{Reply: reply}, nil
	}

	return s.orchestrator.RunTurn(ctx, threadID, content, instructions)
}

// SubmitToolOutputs 恢复等待工具结果的运行
func (s *Service) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []assistant.ToolOutput) (*TurnResult, error) {
	if err := assistant.ValidateThreadID(threadID); err != nil {
		return nil, err
	}
	if runID == "" {
		return nil, assistant.NewBadRequest("Missing run ID.")
	}
	if s.mode == config.ModeCompletion {
		return nil, assistant.NewBadRequest("Tool outputs are not supported in completion mode.")
	}

	return s.orchestrator.Resume(ctx, threadID, runID, outputs)
}
