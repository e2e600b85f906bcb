package chat

import (
	"context"
	"time"

	"log/slog"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// Orchestrator 驱动一次完整的会话回合：
// 投递用户消息 → 启动运行 → 固定间隔轮询到终态 → 取回助手回复
// 每次调用恰好一个运行，不负责多轮规划
type Orchestrator struct {
	client       assistant.Client
	clock        Clock
	assistantID  string
	pollInterval time.Duration
	runTimeout   time.Duration
	logger       *slog.Logger
}

// NewOrchestrator 创建运行编排器
func NewOrchestrator(cfg *config.Config, client assistant.Client, clock Clock) *Orchestrator {
	return &Orchestrator{
		client:       client,
		clock:        clock,
		assistantID:  cfg.OpenAI.AssistantID,
		pollInterval: cfg.Chat.PollInterval,
		runTimeout:   cfg.Chat.RunTimeout,
		logger:       log.NewModuleLogger("chat", "orchestrator"),
	}
}

// TurnResult 一轮编排的结果
// 运行暂停在 requires_action 时 Reply 为空，Run 携带待处理的工具调用
type TurnResult struct {
	Reply string
	Run   assistant.Run
}

// Paused 运行是否在等待调用方回传工具结果
func (r *TurnResult) Paused() bool {
	return r.Run.Status == assistant.RunStatusRequiresAction
}

// RunTurn 执行一个用户回合
func (o *Orchestrator) RunTurn(ctx context.Context, threadID, content, instructions string) (*TurnResult, error) {
	msgID, err := o.client.PostMessage(ctx, threadID, assistant.RoleUser, content)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("User message posted", "thread_id", threadID, "message_id", msgID)

	run, err := o.client.StartRun(ctx, threadID, o.assistantID, instructions)
	if err != nil {
		return nil, err
	}

	return o.await(ctx, threadID, run)
}

// Resume 回传工具结果后继续等待同一个运行
func (o *Orchestrator) Resume(ctx context.Context, threadID, runID string, outputs []assistant.ToolOutput) (*TurnResult, error) {
	run, err := o.client.SubmitToolOutputs(ctx, threadID, runID, outputs)
	if err != nil {
		return nil, err
	}
	return o.await(ctx, threadID, run)
}

// await 轮询运行直到终态或超时
// 固定间隔，无退避；时限到达返回 ErrRunTimeout，和运行失败可区分
func (o *Orchestrator) await(ctx context.Context, threadID string, run assistant.Run) (*TurnResult, error) {
	deadline := o.clock.Now().Add(o.runTimeout)

	for {
		switch run.Status {
		case assistant.RunStatusCompleted:
			reply, err := o.latestAssistantReply(ctx, threadID)
			if err != nil {
				return nil, err
			}
			return &TurnResult{Reply: reply, Run: run}, nil

		case assistant.RunStatusRequiresAction:
			// 运行暂停，调用方解决工具调用后通过 Resume 继续
			o.logger.Info("Run requires action",
				"thread_id", threadID,
				"run_id", run.ID,
				"tool_calls", len(run.ToolCalls),
			)
			return &TurnResult{Run: run}, nil

		case assistant.RunStatusFailed, assistant.RunStatusCancelled, assistant.RunStatusExpired:
			return nil, &assistant.RunFailedError{
				Status:    run.Status,
				LastError: run.LastError,
			}
		}

		if !o.clock.Now().Before(deadline) {
			o.logger.Error("Run polling timed out",
				"thread_id", threadID,
				"run_id", run.ID,
				"status", run.Status,
			)
			return nil, assistant.ErrRunTimeout
		}

		if err := o.clock.Sleep(ctx, o.pollInterval); err != nil {
			return nil, err
		}

		var err error
		run, err = o.client.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return nil, err
		}
	}
}

// latestAssistantReply 在消息列表里找最新的助手消息
// 不假设服务商的排序方向，按角色过滤后取时间最大的一条
func (o *Orchestrator) latestAssistantReply(ctx context.Context, threadID string) (string, error) {
	messages, err := o.client.ListMessages(ctx, threadID)
	if err != nil {
		return "", err
	}

	var latest *assistant.Message
	for i := range messages {
		m := &messages[i]
		if m.Role != assistant.RoleAssistant {
			continue
		}
		if latest == nil || m.CreatedAt > latest.CreatedAt {
			latest = m
		}
	}

	if latest == nil {
		return "", assistant.ErrEmptyReply
	}
	return latest.Text, nil
}
