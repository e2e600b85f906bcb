package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
)

// stubCompleter 记录收到的历史并返回固定回复
type stubCompleter struct {
	history []assistant.HistoryEntry
	content string
	reply   string
}

func (s *stubCompleter) Complete(_ context.Context, history []assistant.HistoryEntry, content string) (string, error) {
	s.history = history
	s.content = content
	return s.reply, nil
}

func newThreadService(client assistant.Client) *Service {
	cfg := testConfig()
	return NewService(cfg, client, &stubCompleter{}, NewOrchestrator(cfg, client, newFakeClock()))
}

func newCompletionService(client assistant.Client, completer *stubCompleter) *Service {
	cfg := testConfig()
	cfg.Chat.Mode = config.ModeCompletion
	return NewService(cfg, client, completer, NewOrchestrator(cfg, client, newFakeClock()))
}

// TestSendMessage_InvalidThreadID 线程 ID 前缀不符直接拒绝
func TestSendMessage_InvalidThreadID(t *testing.T) {
	svc := newThreadService(&stubClient{})

	_, err := svc.SendMessage(context.Background(), "abc123", "Hi", nil, "")
	require.Error(t, err)

	var badReq *assistant.BadRequestError
	assert.ErrorAs(t, err, &badReq)
}

// TestSendMessage_ThreadMode thread 模式走编排器，忽略客户端历史
func TestSendMessage_ThreadMode(t *testing.T) {
	client := &stubClient{
		startStatus: assistant.RunStatusCompleted,
		messages: []assistant.Message{
			{ID: "msg_2", Role: assistant.RoleAssistant, Text: "Reply", CreatedAt: 200},
		},
	}
	svc := newThreadService(client)

	result, err := svc.SendMessage(context.Background(), "thread_abc123", "Hi", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "Reply", result.Reply)
	assert.Equal(t, []string{"Hi"}, client.postedTexts)
}

// TestSendMessage_CompletionMode completion 模式回放历史，不触碰远端线程
func TestSendMessage_CompletionMode(t *testing.T) {
	completer := &stubCompleter{reply: "From completion"}
	client := &stubClient{}
	svc := newCompletionService(client, completer)

	history := []assistant.HistoryEntry{
		{Role: assistant.RoleUser, Text: "Earlier question"},
		{Role: assistant.RoleAssistant, Text: "Earlier answer"},
	}

	result, err := svc.SendMessage(context.Background(), "thread_local1", "Hi", history, "")
	require.NoError(t, err)

	assert.Equal(t, "From completion", result.Reply)
	assert.Equal(t, history, completer.history)
	assert.Equal(t, "Hi", completer.content)
	assert.Empty(t, client.postedTexts)
}

// TestSendMessage_MissingHistoryTreatedAsEmpty 缺省历史按空列表处理
func TestSendMessage_MissingHistoryTreatedAsEmpty(t *testing.T) {
	completer := &stubCompleter{reply: "ok"}
	svc := newCompletionService(&stubClient{}, completer)

	_, err := svc.SendMessage(context.Background(), "thread_local1", "Hi", nil, "")
	require.NoError(t, err)

	assert.NotNil(t, completer.history)
	assert.Empty(t, completer.history)
}

// TestCreateThread_CompletionMode 无远端线程，本地句柄也遵守前缀约定
func TestCreateThread_CompletionMode(t *testing.T) {
	svc := newCompletionService(&stubClient{}, &stubCompleter{})

	id, err := svc.CreateThread(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, assistant.ThreadIDPrefix))
	require.NoError(t, assistant.ValidateThreadID(id))
}

// TestSubmitToolOutputs_CompletionModeRejected completion 模式没有运行可恢复
func TestSubmitToolOutputs_CompletionModeRejected(t *testing.T) {
	svc := newCompletionService(&stubClient{}, &stubCompleter{})

	_, err := svc.SubmitToolOutputs(context.Background(), "thread_local1", "run_1", nil)
	require.Error(t, err)

	var badReq *assistant.BadRequestError
	assert.ErrorAs(t, err, &badReq)
}
