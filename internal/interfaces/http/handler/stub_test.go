package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appChat "github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAssistant 可编程的远端助手桩，同时充当 Client 和 Completer
type stubAssistant struct {
	startStatus  assistant.RunStatus
	resumeStatus assistant.RunStatus
	lastError    string
	toolCalls    []assistant.ToolCall
	reply        string

	storeFiles    []assistant.FileStatus
	uploadedNames []string
	detachedIDs   []string
	deletedIDs    []string
}

func (s *stubAssistant) CreateThread(ctx context.Context) (string, error) {
	return "thread_remote1", nil
}

func (s *stubAssistant) PostMessage(ctx context.Context, threadID, role, text string) (string, error) {
	return "msg_1", nil
}

func (s *stubAssistant) StartRun(ctx context.Context, threadID, assistantID, instructions string) (assistant.Run, error) {
	return assistant.Run{
		ID:        "run_1",
		ThreadID:  threadID,
		Status:    s.startStatus,
		ToolCalls: s.toolCalls,
		LastError: s.lastError,
	}, nil
}

func (s *stubAssistant) GetRun(ctx context.Context, threadID, runID string) (assistant.Run, error) {
	return assistant.Run{ID: runID, ThreadID: threadID, Status: s.startStatus, LastError: s.lastError}, nil
}

func (s *stubAssistant) SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []assistant.ToolOutput) (assistant.Run, error) {
	return assistant.Run{ID: runID, ThreadID: threadID, Status: s.resumeStatus}, nil
}

func (s *stubAssistant) ListMessages(ctx context.Context, threadID string) ([]assistant.Message, error) {
	return []assistant.Message{
		{ID: "m1", Role: assistant.RoleUser, Text: "hello", CreatedAt: 1},
		{ID: "m2", Role: assistant.RoleAssistant, Text: s.reply, CreatedAt: 2},
	}, nil
}

func (s *stubAssistant) UploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	s.uploadedNames = append(s.uploadedNames, filename)
	return "file_new", nil
}

func (s *stubAssistant) AttachFileToStore(ctx context.Context, fileID, storeID string) error {
	return nil
}

func (s *stubAssistant) ListStoreFiles(ctx context.Context, storeID string) ([]assistant.FileStatus, error) {
	return s.storeFiles, nil
}

func (s *stubAssistant) DetachFileFromStore(ctx context.Context, fileID, storeID string) error {
	s.detachedIDs = append(s.detachedIDs, fileID)
	return nil
}

func (s *stubAssistant) DeleteFile(ctx context.Context, fileID string) error {
	s.deletedIDs = append(s.deletedIDs, fileID)
	return nil
}

func (s *stubAssistant) GetOrCreateStore(ctx context.Context, assistantID string) (string, error) {
	return "vs_1", nil
}

func (s *stubAssistant) Complete(ctx context.Context, history []assistant.HistoryEntry, content string) (string, error) {
	return s.reply, nil
}

// testConfig 测试配置，轮询间隔压到最短
func testConfig(mode string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{HTTPPort: ":0"},
		OpenAI: config.OpenAIConfig{
			APIKey:      "sk-test",
			AssistantID: "asst_test",
			Model:       "gpt-4o-mini",
		},
		Chat: config.ChatConfig{
			Mode:         mode,
			PollInterval: time.Millisecond,
			RunTimeout:   time.Second,
		},
	}
}

// newChatService 用桩客户端构造真实的会话服务
func newChatService(stub *stubAssistant, mode string) *appChat.Service {
	cfg := testConfig(mode)
	orchestrator := appChat.NewOrchestrator(cfg, stub, appChat.NewSystemClock())
	return appChat.NewService(cfg, stub, stub, orchestrator)
}
