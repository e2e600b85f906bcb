package handler

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appChat "github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// MessageHandler 消息处理器，触发完整的编排回合
type MessageHandler struct {
	chat   *appChat.Service
	logger *slog.Logger
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(chat *appChat.Service) *MessageHandler {
	return &MessageHandler{
		chat:   chat,
		logger: log.NewModuleLogger("http", "message"),
	}
}

// postMessageRequest 消息请求体；history 仅 completion 模式使用
type postMessageRequest struct {
	Content string                   `json:"content"`
	History []assistant.HistoryEntry `json:"history"`
}

// Post 投递一轮用户消息并等待助手回复
// @Summary 发送消息
// @Description 投递用户消息、启动运行、轮询到终态后返回助手回复
// @Tags assistants
// @Accept json
// @Produce json
// @Param threadId path string true "线程 ID"
// @Param request body postMessageRequest true "消息内容"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assistants/threads/{threadId}/messages [post]
func (h *MessageHandler) Post(c *gin.Context) {
	threadID := c.Param("threadId")

	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.SendMessage(c.Request.Context(), threadID, req.Content, req.History, "")
	if err != nil {
		writeError(c, err)
		return
	}

	// 运行暂停在 requires_action 时返回运行对象，
	// 由客户端通过 actions 端点回传工具结果
	if result.Paused() {
		c.JSON(http.StatusOK, result.Run)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": result.Reply})
}
