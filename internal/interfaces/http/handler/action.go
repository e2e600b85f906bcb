package handler

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appChat "github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// ActionHandler 工具结果回传处理器
type ActionHandler struct {
	chat   *appChat.Service
	logger *slog.Logger
}

// NewActionHandler 创建工具结果处理器
func NewActionHandler(chat *appChat.Service) *ActionHandler {
	return &ActionHandler{
		chat:   chat,
		logger: log.NewModuleLogger("http", "action"),
	}
}

// submitToolOutputsRequest 工具结果请求体
type submitToolOutputsRequest struct {
	RunID           string                 `json:"runId"`
	ToolCallOutputs []assistant.ToolOutput `json:"toolCallOutputs"`
}

// actionResponse 恢复后的运行对象；运行完成时附带回复
type actionResponse struct {
	assistant.Run
	Reply string `json:"reply,omitempty"`
}

// Submit 回传工具结果，恢复 requires_action 状态的运行
// @Summary 回传工具结果
// @Description 恢复等待工具结果的运行并轮询到下一个稳定状态
// @Tags assistants
// @Accept json
// @Produce json
// @Param threadId path string true "线程 ID"
// @Param request body submitToolOutputsRequest true "工具调用结果"
// @Success 200 {object} actionResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assistants/threads/{threadId}/actions [post]
func (h *ActionHandler) Submit(c *gin.Context) {
	threadID := c.Param("threadId")

	var req submitToolOutputsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.chat.SubmitToolOutputs(c.Request.Context(), threadID, req.RunID, req.ToolCallOutputs)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, actionResponse{
		Run:   result.Run,
		Reply: result.Reply,
	})
}
