package handler

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appChat "github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// ThreadHandler 线程处理器
type ThreadHandler struct {
	chat   *appChat.Service
	logger *slog.Logger
}

// NewThreadHandler 创建线程处理器
func NewThreadHandler(chat *appChat.Service) *ThreadHandler {
	return &ThreadHandler{
		chat:   chat,
		logger: log.NewModuleLogger("http", "thread"),
	}
}

// Create 创建新会话线程
// @Summary 创建会话线程
// @Description 每次调用创建一个新线程，不幂等
// @Tags assistants
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assistants/threads [post]
func (h *ThreadHandler) Create(c *gin.Context) {
	threadID, err := h.chat.CreateThread(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info("Thread created", "thread_id", threadID)
	c.JSON(http.StatusOK, gin.H{"threadId": threadID})
}
