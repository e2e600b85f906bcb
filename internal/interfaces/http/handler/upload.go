package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appIngest "github.com/docuchat/backend/internal/application/ingest"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// UploadHandler 文档上传摄取处理器
type UploadHandler struct {
	ingest *appIngest.Service
	logger *slog.Logger
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(ingest *appIngest.Service) *UploadHandler {
	return &UploadHandler{
		ingest: ingest,
		logger: log.NewModuleLogger("http", "upload"),
	}
}

// Ping 路由存活探测
// @Summary 上传端点探活
// @Tags upload
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /upload [get]
func (h *UploadHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Upload 接收文档，提取文本后注入会话
// @Summary 上传文档并摄取
// @Description 提取 PDF/DOCX 文本，作为用户消息投递到会话并返回助手回复与文本预览
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF 或 DOCX 文档"
// @Param threadId formData string true "线程 ID"
// @Param history formData string false "历史 JSON（completion 模式）"
// @Success 200 {object} ingest.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	threadID := c.PostForm("threadId")
	if err != nil || threadID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file or thread ID."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read uploaded file."})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read uploaded file."})
		return
	}

	// 历史缺省按空列表处理；给了但不是合法 JSON 则拒绝
	var history []assistant.HistoryEntry
	if raw := c.PostForm("history"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid history JSON"})
			return
		}
	}

	h.logger.Info("Document upload received",
		"filename", fileHeader.Filename,
		"size", len(data),
		"thread_id", threadID,
	)

	result, err := h.ingest.Ingest(c.Request.Context(), appIngest.Request{
		Data:     data,
		MIMEType: fileHeader.Header.Get("Content-Type"),
		ThreadID: threadID,
		History:  history,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
