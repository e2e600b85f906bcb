package handler

import (
	"io"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"

	appKnowledge "github.com/docuchat/backend/internal/application/knowledge"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// FilesHandler 知识库文件管理处理器，支撑前端的附件面板
type FilesHandler struct {
	knowledge *appKnowledge.Service
	logger    *slog.Logger
}

// NewFilesHandler 创建知识库文件处理器
func NewFilesHandler(knowledge *appKnowledge.Service) *FilesHandler {
	return &FilesHandler{
		knowledge: knowledge,
		logger:    log.NewModuleLogger("http", "files"),
	}
}

// List 列出知识库文件
// @Summary 知识库文件列表
// @Tags files
// @Produce json
// @Success 200 {array} assistant.FileStatus
// @Failure 500 {object} map[string]string
// @Router /assistants/files [get]
func (h *FilesHandler) List(c *gin.Context) {
	files, err := h.knowledge.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// Upload 上传文件进知识库，返回刷新后的列表
// @Summary 上传知识库文件
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文档"
// @Success 200 {array} assistant.FileStatus
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assistants/files [post]
func (h *FilesHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file"})
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

	if _, err := h.knowledge.Upload(c.Request.Context(), fileHeader.Filename, data); err != nil {
		writeError(c, err)
		return
	}

	h.List(c)
}

// deleteFileRequest 删除请求体
type deleteFileRequest struct {
	FileID string `json:"fileId"`
}

// Delete 从知识库删除文件，返回刷新后的列表
// @Summary 删除知识库文件
// @Tags files
// @Accept json
// @Produce json
// @Param request body deleteFileRequest true "文件 ID"
// @Success 200 {array} assistant.FileStatus
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /assistants/files [delete]
func (h *FilesHandler) Delete(c *gin.Context) {
	var req deleteFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.knowledge.Delete(c.Request.Context(), req.FileID); err != nil {
		writeError(c, err)
		return
	}

	h.List(c)
}
