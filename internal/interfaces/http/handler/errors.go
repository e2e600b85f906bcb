package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// 错误响应格式为 {"error": "..."}
// 前端把错误文本当作带 [Error] 标记的助手消息内嵌渲染，
// 不会打断对话流，所以消息必须是可读的一句话

// writeError 把领域错误映射为 HTTP 状态码
// 输入问题 400，轮询超时 504，其余（远端失败、提取失败、运行失败、空回复）500
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var badReq *assistant.BadRequestError
	var unsupported *assistant.UnsupportedFormatError
	var tooLarge *assistant.DocumentTooLargeError

	switch {
	case errors.As(err, &badReq), errors.As(err, &unsupported), errors.As(err, &tooLarge):
		status = http.StatusBadRequest
	case errors.Is(err, assistant.ErrRunTimeout):
		status = http.StatusGatewayTimeout
	}

	if status >= http.StatusInternalServerError {
		log.GetLogger().Error("Request failed",
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
