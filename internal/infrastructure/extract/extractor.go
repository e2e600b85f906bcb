package extract

import (
	"log/slog"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// 支持的上传 MIME 类型，其余类型直接拒绝，不尝试解析
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Service 文档文本提取器
// 输出为单个纯文本字符串，不保留标题、表格等结构
type Service struct {
	logger *slog.Logger
}

// NewService 创建提取器
func NewService() *Service {
	return &Service{
		logger: log.NewModuleLogger("extract", "service"),
	}
}

var _ assistant.Extractor = (*Service)(nil)

// Extract 按 MIME 类型提取文本
// 空的合法文档返回空字符串；解析失败返回 ExtractionError，
// 不会以空文本掩盖失败
func (s *Service) Extract(data []byte, mimeType string) (string, error) {
	switch mimeType {
	case MIMETypePDF:
		return s.extractPDF(data)
	case MIMETypeDocx:
		return s.extractDocx(data)
	default:
		return "", &assistant.UnsupportedFormatError{MIMEType: mimeType}
	}
}
