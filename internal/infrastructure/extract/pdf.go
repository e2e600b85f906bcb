package extract

import (
	"bytes"
	"errors"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/docuchat/backend/internal/domain/assistant"
)

// extractPDF 逐页提取 PDF 纯文本
func (s *Service) extractPDF(data []byte) (string, error) {
	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &assistant.ExtractionError{Cause: err}
	}

	numPages := rdr.NumPage()

	var sb strings.Builder
	failedPages := 0

	for i := 1; i <= numPages; i++ {
		pg := rdr.Page(i)

		txt, err := pg.GetPlainText(nil)
		if err != nil {
			// 纯图片页或编码异常的页，跳过
			failedPages++
			continue
		}

		txt = strings.TrimSpace(txt)
		if txt == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(txt)
	}

	// 所有有内容的页都解析失败时不能静默返回空文本
	if sb.Len() == 0 && failedPages > 0 {
		return "", &assistant.ExtractionError{
			Cause: errors.New("no page produced text"),
		}
	}

	if failedPages > 0 {
		s.logger.Warn("Some PDF pages produced no text",
			"failed_pages", failedPages,
			"total_pages", numPages,
		)
	}

	return sb.String(), nil
}
