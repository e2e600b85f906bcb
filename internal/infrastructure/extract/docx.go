package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/docuchat/backend/internal/domain/assistant"
)

// extractDocx 从 OOXML Word 文档提取纯文本
// docx 是一个 zip 包，正文在 word/document.xml，文本位于 w:t 节点，
// 段落边界转为换行
func (s *Service) extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &assistant.ExtractionError{Cause: err}
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", &assistant.ExtractionError{
			Cause: errors.New("word/document.xml not found in archive"),
		}
	}

	rc, err := doc.Open()
	if err != nil {
		return "", &assistant.ExtractionError{Cause: err}
	}
	defer func() { _ = rc.Close() }()

	text, err := collectDocumentText(rc)
	if err != nil {
		return "", &assistant.ExtractionError{Cause: err}
	}
	return text, nil
}

// collectDocumentText 流式遍历 document.xml，收集文本节点
func collectDocumentText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var sb strings.Builder
	inTextRun := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				inTextRun = true
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inTextRun = false
			case "p":
				// 段落结束
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inTextRun {
				sb.Write(el)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
