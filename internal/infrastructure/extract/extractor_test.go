package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuchat/backend/internal/domain/assistant"
)

// buildPDF 把对象序列组装成合法 PDF（交叉引用表偏移量实时计算）
func buildPDF(objects []string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, buf.Len())
		buf.WriteString(obj)
	}

	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefPos)

	return buf.Bytes()
}

// buildEmptyPDF 构造一个零页的合法 PDF
func buildEmptyPDF() []byte {
	return buildPDF([]string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [] /Count 0 >>\nendobj\n",
	})
}

// buildTextPDF 构造带一页未压缩文本内容流的最小 PDF
func buildTextPDF(text string) []byte {
	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	return buildPDF([]string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
			"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	})
}

// buildDocx 构造包含指定段落的最小 docx
func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body bytes.Buffer
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">`)
	body.WriteString(`<w:body>`)
	for _, p := range paragraphs {
		if p == "" {
			body.WriteString(`<w:p/>`)
			continue
		}
		fmt.Fprintf(&body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write(body.Bytes())
	require.NoError(t, err)

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// TestExtract_UnsupportedMIME 不支持的类型直接拒绝，不尝试解析
func TestExtract_UnsupportedMIME(t *testing.T) {
	svc := NewService()

	_, err := svc.Extract([]byte("anything"), "image/png")
	require.Error(t, err)

	var unsupported *assistant.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "image/png", unsupported.MIMEType)
	assert.Equal(t, "Unsupported file type: image/png", err.Error())
}

// TestExtract_EmptyPDF 零页的合法 PDF 返回空字符串而不是错误
func TestExtract_EmptyPDF(t *testing.T) {
	svc := NewService()

	text, err := svc.Extract(buildEmptyPDF(), MIMETypePDF)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

// TestExtract_PDFWithText 带文本内容流的单页 PDF 提取出文本
func TestExtract_PDFWithText(t *testing.T) {
	svc := NewService()

	data := buildTextPDF("Quarterly revenue grew by 12 percent.")
	text, err := svc.Extract(data, MIMETypePDF)
	require.NoError(t, err)
	assert.Contains(t, text, "Quarterly revenue grew by 12 percent.")
}

// TestExtract_CorruptPDF 损坏的 PDF 返回 ExtractionError
func TestExtract_CorruptPDF(t *testing.T) {
	svc := NewService()

	_, err := svc.Extract([]byte("not a pdf at all"), MIMETypePDF)
	require.Error(t, err)

	var extraction *assistant.ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

// TestExtract_Docx 多段落 docx 按段落换行拼接
func TestExtract_Docx(t *testing.T) {
	svc := NewService()

	data := buildDocx(t, "Hello world", "Second paragraph")
	text, err := svc.Extract(data, MIMETypeDocx)
	require.NoError(t, err)
	assert.Equal(t, "Hello world\nSecond paragraph", text)
}

// TestExtract_EmptyDocx 合法但无文本的 docx 返回空字符串
func TestExtract_EmptyDocx(t *testing.T) {
	svc := NewService()

	data := buildDocx(t, "")
	text, err := svc.Extract(data, MIMETypeDocx)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

// TestExtract_CorruptDocx 非 zip 内容返回 ExtractionError
func TestExtract_CorruptDocx(t *testing.T) {
	svc := NewService()

	_, err := svc.Extract([]byte{0x00, 0x01, 0x02}, MIMETypeDocx)
	require.Error(t, err)

	var extraction *assistant.ExtractionError
	assert.ErrorAs(t, err, &extraction)
}

// TestExtract_DocxMissingDocument zip 里没有 word/document.xml
func TestExtract_DocxMissingDocument(t *testing.T) {
	svc := NewService()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("other.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nothing"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = svc.Extract(buf.Bytes(), MIMETypeDocx)
	require.Error(t, err)

	var extraction *assistant.ExtractionError
	assert.ErrorAs(t, err, &extraction)
}
