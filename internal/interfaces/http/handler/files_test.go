package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appKnowledge "github.com/docuchat/backend/internal/application/knowledge"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
)

// setupFilesRouter 创建测试路由
func setupFilesRouter(stub *stubAssistant) *gin.Engine {
	router := gin.New()
	handler := NewFilesHandler(appKnowledge.NewService(testConfig(config.ModeThread), stub))

	router.GET("/api/v1/assistants/files", handler.List)
	router.POST("/api/v1/assistants/files", handler.Upload)
	router.DELETE("/api/v1/assistants/files", handler.Delete)
	return router
}

// TestFilesHandler_List 测试文件列表
func TestFilesHandler_List(t *testing.T) {
	stub := &stubAssistant{
		storeFiles: []assistant.FileStatus{
			{FileID: "file_1", Filename: "handbook.pdf", Status: "completed"},
		},
	}
	router := setupFilesRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assistants/files", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var files []assistant.FileStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "file_1", files[0].FileID)
	assert.Equal(t, "handbook.pdf", files[0].Filename)
}

// TestFilesHandler_List_Empty 测试空知识库返回空数组而不是 null
func TestFilesHandler_List_Empty(t *testing.T) {
	router := setupFilesRouter(&stubAssistant{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assistants/files", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

// TestFilesHandler_Upload 测试上传后返回刷新的列表
func TestFilesHandler_Upload(t *testing.T) {
	stub := &stubAssistant{
		storeFiles: []assistant.FileStatus{
			{FileID: "file_new", Filename: "guide.pdf", Status: "in_progress"},
		},
	}
	router := setupFilesRouter(stub)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "guide.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistants/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"guide.pdf"}, stub.uploadedNames)

	var files []assistant.FileStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, "file_new", files[0].FileID)
}

// TestFilesHandler_Upload_MissingFile 测试缺少文件字段
func TestFilesHandler_Upload_MissingFile(t *testing.T) {
	router := setupFilesRouter(&stubAssistant{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistants/files", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestFilesHandler_Delete 测试删除：先摘除再删文件，返回刷新的列表
func TestFilesHandler_Delete(t *testing.T) {
	stub := &stubAssistant{}
	router := setupFilesRouter(stub)

	payload, _ := json.Marshal(map[string]string{"fileId": "file_1"})
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assistants/files", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"file_1"}, stub.detachedIDs)
	assert.Equal(t, []string{"file_1"}, stub.deletedIDs)
}

// TestFilesHandler_Delete_MissingID 测试缺失文件 ID
func TestFilesHandler_Delete_MissingID(t *testing.T) {
	router := setupFilesRouter(&stubAssistant{})

	payload, _ := json.Marshal(map[string]string{})
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/assistants/files", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Missing fileId", response["error"])
}
