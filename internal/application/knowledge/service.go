package knowledge

import (
	"context"

	"log/slog"

	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
)

// Service 知识库文件管理：上传并挂载、列表、删除
// 文件索引状态由远端推进，这里只注册和观察
type Service struct {
	client      assistant.Client
	assistantID string
	logger      *slog.Logger
}

// NewService 创建知识库服务
func NewService(cfg *config.Config, client assistant.Client) *Service {
	return &Service{
		client:      client,
		assistantID: cfg.OpenAI.AssistantID,
		logger:      log.NewModuleLogger("knowledge", "service"),
	}
}

// Upload 注册文件并挂到助手的知识库
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (assistant.FileStatus, error) {
	if len(data) == 0 {
		return assistant.FileStatus{}, assistant.NewBadRequest("Missing file")
	}

	fileID, err := s.client.UploadFile(ctx, filename, data)
	if err != nil {
		return assistant.FileStatus{}, err
	}

	storeID, err := s.client.GetOrCreateStore(ctx, s.assistantID)
	if err != nil {
		return assistant.FileStatus{}, err
	}

	if err := s.client.AttachFileToStore(ctx, fileID, storeID); err != nil {
		return assistant.FileStatus{}, err
	}

	s.logger.Info("Knowledge file registered",
		"file_id", fileID,
		"filename", filename,
		"store_id", storeID,
	)

	// 索引刚开始，状态由后续列表观察
	return assistant.FileStatus{
		FileID:   fileID,
		Filename: filename,
		Status:   "in_progress",
	}, nil
}

// List 列出知识库文件及索引状态
func (s *Service) List(ctx context.Context) ([]assistant.FileStatus, error) {
	storeID, err := s.client.GetOrCreateStore(ctx, s.assistantID)
	if err != nil {
		return nil, err
	}

	files, err := s.client.ListStoreFiles(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []assistant.FileStatus{}
	}
	return files, nil
}

// Delete 从知识库摘除并删除文件
func (s *Service) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return assistant.NewBadRequest("Missing fileId")
	}

	storeID, err := s.client.GetOrCreateStore(ctx, s.assistantID)
	if err != nil {
		return err
	}

	if err := s.client.DetachFileFromStore(ctx, fileID, storeID); err != nil {
		return err
	}
	if err := s.client.DeleteFile(ctx, fileID); err != nil {
		return err
	}

	s.logger.Info("Knowledge file deleted", "file_id", fileID, "store_id", storeID)
	return nil
}
