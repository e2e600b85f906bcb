package http

import (
	"context"
	"net/http"
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/log"
	"github.com/docuchat/backend/internal/interfaces/http/handler"
	"github.com/docuchat/backend/internal/interfaces/http/middleware"

	_ "github.com/docuchat/backend/docs" // Swagger docs
)

// HTTPServer HTTP 服务器
type HTTPServer struct {
	router   *gin.Engine
	httpPort string
	server   *http.Server
	logger   *slog.Logger
}

// NewServer 创建 HTTP 服务器
func NewServer(
	cfg *config.Config,
	threadHandler *handler.ThreadHandler,
	messageHandler *handler.MessageHandler,
	actionHandler *handler.ActionHandler,
	uploadHandler *handler.UploadHandler,
	filesHandler *handler.FilesHandler,
) *HTTPServer {
	router := gin.Default()

	logger := log.NewModuleLogger("http", "server")

	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// 注册路由
	api := router.Group("/api/v1")
	{
		// 会话相关路由
		api.POST("/assistants/threads", threadHandler.Create)
		api.POST("/assistants/threads/:threadId/messages", messageHandler.Post)
		api.POST("/assistants/threads/:threadId/actions", actionHandler.Submit)

		// 文档上传摄取
		api.GET("/upload", uploadHandler.Ping)
		api.POST("/upload", uploadHandler.Upload)

		// 知识库文件管理
		api.GET("/assistants/files", filesHandler.List)
		api.POST("/assistants/files", filesHandler.Upload)
		api.DELETE("/assistants/files", filesHandler.Delete)
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &HTTPServer{
		router:   router,
		httpPort: cfg.Server.HTTPPort,
		logger:   logger,
	}
}

// Start 启动服务器
func (s *HTTPServer) Start() error {
	s.server = &http.Server{
		Addr:    s.httpPort,
		Handler: s.router,
	}

	s.logger.Info("HTTP server starting",
		"port", s.httpPort,
	)

	return s.server.ListenAndServe()
}

// Shutdown 优雅关闭
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Stop 停止服务器
func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}
