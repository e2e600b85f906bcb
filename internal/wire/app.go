package wire

import (
	"log/slog"

	appIngest "github.com/docuchat/backend/internal/application/ingest"
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/forward"
	applog "github.com/docuchat/backend/internal/infrastructure/log"
	ifHTTP "github.com/docuchat/backend/internal/interfaces/http"
)

// ProvideForwarder 按配置决定上传管道的投递通道：
// 配置了 forward_base_url 走 HTTP 回环，否则返回 nil，摄取管道走进程内投递
func ProvideForwarder(cfg *config.Config) appIngest.Forwarder {
	if cfg.Chat.ForwardBaseURL == "" {
		return nil
	}
	return forward.NewClient(cfg.Chat.ForwardBaseURL)
}

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer *ifHTTP.HTTPServer
	logger     *slog.Logger
}

// NewApp 创建应用实例
func NewApp(httpServer *ifHTTP.HTTPServer) *App {
	return &App{
		HTTPServer: httpServer,
		logger:     applog.NewModuleLogger("app", "main"),
	}
}

// Start 启动所有服务
func (a *App) Start() error {
	a.logger.Info("Starting docuchat backend application")

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(); err != nil {
			a.logger.Error("Failed to start HTTP server",
				"error", err,
			)
		}
	}()

	a.logger.Info("docuchat backend application started successfully")
	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping docuchat backend application")

	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	a.logger.Info("docuchat backend application stopped successfully")
	return nil
}
