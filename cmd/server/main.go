// @title docuchat Backend API
// @version 1.0
// @description 文档助手后端 API 服务
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
package main

import (
	"os"
	"os/signal"
	"syscall"

	applog "github.com/docuchat/backend/internal/infrastructure/log"
	"github.com/docuchat/backend/internal/wire"
)

func main() {
	// 初始化日志系统
	applog.Init(nil)

	// Wire 自动生成的初始化函数
	app, err := wire.InitializeAll()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}

	// 启动所有服务
	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	// 优雅关闭
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
