//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/docuchat/backend/internal/application"
	appChat "github.com/docuchat/backend/internal/application/chat"
	appIngest "github.com/docuchat/backend/internal/application/ingest"
	"github.com/docuchat/backend/internal/domain/assistant"
	"github.com/docuchat/backend/internal/infrastructure"
	"github.com/docuchat/backend/internal/infrastructure/extract"
	"github.com/docuchat/backend/internal/infrastructure/llm"
	ifHTTP "github.com/docuchat/backend/internal/interfaces/http"
)

// InitializeAll 初始化所有服务
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		ifHTTP.ProviderSet,         // 接口层
		// 接口绑定：领域接口 -> 基础设施实现
		wire.Bind(new(assistant.Client), new(*llm.Client)),
		wire.Bind(new(assistant.Completer), new(*llm.Client)),
		wire.Bind(new(assistant.Extractor), new(*extract.Service)),
		wire.Bind(new(appIngest.Messenger), new(*appChat.Service)),
		ProvideForwarder,
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}
