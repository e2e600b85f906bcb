package infrastructure

import (
	"github.com/docuchat/backend/internal/infrastructure/config"
	"github.com/docuchat/backend/internal/infrastructure/extract"
	"github.com/docuchat/backend/internal/infrastructure/llm"
	"github.com/docuchat/backend/internal/infrastructure/token"
	"github.com/google/wire"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	extract.ProviderSet,
	llm.ProviderSet,
	token.ProviderSet,
)
