package application

import (
	"github.com/docuchat/backend/internal/application/chat"
	"github.com/docuchat/backend/internal/application/ingest"
	"github.com/docuchat/backend/internal/application/knowledge"
	"github.com/google/wire"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	chat.ProviderSet,
	ingest.ProviderSet,
	knowledge.ProviderSet,
)
