package ingest

import "github.com/google/wire"

// ProviderSet 摄取管道 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
