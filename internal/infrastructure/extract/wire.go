package extract

import "github.com/google/wire"

// ProviderSet 文档提取 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
