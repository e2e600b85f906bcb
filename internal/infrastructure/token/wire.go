package token

import "github.com/google/wire"

// ProviderSet Token 统计 ProviderSet
var ProviderSet = wire.NewSet(
	NewCounter,
)
