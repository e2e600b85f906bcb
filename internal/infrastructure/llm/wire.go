package llm

import "github.com/google/wire"

// ProviderSet 远端助手客户端 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
