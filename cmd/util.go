package cmd

import (
	"github.com/tranvictor/seer/enhance"
	"github.com/tranvictor/seer/ens"
	"github.com/tranvictor/seer/index"
	"github.com/tranvictor/seer/mcp"
)

// newDirectory builds the cache-fronted resolver stack. When the local
// identity index opens, it is attached as a sink so every profile resolved
// during this run becomes searchable later; an unopenable index only costs
// that convenience, never the command.
func newDirectory() (*ens.Directory, func()) {
	resolver := ens.NewResolver(ens.DefaultEndpoints(cfg.EthereumNode), logger)
	dir := ens.NewDirectory(resolver, ens.NewCache(), logger)

	closer := func() {}
	path, err := index.DefaultPath()
	if err == nil {
		if store, serr := index.NewStore(path); serr == nil {
			dir.SetSink(store)
			closer = func() { store.Close() }
		} else {
			logger.Debug("identity index unavailable", "path", path, "err", serr)
		}
	}
	return dir, closer
}

func newInvoker() *mcp.Invoker {
	client := mcp.NewClient(cfg.GatewayURL, cfg.GatewayToken, logger)
	return mcp.NewInvoker(client, logger)
}

func newEnhancer(dir *ens.Directory) *enhance.Enhancer {
	return enhance.NewEnhancer(dir, logger)
}
