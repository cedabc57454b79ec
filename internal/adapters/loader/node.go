package loader

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/revive/internal/adapters/logger"
	"go.trai.ch/revive/internal/core/ports"
)

// NodeID is the unique identifier for the entry loader Graft node.
const NodeID graft.ID = "adapter.loader"

func init() {
	graft.Register(graft.Node[ports.Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Loader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			// The session may override the root via configuration; the
			// process working directory is the default.
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewLoader(cwd, log), nil
		},
	})
}
