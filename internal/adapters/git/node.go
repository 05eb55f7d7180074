package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the freshness oracle Graft node.
const NodeID graft.ID = "adapter.git.oracle"

func init() {
	graft.Register(graft.Node[ports.FreshnessOracle]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.FreshnessOracle, error) {
			runner, err := graft.Dep[ports.ProcessRunner](ctx)
			if err != nil {
				return nil, err
			}
			return NewOracle(runner), nil
		},
	})
}
