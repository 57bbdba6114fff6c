package tui

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/darkmagic/internal/adapters/telemetry/progrock"
	"go.trai.ch/darkmagic/internal/core/ports"
)

// NodeID is the unique identifier for the progress view node.
const NodeID graft.ID = "adapter.tui"

func init() {
	graft.Register(graft.Node[ports.ProgressView]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.FeedNodeID},
		Run: func(ctx context.Context) (ports.ProgressView, error) {
			feed, err := graft.Dep[*progrock.Feed](ctx)
			if err != nil {
				return nil, err
			}
			return NewProgress(feed), nil
		},
	})
}
