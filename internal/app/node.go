package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/darkmagic/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/adapters/tui"                //nolint:depguard // Wired in app layer
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/darkmagic/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ResolverNodeID,
			cas.NodeID,
			scheduler.NodeID,
			progrock.NodeID,
			tui.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.InputResolver](ctx)
	if err != nil {
		return nil, err
	}

	opener, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	progress, err := graft.Dep[ports.ProgressView](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, opener, sched, telemetry, progress, log), nil
}
