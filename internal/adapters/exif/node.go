package exif

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/darkmagic/internal/adapters/logger"
	"go.trai.ch/darkmagic/internal/core/ports"
)

// NodeID is the unique identifier for the EXIF reader Graft node.
const NodeID graft.ID = "adapter.exif_reader"

func init() {
	graft.Register(graft.Node[ports.MetadataReader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.MetadataReader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewReader(log), nil
		},
	})
}
