package themestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/swatch/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/swatch/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/swatch/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/swatch/internal/core/ports"
)

// NodeID is the unique identifier for the theme store Graft node.
const NodeID graft.ID = "engine.themestore"

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Store, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, tracer, log), nil
		},
	})
}
