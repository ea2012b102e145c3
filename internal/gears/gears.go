// Package gears wires the built-in command gears into a dispatcher.
package gears

import (
	"context"
	"time"

	"github.com/keshon/gearcmd/internal/config"
	"github.com/keshon/gearcmd/internal/gears/core"
	"github.com/keshon/gearcmd/internal/gears/moderation"
	"github.com/keshon/gearcmd/internal/gears/roll"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/pkg/cmd"
)

// Deps are the platform services the gears call into.
type Deps struct {
	History     core.HistoryReader
	Banner      moderation.Banner
	Permissions middleware.PermissionsFunc
	Latency     func() time.Duration
	DeveloperID string
	Overrides   config.CommandOverrides
}

// overridden applies configured overrides to a gear's manifest.
type overridden struct {
	cmd.Gear
	overrides config.CommandOverrides
}

func (g overridden) Commands() []*cmd.Command { return g.overrides.Apply(g.Gear.Commands()) }

func (g overridden) Init(ctx context.Context) error {
	if init, ok := g.Gear.(cmd.Initializer); ok {
		return init.Init(ctx)
	}
	return nil
}

// Register adds every built-in gear to d.
func Register(ctx context.Context, d *cmd.Dispatcher, deps Deps) error {
	all := []cmd.Gear{
		&core.Gear{Registry: d.Registry(), History: deps.History, Latency: deps.Latency},
		&roll.Gear{},
		&moderation.Gear{Banner: deps.Banner, Permissions: deps.Permissions, DeveloperID: deps.DeveloperID},
	}
	for _, g := range all {
		if len(deps.Overrides) > 0 {
			g = overridden{Gear: g, overrides: deps.Overrides}
		}
		if err := d.RegisterGear(ctx, g); err != nil {
			return err
		}
	}
	return nil
}
