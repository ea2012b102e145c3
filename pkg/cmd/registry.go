package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// Gear bundles related commands. Commands is the gear's manifest and is read
// once at registration.
type Gear interface {
	Commands() []*Command
}

// Initializer is implemented by gears that need setup after their commands
// are registered.
type Initializer interface {
	Init(ctx context.Context) error
}

// Registry stores commands by name and alias. It is filled during startup
// and only read while dispatching; it does no locking of its own.
type Registry struct {
	commands map[string]*Command
	log      zerolog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{commands: make(map[string]*Command), log: log}
}

// Add stores c under its name and aliases. A name that is already taken is
// overwritten.
func (r *Registry) Add(owner Gear, c *Command) error {
	if err := c.validate(); err != nil {
		return err
	}
	c.Owner = owner
	for _, key := range append([]string{c.Name}, c.Aliases...) {
		if prev, ok := r.commands[key]; ok && prev != c {
			r.log.Warn().Str("command", key).Msg("command re-registered, previous definition replaced")
		}
		r.commands[key] = c
	}
	return nil
}

// Lookup returns the command registered under name or alias.
func (r *Registry) Lookup(name string) (*Command, bool) {
	c, ok := r.commands[name]
	return c, ok
}

// All returns every distinct command, sorted by name.
func (r *Registry) All() []*Command {
	seen := make(map[*Command]bool, len(r.commands))
	list := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		if seen[c] {
			continue
		}
		seen[c] = true
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// RegisterGear adds every command in g's manifest, then runs g's Init hook
// if it has one and waits for it to finish.
func (r *Registry) RegisterGear(ctx context.Context, g Gear) error {
	cmds := g.Commands()
	for _, c := range cmds {
		if err := r.Add(g, c); err != nil {
			return fmt.Errorf("register %T: %w", g, err)
		}
	}
	if init, ok := g.(Initializer); ok {
		if err := init.Init(ctx); err != nil {
			return fmt.Errorf("init %T: %w", g, err)
		}
	}
	r.log.Debug().Str("gear", fmt.Sprintf("%T", g)).Int("commands", len(cmds)).Msg("gear registered")
	return nil
}
