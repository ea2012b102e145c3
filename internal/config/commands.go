package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/keshon/gearcmd/pkg/cmd"
)

// CommandOverride changes how one built-in command is registered.
type CommandOverride struct {
	Disabled    bool     `toml:"disabled"`
	Aliases     []string `toml:"aliases"`
	Description string   `toml:"description"`
	Category    string   `toml:"category"`
}

// CommandOverrides maps command names to their override, e.g.
//
//	[commands.ban]
//	aliases = ["hammer"]
//
//	[commands.roll]
//	disabled = true
type CommandOverrides map[string]CommandOverride

type commandsFile struct {
	Commands CommandOverrides `toml:"commands"`
}

// LoadCommandOverrides reads a TOML overrides file. An empty path means no
// overrides.
func LoadCommandOverrides(path string) (CommandOverrides, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read commands file: %w", err)
	}
	var f commandsFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	return f.Commands, nil
}

// Apply returns cmds with disabled commands dropped and overridden fields
// replaced. The commands are modified in place.
func (o CommandOverrides) Apply(cmds []*cmd.Command) []*cmd.Command {
	if len(o) == 0 {
		return cmds
	}
	kept := make([]*cmd.Command, 0, len(cmds))
	for _, c := range cmds {
		ov, ok := o[c.Name]
		if !ok {
			kept = append(kept, c)
			continue
		}
		if ov.Disabled {
			continue
		}
		if ov.Aliases != nil {
			c.Aliases = ov.Aliases
		}
		if ov.Description != "" {
			c.Description = ov.Description
		}
		if ov.Category != "" {
			c.Category = ov.Category
		}
		kept = append(kept, c)
	}
	return kept
}
