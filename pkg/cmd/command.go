// Package cmd provides a transport-agnostic command core: a message is split
// into tokens, matched against a registered command, and its arguments are
// coerced into typed values before the handler runs. How messages arrive and
// how replies leave is defined by the Platform an adapter (Discord, console)
// supplies.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Type names the target a raw token is coerced into.
type Type string

const (
	TypeString       Type = "string"
	TypeNumber       Type = "number"
	TypeBoolean      Type = "boolean"
	TypeUser         Type = "user"
	TypeMember       Type = "member"
	TypeChannel      Type = "channel"
	TypeTextChannel  Type = "textchannel"
	TypeVoiceChannel Type = "voicechannel"
	TypeGuild        Type = "guild"
)

var displayNames = map[Type]string{
	TypeString:       "String",
	TypeNumber:       "Number",
	TypeBoolean:      "Boolean",
	TypeUser:         "User",
	TypeMember:       "GuildMember",
	TypeChannel:      "Channel",
	TypeTextChannel:  "TextChannel",
	TypeVoiceChannel: "VoiceChannel",
	TypeGuild:        "Guild",
}

// DisplayName is the name replies use for t. Types with a factory from
// RegisterFactory are shown as registered.
func (t Type) DisplayName() string {
	if name, ok := displayNames[t]; ok {
		return name
	}
	return string(t)
}

// Param describes one formal parameter of a command. Exactly one of Context,
// Flags, or a token-consuming kind (plain, Optional, Rest) applies.
type Param struct {
	Name     string
	Type     Type
	Optional bool
	Rest     bool
	Context  bool
	Flags    *FlagSchema
}

// Arg declares a required positional parameter.
func Arg(name string, t Type) Param { return Param{Name: name, Type: t} }

// OptionalArg declares a positional parameter that binds to nil when no
// token is left for it.
func OptionalArg(name string, t Type) Param {
	return Param{Name: name, Type: t, Optional: true}
}

// RestArg declares the trailing parameter that receives the raw remainder of
// the message.
func RestArg(name string) Param { return Param{Name: name, Type: TypeString, Rest: true} }

// ContextArg declares a parameter bound to the per-dispatch *Context.
func ContextArg() Param { return Param{Name: "ctx", Context: true} }

// FlagsArg declares a parameter populated from --name[=value] tokens.
func FlagsArg(fields ...FlagField) Param {
	return Param{Name: "flags", Flags: &FlagSchema{Fields: fields}}
}

func (p Param) positional() bool { return !p.Context && p.Flags == nil && !p.Rest }

// Check is a precondition evaluated before any argument is bound. A failing
// check returns false and the message to send to the channel; an empty
// message aborts silently.
type Check func(ctx context.Context, ec *Context) (bool, string)

// HandlerFunc runs a command once its arguments are bound.
type HandlerFunc func(ctx context.Context, inv *Invocation) error

// Command is the descriptor stored in a Registry.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Category    string
	Params      []Param
	Checks      []Check
	Handler     HandlerFunc

	// Owner is the gear the command was registered from, nil for commands
	// added directly.
	Owner Gear
}

// Usage renders the command signature, e.g. "ban <member> [days]".
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, p := range c.Params {
		switch {
		case p.Context:
			continue
		case p.Flags != nil:
			for _, f := range p.Flags.Fields {
				fmt.Fprintf(&b, " [--%s=%s]", f.Name, f.Type)
			}
		case p.Rest:
			fmt.Fprintf(&b, " [%s...]", p.Name)
		case p.Optional:
			fmt.Fprintf(&b, " [%s]", p.Name)
		default:
			fmt.Fprintf(&b, " <%s>", p.Name)
		}
	}
	return b.String()
}

// required is the argument count reported when input runs short: every
// declared parameter before the rest parameter that is not optional, the
// context and flags slots included.
func (c *Command) required() int {
	n := 0
	for _, p := range c.Params {
		if !p.Rest && !p.Optional {
			n++
		}
	}
	return n
}

func (c *Command) validate() error {
	if c.Name == "" {
		return errors.New("command name is empty")
	}
	if c.Handler == nil {
		return fmt.Errorf("command %q has no handler", c.Name)
	}
	flags := 0
	for i, p := range c.Params {
		if p.Flags != nil {
			flags++
		}
		if !p.Rest {
			continue
		}
		if i != len(c.Params)-1 {
			return fmt.Errorf("command %q: rest parameter %q must be last", c.Name, p.Name)
		}
		if p.Type != TypeString && p.Type != "" {
			return fmt.Errorf("command %q: rest parameter %q must be a string", c.Name, p.Name)
		}
	}
	if flags > 1 {
		return fmt.Errorf("command %q declares %d flags parameters, at most one is allowed", c.Name, flags)
	}
	return nil
}

// Invocation carries the bound arguments of one dispatch, in declared order.
// Absent optional parameters are nil.
type Invocation struct {
	Command *Command
	Exec    *Context
	Args    []any
}

// Value returns the i-th argument or nil when out of range.
func (inv *Invocation) Value(i int) any {
	if i < 0 || i >= len(inv.Args) {
		return nil
	}
	return inv.Args[i]
}

// String returns the i-th argument as a string, "" if absent.
func (inv *Invocation) String(i int) string {
	s, _ := inv.Value(i).(string)
	return s
}

// Number returns the i-th argument as a float64; ok is false if absent.
func (inv *Invocation) Number(i int) (v float64, ok bool) {
	v, ok = inv.Value(i).(float64)
	return v, ok
}

// Bool returns the i-th argument as a bool; ok is false if absent.
func (inv *Invocation) Bool(i int) (v bool, ok bool) {
	v, ok = inv.Value(i).(bool)
	return v, ok
}

// Flags returns the i-th argument as a Flags object.
func (inv *Invocation) Flags(i int) Flags {
	f, _ := inv.Value(i).(Flags)
	return f
}
