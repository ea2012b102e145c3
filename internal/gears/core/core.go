// Package core is the built-in gear: ping, help, echo, whois and history.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/internal/docs"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/internal/storage"
	"github.com/keshon/gearcmd/pkg/cmd"
)

const (
	categoryInfo        = "🕯️ Information"
	categoryUtilities   = "📢 Utilities"
	categoryMaintenance = "🛠️ Maintenance"
)

// HistoryReader is the part of storage.Storage the history command reads.
type HistoryReader interface {
	FetchCommandHistory(guildID string) []storage.CommandHistoryRecord
}

type Gear struct {
	Registry *cmd.Registry
	History  HistoryReader
	Latency  func() time.Duration

	started time.Time
}

func (g *Gear) Init(context.Context) error {
	if g.Registry == nil {
		return errors.New("core gear needs a registry")
	}
	g.started = time.Now()
	return nil
}

func (g *Gear) Commands() []*cmd.Command {
	return []*cmd.Command{
		{
			Name:        "ping",
			Description: "Check bot latency",
			Category:    categoryMaintenance,
			Params:      []cmd.Param{cmd.ContextArg()},
			Handler:     g.ping,
		},
		{
			Name:        "help",
			Aliases:     []string{"commands"},
			Description: "List commands or describe one",
			Category:    categoryInfo,
			Params:      []cmd.Param{cmd.ContextArg(), cmd.OptionalArg("command", cmd.TypeString)},
			Handler:     g.help,
		},
		{
			Name:        "echo",
			Aliases:     []string{"say"},
			Description: "Repeat the text as written",
			Category:    categoryUtilities,
			Params:      []cmd.Param{cmd.ContextArg(), cmd.RestArg("text")},
			Handler:     g.echo,
		},
		{
			Name:        "whois",
			Description: "Show who a user is",
			Category:    categoryInfo,
			Params:      []cmd.Param{cmd.ContextArg(), cmd.Arg("user", cmd.TypeUser)},
			Handler:     g.whois,
		},
		{
			Name:        "history",
			Description: "Show the most recent commands used in this server",
			Category:    categoryInfo,
			Params:      []cmd.Param{cmd.ContextArg(), cmd.OptionalArg("count", cmd.TypeNumber)},
			Checks:      []cmd.Check{middleware.GuildOnly()},
			Handler:     g.history,
		},
	}
}

func (g *Gear) ping(ctx context.Context, inv *cmd.Invocation) error {
	ec := inv.Exec
	uptime := time.Since(g.started).Round(time.Second)
	if g.Latency == nil {
		return ec.Send(ctx, fmt.Sprintf("Pong! Uptime: %s", uptime))
	}
	return ec.Send(ctx, fmt.Sprintf("Pong! Latency: %dms, uptime: %s", g.Latency().Milliseconds(), uptime))
}

func (g *Gear) help(ctx context.Context, inv *cmd.Invocation) error {
	ec := inv.Exec
	if name := inv.String(1); name != "" {
		c, ok := g.Registry.Lookup(name)
		if !ok {
			return ec.Send(ctx, fmt.Sprintf("unknown command '%s'", name))
		}
		text := fmt.Sprintf("`%s`\n%s", c.Usage(), c.Description)
		if len(c.Aliases) > 0 {
			text += "\nAliases: " + strings.Join(c.Aliases, ", ")
		}
		return ec.Send(ctx, text)
	}

	var b strings.Builder
	for _, sec := range docs.Group(g.Registry.All()) {
		fmt.Fprintf(&b, "**%s**\n", sec.Title())
		for _, c := range sec.Commands {
			fmt.Fprintf(&b, "`%s` %s\n", c.Usage(), c.Description)
		}
	}
	return ec.Send(ctx, strings.TrimRight(b.String(), "\n"))
}

func (g *Gear) echo(ctx context.Context, inv *cmd.Invocation) error {
	text := inv.String(1)
	if strings.TrimSpace(text) == "" {
		return inv.Exec.Send(ctx, "Usage: `"+inv.Command.Usage()+"`")
	}
	return inv.Exec.Send(ctx, text)
}

func (g *Gear) whois(ctx context.Context, inv *cmd.Invocation) error {
	return inv.Exec.Send(ctx, describe(inv.Value(1)))
}

func (g *Gear) history(ctx context.Context, inv *cmd.Invocation) error {
	ec := inv.Exec
	if g.History == nil {
		return errors.New("command history is not available")
	}
	count := 10
	if n, ok := inv.Number(1); ok {
		count = max(1, int(n))
	}

	records := g.History.FetchCommandHistory(ec.GuildID())
	if len(records) == 0 {
		return ec.Send(ctx, "No commands recorded yet.")
	}
	if len(records) > count {
		records = records[len(records)-count:]
	}

	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s %s: %s\n", r.Datetime.Format("2006-01-02 15:04"), r.Username, r.Command)
	}
	return ec.Send(ctx, strings.TrimRight(b.String(), "\n"))
}

// describe renders a resolved user for chat.
func describe(v any) string {
	switch u := v.(type) {
	case nil:
		return "User not found."
	case *discordgo.User:
		if u == nil {
			return "User not found."
		}
		return fmt.Sprintf("%s (id %s, bot: %t)", u.Username, u.ID, u.Bot)
	case fmt.Stringer:
		return u.String()
	default:
		return fmt.Sprintf("%v", u)
	}
}
