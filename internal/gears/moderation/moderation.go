// Package moderation holds guild moderation commands.
package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/pkg/cmd"
)

const category = "🛡️ Moderation"

// maxDeleteDays is the longest message history Discord deletes on ban.
const maxDeleteDays = 7

// Banner bans members from a guild.
type Banner interface {
	Ban(ctx context.Context, guildID, userID, reason string, days int) error
}

type Gear struct {
	Banner      Banner
	Permissions middleware.PermissionsFunc
	DeveloperID string
}

func (g *Gear) Init(context.Context) error {
	if g.Banner == nil || g.Permissions == nil {
		return errors.New("moderation gear needs a banner and a permissions source")
	}
	return nil
}

func (g *Gear) Commands() []*cmd.Command {
	return []*cmd.Command{
		{
			Name:        "ban",
			Description: "Ban a member, optionally deleting their recent messages",
			Category:    category,
			Params: []cmd.Param{
				cmd.ContextArg(),
				cmd.Arg("member", cmd.TypeMember),
				cmd.OptionalArg("days", cmd.TypeNumber),
			},
			Checks: []cmd.Check{
				middleware.GuildOnly(),
				middleware.RequirePermissions(g.Permissions, g.DeveloperID, discordgo.PermissionBanMembers),
			},
			Handler: g.ban,
		},
	}
}

func (g *Gear) ban(ctx context.Context, inv *cmd.Invocation) error {
	ec := inv.Exec
	userID := memberID(inv.Value(1))
	if userID == "" {
		return ec.Send(ctx, "Member not found.")
	}
	if userID == ec.AuthorID() {
		return ec.Send(ctx, "You can't ban yourself.")
	}

	days := 0
	if n, ok := inv.Number(2); ok {
		days = min(max(int(n), 0), maxDeleteDays)
	}

	reason := fmt.Sprintf("banned by %s", ec.AuthorName())
	if err := g.Banner.Ban(ctx, ec.GuildID(), userID, reason, days); err != nil {
		return fmt.Errorf("ban %s: %w", userID, err)
	}
	if days > 0 {
		return ec.Send(ctx, fmt.Sprintf("Banned <@%s> and deleted %d day(s) of messages.", userID, days))
	}
	return ec.Send(ctx, fmt.Sprintf("Banned <@%s>.", userID))
}

// memberID extracts the user id from whatever member value the platform
// resolved.
func memberID(v any) string {
	switch m := v.(type) {
	case *discordgo.Member:
		if m != nil && m.User != nil {
			return m.User.ID
		}
	case interface{ UserID() string }:
		return m.UserID()
	}
	return ""
}
