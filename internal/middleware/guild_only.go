package middleware

import (
	"context"

	"github.com/keshon/gearcmd/pkg/cmd"
)

// GuildOnly silently drops commands sent outside a guild (e.g. in DMs).
func GuildOnly() cmd.Check {
	return func(_ context.Context, ec *cmd.Context) (bool, string) {
		return ec.GuildID() != "", ""
	}
}

// DeveloperOnly restricts a command to the configured developer account.
func DeveloperOnly(developerID string) cmd.Check {
	return func(_ context.Context, ec *cmd.Context) (bool, string) {
		if developerID != "" && ec.AuthorID() == developerID {
			return true, ""
		}
		return false, "This command is restricted to the bot developer."
	}
}
