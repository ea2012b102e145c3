package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog/log"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:      "Kick Members",
	discordgo.PermissionBanMembers:       "Ban Members",
	discordgo.PermissionAdministrator:    "Administrator",
	discordgo.PermissionManageChannels:   "Manage Channels",
	discordgo.PermissionManageGuild:      "Manage Server",
	discordgo.PermissionViewAuditLogs:    "View Audit Logs",
	discordgo.PermissionSendMessages:     "Send Messages",
	discordgo.PermissionManageMessages:   "Manage Messages",
	discordgo.PermissionMentionEveryone:  "Mention Everyone",
	discordgo.PermissionManageNicknames:  "Manage Nicknames",
	discordgo.PermissionManageRoles:      "Manage Roles",
	discordgo.PermissionModerateMembers:  "Moderate Members",
	discordgo.PermissionVoiceMuteMembers: "Mute Members",
	discordgo.PermissionVoiceMoveMembers: "Move Members",
}

// PermissionsFunc returns the permission bits a user has in a channel.
// With discordgo this is a closure over Session.UserChannelPermissions.
type PermissionsFunc func(userID, channelID string) (int64, error)

// RequirePermissions passes when the author has at least one of required in
// the message's channel. Administrators and the developer always pass.
func RequirePermissions(perms PermissionsFunc, developerID string, required ...int64) cmd.Check {
	return func(_ context.Context, ec *cmd.Context) (bool, string) {
		if len(required) == 0 || (developerID != "" && ec.AuthorID() == developerID) {
			return true, ""
		}
		if ec.GuildID() == "" {
			return false, ""
		}

		memberPerms, err := perms(ec.AuthorID(), ec.ChannelID())
		if err != nil {
			log.Error().Err(err).Str("user", ec.AuthorID()).Str("channel", ec.ChannelID()).Msg("failed to get user permissions")
			return false, "Failed to verify your permissions, try again later."
		}
		if memberPerms&discordgo.PermissionAdministrator != 0 {
			return true, ""
		}
		for _, p := range required {
			if memberPerms&p != 0 {
				return true, ""
			}
		}

		allowed := make([]string, 0, len(required))
		for _, p := range required {
			name := PermissionNames[p]
			if name == "" {
				name = fmt.Sprintf("0x%x", p)
			}
			allowed = append(allowed, name)
		}
		return false, fmt.Sprintf(
			"You need at least one of the following permissions to run this command:\n`%s`",
			strings.Join(allowed, "`, `"),
		)
	}
}
