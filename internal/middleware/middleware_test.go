package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/internal/storage"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSender struct{}

func (nopSender) Send(context.Context, string, string) error       { return nil }
func (nopSender) Reply(context.Context, cmd.Message, string) error { return nil }

func execContext(guildID, authorID string) *cmd.Context {
	return cmd.NewContext(cmd.Message{
		ChannelID:  "500",
		GuildID:    guildID,
		AuthorID:   authorID,
		AuthorName: "bob",
		Content:    "!ping now",
	}, nopSender{})
}

func TestGuildOnly(t *testing.T) {
	ok, msg := GuildOnly()(context.Background(), execContext("g1", "42"))
	assert.True(t, ok)
	assert.Empty(t, msg)

	ok, msg = GuildOnly()(context.Background(), execContext("", "42"))
	assert.False(t, ok)
	assert.Empty(t, msg)
}

func TestDeveloperOnly(t *testing.T) {
	check := DeveloperOnly("7")
	ok, _ := check(context.Background(), execContext("g1", "7"))
	assert.True(t, ok)

	ok, msg := check(context.Background(), execContext("g1", "42"))
	assert.False(t, ok)
	assert.NotEmpty(t, msg)

	ok, _ = DeveloperOnly("")(context.Background(), execContext("g1", ""))
	assert.False(t, ok)
}

func TestRequirePermissions(t *testing.T) {
	permsOf := func(bits int64, err error) PermissionsFunc {
		return func(userID, channelID string) (int64, error) {
			assert.Equal(t, "500", channelID)
			return bits, err
		}
	}
	ctx := context.Background()

	ok, _ := RequirePermissions(permsOf(discordgo.PermissionBanMembers, nil), "", discordgo.PermissionBanMembers)(ctx, execContext("g1", "42"))
	assert.True(t, ok)

	ok, _ = RequirePermissions(permsOf(discordgo.PermissionAdministrator, nil), "", discordgo.PermissionBanMembers)(ctx, execContext("g1", "42"))
	assert.True(t, ok)

	ok, _ = RequirePermissions(permsOf(0, nil), "42", discordgo.PermissionBanMembers)(ctx, execContext("g1", "42"))
	assert.True(t, ok, "developer bypasses the check")

	ok, msg := RequirePermissions(permsOf(discordgo.PermissionSendMessages, nil), "", discordgo.PermissionBanMembers, discordgo.PermissionKickMembers)(ctx, execContext("g1", "42"))
	assert.False(t, ok)
	assert.Equal(t, "You need at least one of the following permissions to run this command:\n`Ban Members`, `Kick Members`", msg)

	ok, msg = RequirePermissions(permsOf(0, errors.New("rest down")), "", discordgo.PermissionBanMembers)(ctx, execContext("g1", "42"))
	assert.False(t, ok)
	assert.NotEmpty(t, msg)
}

type historyStub struct {
	guildID string
	recs    []storage.CommandHistoryRecord
}

func (h *historyStub) AppendCommandToHistory(guildID string, rec storage.CommandHistoryRecord) {
	h.guildID = guildID
	h.recs = append(h.recs, rec)
}

func TestWithCommandLogger(t *testing.T) {
	store := &historyStub{}
	boom := errors.New("boom")
	h := cmd.Chain(func(context.Context, *cmd.Invocation) error { return boom }, WithCommandLogger(store))

	inv := &cmd.Invocation{Command: &cmd.Command{Name: "ping"}, Exec: execContext("g1", "42")}
	err := h(context.Background(), inv)
	assert.ErrorIs(t, err, boom)

	require.Len(t, store.recs, 1)
	assert.Equal(t, "g1", store.guildID)
	assert.Equal(t, "ping", store.recs[0].Command)
	assert.Equal(t, "42", store.recs[0].UserID)
	assert.Equal(t, "!ping now", store.recs[0].Param)

	require.NoError(t, cmd.Chain(func(context.Context, *cmd.Invocation) error { return nil }, WithCommandLogger(store))(
		context.Background(), &cmd.Invocation{Command: &cmd.Command{Name: "dm"}, Exec: execContext("", "42")}))
	assert.Len(t, store.recs, 1, "DMs are not recorded")
}
