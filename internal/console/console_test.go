package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryLookups(t *testing.T) {
	ctx := context.Background()
	p := New(&bytes.Buffer{})

	u, err := p.FetchUser(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.(*User).Name)

	m, err := p.FetchMember(ctx, GuildID, "456")
	require.NoError(t, err)
	assert.Equal(t, "456", m.(*Member).UserID())

	_, err = p.FetchMember(ctx, "other", "456")
	assert.ErrorIs(t, err, cmd.ErrNotFound)

	_, err = p.FetchChannel(ctx, "501", cmd.TextChannel)
	assert.ErrorIs(t, err, cmd.ErrNotFound)
	c, err := p.FetchChannel(ctx, "501", cmd.AnyChannel)
	require.NoError(t, err)
	assert.Equal(t, "voice", c.(*Channel).Name)

	g, err := p.FetchGuild(ctx, GuildID)
	require.NoError(t, err)
	assert.Equal(t, "console", g.(*Guild).Name)
}

func TestSendAndReplyWriteOutput(t *testing.T) {
	out := &bytes.Buffer{}
	p := New(out)
	msg := p.Message(AuthorID, "!ping")
	assert.Equal(t, "you", msg.AuthorName)
	assert.NotEmpty(t, msg.ID)

	require.NoError(t, p.Send(context.Background(), ChannelID, "hello"))
	require.NoError(t, p.Reply(context.Background(), msg, "hi back"))
	assert.Contains(t, out.String(), "#general")
	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "@you")
	assert.Contains(t, out.String(), "hi back")
}

func TestBanRemovesMember(t *testing.T) {
	ctx := context.Background()
	p := New(&bytes.Buffer{})

	require.NoError(t, p.Ban(ctx, GuildID, "123", "spam", 1))
	_, err := p.FetchMember(ctx, GuildID, "123")
	assert.ErrorIs(t, err, cmd.ErrNotFound)
	assert.ErrorIs(t, p.Ban(ctx, GuildID, "123", "again", 0), cmd.ErrNotFound)
	assert.Equal(t, []Ban{{GuildID: GuildID, UserID: "123", Reason: "spam", Days: 1}}, p.Bans())
}
