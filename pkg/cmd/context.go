package cmd

import (
	"context"

	"github.com/google/uuid"
)

// Message is the platform-neutral view of an incoming chat message.
type Message struct {
	ID         string
	ChannelID  string
	GuildID    string
	AuthorID   string
	AuthorName string
	Content    string

	// Raw holds the platform event (e.g. *discordgo.MessageCreate).
	Raw any
}

// Context is the per-dispatch execution context handed to checks and to
// parameters declared with ContextArg. It is created fresh for every message
// and is read-only.
type Context struct {
	id     string
	msg    Message
	sender Sender
}

func newContext(msg Message, sender Sender) *Context {
	return &Context{id: uuid.NewString(), msg: msg, sender: sender}
}

// NewContext builds a Context outside of a dispatch, mostly for tests of
// checks and handlers.
func NewContext(msg Message, sender Sender) *Context { return newContext(msg, sender) }

// ID is the correlation id of the dispatch.
func (c *Context) ID() string { return c.id }

func (c *Context) Message() Message   { return c.msg }
func (c *Context) ChannelID() string  { return c.msg.ChannelID }
func (c *Context) GuildID() string    { return c.msg.GuildID }
func (c *Context) AuthorID() string   { return c.msg.AuthorID }
func (c *Context) AuthorName() string { return c.msg.AuthorName }

// Send posts content to the channel the message came from.
func (c *Context) Send(ctx context.Context, content string) error {
	return c.sender.Send(ctx, c.msg.ChannelID, content)
}

// Reply answers the message directly.
func (c *Context) Reply(ctx context.Context, content string) error {
	return c.sender.Reply(ctx, c.msg, content)
}
