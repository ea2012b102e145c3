package cmd

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Resolver when the requested entity does not
// exist or is not visible to the bot.
var ErrNotFound = errors.New("entity not found")

// ChannelKind narrows a channel lookup.
type ChannelKind int

const (
	AnyChannel ChannelKind = iota
	TextChannel
	VoiceChannel
)

// Resolver fetches platform entities by id. Results are platform values
// (e.g. *discordgo.Member) passed through to handlers untouched.
type Resolver interface {
	FetchUser(ctx context.Context, userID string) (any, error)
	FetchMember(ctx context.Context, guildID, userID string) (any, error)
	FetchChannel(ctx context.Context, channelID string, kind ChannelKind) (any, error)
	FetchGuild(ctx context.Context, guildID string) (any, error)
}

// Sender delivers text back to the chat.
type Sender interface {
	Send(ctx context.Context, channelID, content string) error
	Reply(ctx context.Context, msg Message, content string) error
}

// Platform is everything the Dispatcher needs from a chat client.
type Platform interface {
	Resolver
	Sender
}
