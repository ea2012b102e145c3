package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog/log"
)

// Bot feeds Discord message events into a Dispatcher.
type Bot struct {
	dg         *discordgo.Session
	dispatcher *cmd.Dispatcher
	ctx        context.Context
}

// NewSession creates a discordgo session for a bot token.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	return dg, nil
}

// NewBot returns a bot dispatching messages received on dg.
func NewBot(dg *discordgo.Session, d *cmd.Dispatcher) *Bot {
	return &Bot{dg: dg, dispatcher: d}
}

// Run opens the gateway connection and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.ctx = ctx
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, closing Discord session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().
		Str("user", r.User.Username).
		Int("guilds", len(r.Guilds)).
		Int("commands", len(b.dispatcher.Registry().All())).
		Str("prefix", b.dispatcher.Prefix()).
		Msg("Discord bot is running")
}

// onMessageCreate runs on discordgo's per-event goroutine, so dispatches for
// different messages proceed concurrently.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}
	if err := b.dispatcher.Dispatch(b.ctx, MessageFromEvent(m)); err != nil {
		log.Debug().Err(err).Str("channel", m.ChannelID).Msg("dispatch ended with error")
	}
}

// MessageFromEvent converts a gateway event into a cmd.Message.
func MessageFromEvent(m *discordgo.MessageCreate) cmd.Message {
	msg := cmd.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Content:   m.Content,
		Raw:       m,
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
	}
	return msg
}
