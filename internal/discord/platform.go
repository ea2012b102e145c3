package discord

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/keshon/gearcmd/pkg/retrylimit"
)

// maxMessageLength is Discord's limit for a message's content.
const maxMessageLength = 2000

// Platform resolves entities and sends messages through a discordgo session.
// Lookups read the session state cache first and fall back to REST calls,
// which are rate limited and retried.
type Platform struct {
	s      *discordgo.Session
	lim    *retrylimit.Limiter
	policy retrylimit.Policy
}

var _ cmd.Platform = (*Platform)(nil)

// NewPlatform wraps s; rps is the starting rate for REST lookups.
func NewPlatform(s *discordgo.Session, rps float64) *Platform {
	policy := retrylimit.DefaultPolicy()
	policy.Classify = classify
	return &Platform{
		s:      s,
		lim:    retrylimit.NewLimiter(rps, 1, rps*4),
		policy: policy,
	}
}

func (p *Platform) FetchUser(ctx context.Context, userID string) (any, error) {
	if !validID(userID) {
		return nil, cmd.ErrNotFound
	}
	if p.s.State != nil && p.s.State.User != nil && p.s.State.User.ID == userID {
		return p.s.State.User, nil
	}
	var u *discordgo.User
	err := p.rest(ctx, func(ctx context.Context) (err error) {
		u, err = p.s.User(userID, discordgo.WithContext(ctx))
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (p *Platform) FetchMember(ctx context.Context, guildID, userID string) (any, error) {
	if !validID(guildID) || !validID(userID) {
		return nil, cmd.ErrNotFound
	}
	if m, err := p.s.State.Member(guildID, userID); err == nil {
		return m, nil
	}
	var m *discordgo.Member
	err := p.rest(ctx, func(ctx context.Context) (err error) {
		m, err = p.s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Platform) FetchChannel(ctx context.Context, channelID string, kind cmd.ChannelKind) (any, error) {
	if !validID(channelID) {
		return nil, cmd.ErrNotFound
	}
	ch, err := p.s.State.Channel(channelID)
	if err != nil {
		err = p.rest(ctx, func(ctx context.Context) (err error) {
			ch, err = p.s.Channel(channelID, discordgo.WithContext(ctx))
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	if !channelMatches(ch, kind) {
		return nil, cmd.ErrNotFound
	}
	return ch, nil
}

func (p *Platform) FetchGuild(ctx context.Context, guildID string) (any, error) {
	if !validID(guildID) {
		return nil, cmd.ErrNotFound
	}
	if g, err := p.s.State.Guild(guildID); err == nil {
		return g, nil
	}
	var g *discordgo.Guild
	err := p.rest(ctx, func(ctx context.Context) (err error) {
		g, err = p.s.Guild(guildID, discordgo.WithContext(ctx))
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Platform) Send(ctx context.Context, channelID, content string) error {
	_, err := p.s.ChannelMessageSend(channelID, truncate(content), discordgo.WithContext(ctx))
	return err
}

func (p *Platform) Reply(ctx context.Context, msg cmd.Message, content string) error {
	ref := &discordgo.MessageReference{MessageID: msg.ID, ChannelID: msg.ChannelID, GuildID: msg.GuildID}
	_, err := p.s.ChannelMessageSendReply(msg.ChannelID, truncate(content), ref, discordgo.WithContext(ctx))
	return err
}

// Ban bans a member and deletes their messages of the last days days.
func (p *Platform) Ban(ctx context.Context, guildID, userID, reason string, days int) error {
	return p.s.GuildBanCreateWithReason(guildID, userID, reason, days, discordgo.WithContext(ctx))
}

// Latency is the gateway heartbeat round trip.
func (p *Platform) Latency() time.Duration {
	return p.s.HeartbeatLatency()
}

// rest runs a REST call under the limiter, turning "no such entity"
// responses into cmd.ErrNotFound.
func (p *Platform) rest(ctx context.Context, call func(ctx context.Context) error) error {
	err := retrylimit.Do(ctx, p.lim, p.policy, call)
	if isNotFound(err) {
		return fmt.Errorf("%w: %w", cmd.ErrNotFound, err)
	}
	return err
}

func classify(err error) retrylimit.Outcome {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		code := restErr.Response.StatusCode
		switch {
		case code == http.StatusTooManyRequests:
			return retrylimit.Throttle
		case code >= 500:
			return retrylimit.Retry
		default:
			return retrylimit.Fatal
		}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return retrylimit.Retry
	}
	return retrylimit.Fatal
}

func isNotFound(err error) bool {
	if errors.Is(err, discordgo.ErrStateNotFound) {
		return true
	}
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	switch restErr.Response.StatusCode {
	case http.StatusNotFound, http.StatusBadRequest, http.StatusForbidden:
		return true
	}
	return false
}

func channelMatches(ch *discordgo.Channel, kind cmd.ChannelKind) bool {
	switch kind {
	case cmd.TextChannel:
		return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
	case cmd.VoiceChannel:
		return ch.Type == discordgo.ChannelTypeGuildVoice || ch.Type == discordgo.ChannelTypeGuildStageVoice
	default:
		return true
	}
}

// validID reports whether id looks like a snowflake.
func validID(id string) bool {
	if id == "" || len(id) > 20 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(content string) string {
	if utf8.RuneCountInString(content) <= maxMessageLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxMessageLength-1]) + "…"
}
