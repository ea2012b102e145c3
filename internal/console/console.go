// Package console is an in-memory chat platform for driving the dispatcher
// from a terminal. It holds a fixed directory of users, members, channels
// and one guild, and prints everything the bot says.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/keshon/gearcmd/pkg/cmd"
)

type User struct {
	ID   string
	Name string
}

func (u *User) String() string { return fmt.Sprintf("%s (id %s)", u.Name, u.ID) }

type Member struct {
	User    *User
	GuildID string
}

func (m *Member) UserID() string { return m.User.ID }

func (m *Member) String() string { return fmt.Sprintf("%s in guild %s", m.User.Name, m.GuildID) }

type Channel struct {
	ID   string
	Name string
	Kind cmd.ChannelKind
}

type Guild struct {
	ID   string
	Name string
}

// Ban is a recorded ban action.
type Ban struct {
	GuildID, UserID, Reason string
	Days                    int
}

var (
	channelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	replyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	textStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// Platform implements cmd.Platform over the directory.
type Platform struct {
	mu       sync.Mutex
	w        io.Writer
	users    map[string]*User
	members  map[string]*Member
	channels map[string]*Channel
	guilds   map[string]*Guild
	bans     []Ban
}

const (
	GuildID   = "1"
	ChannelID = "500"
	AuthorID  = "100"
)

// New returns a platform with the default directory, writing to w.
func New(w io.Writer) *Platform {
	p := &Platform{
		w:        w,
		users:    map[string]*User{},
		members:  map[string]*Member{},
		channels: map[string]*Channel{},
		guilds:   map[string]*Guild{},
	}
	p.AddGuild(&Guild{ID: GuildID, Name: "console"})
	p.AddChannel(&Channel{ID: ChannelID, Name: "general", Kind: cmd.TextChannel})
	p.AddChannel(&Channel{ID: "501", Name: "voice", Kind: cmd.VoiceChannel})
	for _, u := range []*User{{ID: AuthorID, Name: "you"}, {ID: "123", Name: "alice"}, {ID: "456", Name: "bob"}} {
		p.AddUser(u)
		p.AddMember(GuildID, u.ID)
	}
	return p
}

func (p *Platform) AddUser(u *User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[u.ID] = u
}

// AddMember makes an existing user a member of guildID.
func (p *Platform) AddMember(guildID, userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[userID]; ok {
		p.members[guildID+"/"+userID] = &Member{User: u, GuildID: guildID}
	}
}

func (p *Platform) AddChannel(c *Channel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.channels[c.ID] = c
}

func (p *Platform) AddGuild(g *Guild) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.guilds[g.ID] = g
}

func (p *Platform) FetchUser(_ context.Context, id string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if u, ok := p.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, cmd.ErrNotFound)
}

func (p *Platform) FetchMember(_ context.Context, guildID, userID string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.members[guildID+"/"+userID]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("member %s/%s: %w", guildID, userID, cmd.ErrNotFound)
}

func (p *Platform) FetchChannel(_ context.Context, id string, kind cmd.ChannelKind) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.channels[id]
	if !ok || (kind != cmd.AnyChannel && c.Kind != kind) {
		return nil, fmt.Errorf("channel %s: %w", id, cmd.ErrNotFound)
	}
	return c, nil
}

func (p *Platform) FetchGuild(_ context.Context, id string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if g, ok := p.guilds[id]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("guild %s: %w", id, cmd.ErrNotFound)
}

func (p *Platform) Send(_ context.Context, channelID, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, channelStyle.Render("#"+p.channelName(channelID))+" "+textStyle.Render(content))
	return err
}

func (p *Platform) Reply(_ context.Context, msg cmd.Message, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, replyStyle.Render("↪ @"+msg.AuthorName)+" "+textStyle.Render(content))
	return err
}

// Ban records the ban and removes the membership.
func (p *Platform) Ban(_ context.Context, guildID, userID, reason string, days int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := guildID + "/" + userID
	if _, ok := p.members[key]; !ok {
		return fmt.Errorf("member %s: %w", key, cmd.ErrNotFound)
	}
	delete(p.members, key)
	p.bans = append(p.bans, Ban{GuildID: guildID, UserID: userID, Reason: reason, Days: days})
	return nil
}

// Bans returns a copy of the recorded bans.
func (p *Platform) Bans() []Ban {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Ban(nil), p.bans...)
}

// Latency is always zero; there is no network.
func (p *Platform) Latency() time.Duration { return 0 }

// Permissions grants everything to every user.
func (p *Platform) Permissions(string, string) (int64, error) { return -1, nil }

// Message builds an incoming message from the console author in the
// default channel.
func (p *Platform) Message(authorID, content string) cmd.Message {
	p.mu.Lock()
	name := authorID
	if u, ok := p.users[authorID]; ok {
		name = u.Name
	}
	p.mu.Unlock()
	return cmd.Message{
		ID:         uuid.NewString(),
		ChannelID:  ChannelID,
		GuildID:    GuildID,
		AuthorID:   authorID,
		AuthorName: name,
		Content:    content,
	}
}

func (p *Platform) channelName(id string) string {
	if c, ok := p.channels[id]; ok {
		return c.Name
	}
	return id
}
