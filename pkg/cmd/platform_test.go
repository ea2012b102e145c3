package cmd

import (
	"context"
	"sync"
)

type sent struct {
	ChannelID string
	Content   string
	Reply     bool
}

// fakePlatform resolves ids from fixed maps and records outgoing text.
type fakePlatform struct {
	mu       sync.Mutex
	users    map[string]string
	members  map[string]string // guildID/userID
	channels map[string]ChannelKind
	guilds   map[string]string
	fetchErr error
	out      []sent
	fetches  int
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		users:    map[string]string{"123": "alice"},
		members:  map[string]string{"g1/123": "alice@g1"},
		channels: map[string]ChannelKind{"500": TextChannel, "501": VoiceChannel},
		guilds:   map[string]string{"g1": "guild one"},
	}
}

func (p *fakePlatform) fetch(m map[string]string, key string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	v, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (p *fakePlatform) FetchUser(_ context.Context, id string) (any, error) {
	return p.fetch(p.users, id)
}

func (p *fakePlatform) FetchMember(_ context.Context, guildID, id string) (any, error) {
	return p.fetch(p.members, guildID+"/"+id)
}

func (p *fakePlatform) FetchChannel(_ context.Context, id string, kind ChannelKind) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetches++
	k, ok := p.channels[id]
	if !ok || (kind != AnyChannel && kind != k) {
		return nil, ErrNotFound
	}
	return "#" + id, nil
}

func (p *fakePlatform) FetchGuild(_ context.Context, id string) (any, error) {
	return p.fetch(p.guilds, id)
}

func (p *fakePlatform) Send(_ context.Context, channelID, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = append(p.out, sent{ChannelID: channelID, Content: content})
	return nil
}

func (p *fakePlatform) Reply(_ context.Context, msg Message, content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = append(p.out, sent{ChannelID: msg.ChannelID, Content: content, Reply: true})
	return nil
}

func (p *fakePlatform) sent() []sent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]sent(nil), p.out...)
}

func (p *fakePlatform) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches + len(p.out)
}
