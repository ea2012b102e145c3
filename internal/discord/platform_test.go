package discord

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/keshon/gearcmd/pkg/retrylimit"
	"github.com/stretchr/testify/assert"
)

func restError(code int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: code}}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, retrylimit.Throttle, classify(restError(http.StatusTooManyRequests)))
	assert.Equal(t, retrylimit.Retry, classify(restError(http.StatusBadGateway)))
	assert.Equal(t, retrylimit.Fatal, classify(restError(http.StatusNotFound)))
	assert.Equal(t, retrylimit.Fatal, classify(errors.New("decode failure")))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(restError(http.StatusNotFound)))
	assert.True(t, isNotFound(restError(http.StatusBadRequest)))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", restError(http.StatusForbidden))))
	assert.True(t, isNotFound(discordgo.ErrStateNotFound))
	assert.False(t, isNotFound(restError(http.StatusInternalServerError)))
	assert.False(t, isNotFound(errors.New("dial tcp: timeout")))
	assert.False(t, isNotFound(nil))
}

func TestChannelMatches(t *testing.T) {
	text := &discordgo.Channel{Type: discordgo.ChannelTypeGuildText}
	voice := &discordgo.Channel{Type: discordgo.ChannelTypeGuildVoice}

	assert.True(t, channelMatches(text, cmd.AnyChannel))
	assert.True(t, channelMatches(text, cmd.TextChannel))
	assert.False(t, channelMatches(text, cmd.VoiceChannel))
	assert.True(t, channelMatches(voice, cmd.VoiceChannel))
	assert.False(t, channelMatches(voice, cmd.TextChannel))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("80351110224678912"))
	assert.False(t, validID(""))
	assert.False(t, validID("@me"))
	assert.False(t, validID("bob"))
	assert.False(t, validID(strings.Repeat("1", 21)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))
	long := strings.Repeat("é", maxMessageLength+10)
	got := truncate(long)
	assert.Equal(t, maxMessageLength, utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestMessageFromEvent(t *testing.T) {
	ev := &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "1",
		ChannelID: "2",
		GuildID:   "3",
		Content:   "!ping",
		Author:    &discordgo.User{ID: "4", Username: "bob"},
	}}
	msg := MessageFromEvent(ev)
	assert.Equal(t, cmd.Message{ID: "1", ChannelID: "2", GuildID: "3", AuthorID: "4", AuthorName: "bob", Content: "!ping", Raw: ev}, msg)
}
