package moderation

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

type stubMember struct{ id string }

func (m stubMember) UserID() string { return m.id }

func TestMemberID(t *testing.T) {
	assert.Equal(t, "123", memberID(&discordgo.Member{User: &discordgo.User{ID: "123"}}))
	assert.Equal(t, "7", memberID(stubMember{id: "7"}))
	assert.Empty(t, memberID(&discordgo.Member{}))
	assert.Empty(t, memberID(nil))
	assert.Empty(t, memberID("123"))
}

func TestInitRequiresDependencies(t *testing.T) {
	assert.Error(t, (&Gear{}).Init(context.Background()))
}
