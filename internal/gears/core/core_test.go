package core

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

type named string

func (n named) String() string { return "named " + string(n) }

func TestDescribe(t *testing.T) {
	assert.Equal(t, "User not found.", describe(nil))
	assert.Equal(t, "User not found.", describe((*discordgo.User)(nil)))
	assert.Equal(t, "alice (id 1, bot: false)", describe(&discordgo.User{ID: "1", Username: "alice"}))
	assert.Equal(t, "named x", describe(named("x")))
	assert.Equal(t, "42", describe(42))
}

func TestInitRequiresRegistry(t *testing.T) {
	assert.Error(t, (&Gear{}).Init(context.Background()))
}
