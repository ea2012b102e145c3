package gears

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keshon/gearcmd/internal/config"
	"github.com/keshon/gearcmd/internal/console"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/internal/storage"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	out   *bytes.Buffer
	p     *console.Platform
	store *storage.Storage
	d     *cmd.Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

func newHarnessWith(t *testing.T, overrides config.CommandOverrides) *harness {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	p := console.New(out)
	d := cmd.NewDispatcher(p,
		cmd.WithLogger(zerolog.Nop()),
		cmd.WithUnknownCommandResponse(true),
		cmd.WithMiddleware(middleware.WithCommandLogger(store)),
	)
	require.NoError(t, Register(context.Background(), d, Deps{
		History:     store,
		Banner:      p,
		Permissions: p.Permissions,
		Latency:     p.Latency,
		Overrides:   overrides,
	}))
	return &harness{out: out, p: p, store: store, d: d}
}

// run dispatches content as the console author and returns what was printed.
func (h *harness) run(t *testing.T, content string) string {
	t.Helper()
	h.out.Reset()
	_ = h.d.Dispatch(context.Background(), h.p.Message(console.AuthorID, content))
	return h.out.String()
}

func TestRegisterAddsAllGears(t *testing.T) {
	h := newHarness(t)
	var names []string
	for _, c := range h.d.Registry().All() {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"ban", "echo", "help", "history", "ping", "roll", "whois"}, names)

	_, ok := h.d.Registry().Lookup("dice")
	assert.True(t, ok, "roll alias")
}

func TestPing(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run(t, "!ping"), "Pong! Latency: 0ms")
}

func TestEchoKeepsRestVerbatim(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run(t, `!echo hello   "world"`), `hello   "world"`)
	assert.Contains(t, h.run(t, "!say"), "Usage: `echo [text...]`")
}

func TestHelpOrdersCategories(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "!help")

	order := []string{"Information", "Utilities", "Gameplay", "Moderation", "Maintenance"}
	last := -1
	for _, cat := range order {
		i := strings.Index(out, cat)
		require.GreaterOrEqual(t, i, 0, cat)
		assert.Greater(t, i, last, cat)
		last = i
	}
	assert.Contains(t, out, "`ban <member> [days]`")
}

func TestHelpForOneCommand(t *testing.T) {
	h := newHarness(t)
	out := h.run(t, "!help roll")
	assert.Contains(t, out, "roll [--verbose=boolean] [--label=string] [formula...]")
	assert.Contains(t, out, "Aliases: dice")

	assert.Contains(t, h.run(t, "!help nope"), "unknown command 'nope'")
}

func TestWhois(t *testing.T) {
	h := newHarness(t)
	assert.Contains(t, h.run(t, "!whois <@123>"), "alice (id 123)")
	assert.Contains(t, h.run(t, "!whois 999"), "User not found.")
}

func TestBan(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.run(t, "!ban <@!123> 30"), "Banned <@123> and deleted 7 day(s) of messages.")
	assert.Equal(t, []console.Ban{{GuildID: console.GuildID, UserID: "123", Reason: "banned by you", Days: 7}}, h.p.Bans())

	// Banned members are no longer resolvable.
	assert.Contains(t, h.run(t, "!ban 123"), "Member not found.")
	assert.Contains(t, h.run(t, "!ban "+console.AuthorID), "You can't ban yourself.")
	assert.Contains(t, h.run(t, "!ban 456 soon"), "Invalid argument 'soon', expected argument of type 'Number'")
	assert.Contains(t, h.run(t, "!ban"), "Expected 2 argument(s), but got 1 argument(s)")
}

func TestRollFlags(t *testing.T) {
	h := newHarness(t)

	out := h.run(t, "!roll --verbose --label=Attack 5+2")
	assert.Contains(t, out, "**Attack** you rolled **7**")
	assert.Contains(t, out, "**Formula**: `5+2`")

	assert.Contains(t, h.run(t, "!roll 4/0"), "Division by zero")
	assert.Contains(t, h.run(t, "!roll --loud 1"), `Command "roll" has no flag "loud"`)
}

func TestHistoryRecordsCommands(t *testing.T) {
	h := newHarness(t)
	h.run(t, "!ping")
	h.run(t, "!echo hi")
	h.run(t, "!nope")

	out := h.run(t, "!history")
	assert.Contains(t, out, "you: ping")
	assert.Contains(t, out, "you: echo")
	assert.NotContains(t, out, "nope")

	records := h.store.FetchCommandHistory(console.GuildID)
	require.Len(t, records, 3)
	assert.Equal(t, "history", records[2].Command)
	assert.Equal(t, "!echo hi", records[1].Param)
}

func TestRegisterAppliesOverrides(t *testing.T) {
	h := newHarnessWith(t, config.CommandOverrides{
		"roll": {Disabled: true},
		"ban":  {Aliases: []string{"hammer"}},
	})

	_, ok := h.d.Registry().Lookup("roll")
	assert.False(t, ok)
	assert.Contains(t, h.run(t, "!hammer <@123>"), "Banned <@123>.")
}
