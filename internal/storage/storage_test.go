package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestNewRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err := New(path)
	assert.Error(t, err)
}

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := New(path)
	require.NoError(t, err)

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.AppendCommandToHistory("g1", CommandHistoryRecord{UserID: "42", Command: "ping", Datetime: at})
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()
	got := reopened.FetchCommandHistory("g1")
	require.Len(t, got, 1)
	assert.Equal(t, "ping", got[0].Command)
	assert.True(t, at.Equal(got[0].Datetime))
	assert.Nil(t, reopened.FetchCommandHistory("g2"))
}

func TestHistoryIsCapped(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < commandHistoryLimit+5; i++ {
		s.AppendCommandToHistory("g1", CommandHistoryRecord{Command: fmt.Sprintf("c%d", i)})
	}
	got := s.FetchCommandHistory("g1")
	require.Len(t, got, commandHistoryLimit)
	assert.Equal(t, "c5", got[0].Command)
	assert.Equal(t, fmt.Sprintf("c%d", commandHistoryLimit+4), got[len(got)-1].Command)
}

func TestCloseSavesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := New(path)
	require.NoError(t, err)
	s.AppendCommandToHistory("g1", CommandHistoryRecord{Command: "echo"})
	require.NoError(t, s.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"command": "echo"`)
	assert.Contains(t, string(data), `"cmd_history"`)
}

func TestSaveWritesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	s.AppendCommandToHistory("g1", CommandHistoryRecord{Command: "ping"})
	require.NoError(t, s.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"g1"`)
}
