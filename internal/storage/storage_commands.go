package storage

import (
	"time"

	"github.com/rs/zerolog/log"
)

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Param     string    `json:"param"`
	Datetime  time.Time `json:"datetime"`
}

// AppendCommandToHistory records a command run in a guild, keeping the most
// recent commandHistoryLimit entries. Write failures are logged.
func (s *Storage) AppendCommandToHistory(guildID string, rec CommandHistoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to load command history")
		return
	}
	record.CommandsHistory = append(record.CommandsHistory, rec)
	if n := len(record.CommandsHistory); n > commandHistoryLimit {
		record.CommandsHistory = record.CommandsHistory[n-commandHistoryLimit:]
	}
	if err := s.saveGuildRecord(guildID, record); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to store command history")
	}
}

// FetchCommandHistory returns a guild's history, oldest first.
func (s *Storage) FetchCommandHistory(guildID string) []CommandHistoryRecord {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("failed to load command history")
		return nil
	}
	return record.CommandsHistory
}
