// /internal/storage/storage.go
package storage

import (
	"fmt"
	"sync"

	"github.com/keshon/gearcmd/pkg/datastore"
)

const commandHistoryLimit int = 20

type Storage struct {
	ds *datastore.DataStore
	// serialises read-modify-write of a guild record
	mu sync.Mutex
}

// Record is everything stored for one guild.
type Record struct {
	CommandsHistory []CommandHistoryRecord `json:"cmd_history"`
}

// New opens the store at filePath. It autosaves in the background until
// Close.
func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

// Close flushes pending changes and stops autosave.
func (s *Storage) Close() error {
	return s.ds.Close()
}

// Save writes pending changes now.
func (s *Storage) Save() error {
	return s.ds.SaveToFile()
}

// getOrCreateGuildRecord loads the record for guildID, or an empty one.
func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(guildID, &record); err != nil {
		return nil, fmt.Errorf("error reading guild %s: %w", guildID, err)
	}
	return &record, nil
}

func (s *Storage) saveGuildRecord(guildID string, record *Record) error {
	if err := s.ds.Add(guildID, record); err != nil {
		return fmt.Errorf("error writing guild %s: %w", guildID, err)
	}
	return nil
}
