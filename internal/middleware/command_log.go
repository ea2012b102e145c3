package middleware

import (
	"context"
	"time"

	"github.com/keshon/gearcmd/internal/storage"
	"github.com/keshon/gearcmd/pkg/cmd"
)

// HistoryStore is the part of storage.Storage the command logger writes to.
type HistoryStore interface {
	AppendCommandToHistory(guildID string, rec storage.CommandHistoryRecord)
}

// WithCommandLogger records every guild command that reached its handler,
// whether or not the handler succeeded.
func WithCommandLogger(store HistoryStore) cmd.Middleware {
	return func(next cmd.HandlerFunc) cmd.HandlerFunc {
		return func(ctx context.Context, inv *cmd.Invocation) error {
			err := next(ctx, inv)

			ec := inv.Exec
			if ec != nil && ec.GuildID() != "" {
				store.AppendCommandToHistory(ec.GuildID(), storage.CommandHistoryRecord{
					ChannelID: ec.ChannelID(),
					UserID:    ec.AuthorID(),
					Username:  ec.AuthorName(),
					Command:   inv.Command.Name,
					Param:     ec.Message().Content,
					Datetime:  time.Now().UTC(),
				})
			}
			return err
		}
	}
}
