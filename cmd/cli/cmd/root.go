// Package cmd is the gearcmd command line: a local console for trying
// commands without a Discord connection.
package cmd

import (
	"context"
	"io"

	"github.com/keshon/gearcmd/internal/config"
	"github.com/keshon/gearcmd/internal/console"
	"github.com/keshon/gearcmd/internal/gears"
	"github.com/keshon/gearcmd/internal/middleware"
	"github.com/keshon/gearcmd/internal/storage"
	pkgcmd "github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	prefix       string
	strict       bool
	verbose      bool
	commandsFile string
)

var rootCmd = &cobra.Command{
	Use:   "gearcmd",
	Short: "Prefix command dispatcher for chat bots",
	Long: `gearcmd runs prefix chat commands ("!ban @someone 3") through a
dispatcher that parses, converts and validates arguments before calling
the command's handler.

The console subcommand feeds lines from stdin through the dispatcher
against an in-memory guild, printing the bot's replies.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "!", "command prefix")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "treat unknown users, members and channels as invalid arguments")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log dispatcher activity")
	rootCmd.PersistentFlags().StringVar(&commandsFile, "commands-file", "", "TOML file overriding built-in commands")
}

type session struct {
	platform   *console.Platform
	dispatcher *pkgcmd.Dispatcher
	store      *storage.Storage
}

// newSession builds a dispatcher over the console platform with every gear
// registered. History is recorded only when storePath is set.
func newSession(ctx context.Context, out, logOut io.Writer, storePath string) (*session, error) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: logOut}).Level(level).With().Timestamp().Logger()

	overrides, err := config.LoadCommandOverrides(commandsFile)
	if err != nil {
		return nil, err
	}

	s := &session{platform: console.New(out)}
	opts := []pkgcmd.Option{
		pkgcmd.WithPrefix(prefix),
		pkgcmd.WithStrictLookups(strict),
		pkgcmd.WithUnknownCommandResponse(true),
		pkgcmd.WithLogger(logger),
	}
	deps := gears.Deps{
		Banner:      s.platform,
		Permissions: s.platform.Permissions,
		Latency:     s.platform.Latency,
		Overrides:   overrides,
	}
	if storePath != "" {
		store, err := storage.New(storePath)
		if err != nil {
			return nil, err
		}
		s.store = store
		deps.History = store
		opts = append(opts, pkgcmd.WithMiddleware(middleware.WithCommandLogger(store)))
	}

	s.dispatcher = pkgcmd.NewDispatcher(s.platform, opts...)
	if err := gears.Register(ctx, s.dispatcher, deps); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
