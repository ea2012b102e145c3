package cmd

import (
	"bufio"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/keshon/gearcmd/internal/console"
	"github.com/spf13/cobra"
)

var (
	author      string
	storagePath string
	interactive bool
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Dispatch messages read from stdin",
	Long: `Reads one message per line from stdin and dispatches it as if it had
been posted in #general of the console guild. Known user ids are
100 (you), 123 (alice) and 456 (bob); channels are 500 (text) and
501 (voice).`,
	Args: cobra.NoArgs,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&author, "author", console.AuthorID, "user id the messages come from")
	consoleCmd.Flags().StringVar(&storagePath, "storage", "", "JSON file for command history (disabled when empty)")
	consoleCmd.Flags().BoolVar(&interactive, "tui", false, "interactive prompt instead of reading stdin line by line")
	rootCmd.AddCommand(consoleCmd)
}

func runConsole(c *cobra.Command, _ []string) error {
	if interactive {
		return runTUI(c)
	}

	ctx := c.Context()
	s, err := newSession(ctx, c.OutOrStdout(), c.ErrOrStderr(), storagePath)
	if err != nil {
		return err
	}
	defer s.close()

	scanner := bufio.NewScanner(c.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		// Failures were already answered in chat.
		_ = s.dispatcher.Dispatch(ctx, s.platform.Message(author, line))
	}
	return scanner.Err()
}

func runTUI(c *cobra.Command) error {
	ctx := c.Context()
	transcript := &console.Transcript{}
	// Log lines would tear the prompt apart, so they go to the transcript too.
	s, err := newSession(ctx, transcript, transcript, storagePath)
	if err != nil {
		return err
	}
	defer s.close()

	model := console.NewModel(transcript, func(line string) {
		_ = s.dispatcher.Dispatch(ctx, s.platform.Message(author, line))
	})
	_, err = tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(c.InOrStdin()),
		tea.WithOutput(c.OutOrStdout()),
	).Run()
	return err
}
