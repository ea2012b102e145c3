package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	usageStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	aliasStyle = lipgloss.NewStyle().Faint(true)
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List every registered command",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		s, err := newSession(c.Context(), io.Discard, c.ErrOrStderr(), "")
		if err != nil {
			return err
		}
		out := c.OutOrStdout()
		for _, cm := range s.dispatcher.Registry().All() {
			line := usageStyle.Render(prefix+cm.Usage()) + "  " + cm.Description
			if len(cm.Aliases) > 0 {
				line += " " + aliasStyle.Render(fmt.Sprintf("(aliases: %v)", cm.Aliases))
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
