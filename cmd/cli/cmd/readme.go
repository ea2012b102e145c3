package cmd

import (
	"io"

	"github.com/keshon/gearcmd/internal/docs"
	"github.com/spf13/cobra"
)

var (
	readmeTemplate string
	readmeOut      string
)

var readmeCmd = &cobra.Command{
	Use:   "readme",
	Short: "Write the command reference into README.md",
	Long: `Renders the registered commands, grouped by category, into a markdown
file. With --template the reference is inserted where the template says
{{.CommandSections}}; {{.Prefix}} is the command prefix.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		s, err := newSession(c.Context(), io.Discard, c.ErrOrStderr(), "")
		if err != nil {
			return err
		}
		return docs.UpdateReadme(s.dispatcher.Registry().All(), prefix, readmeTemplate, readmeOut)
	},
}

func init() {
	readmeCmd.Flags().StringVar(&readmeTemplate, "template", "", "README template (built-in when empty)")
	readmeCmd.Flags().StringVarP(&readmeOut, "out", "o", "README.md", "output file")
	rootCmd.AddCommand(readmeCmd)
}
