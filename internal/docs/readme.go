// Package docs renders the command reference for help output and README.md.
package docs

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/keshon/gearcmd/internal/config"
	"github.com/keshon/gearcmd/pkg/cmd"
	"github.com/rs/zerolog/log"
)

// Section is one category of commands.
type Section struct {
	Category string
	Commands []*cmd.Command
}

// Title is the category name, or "Other" for uncategorized commands.
func (s Section) Title() string {
	if s.Category == "" {
		return "Other"
	}
	return s.Category
}

// Group splits cmds by category, ordered by config.CategoryWeight and then
// name. Commands keep their relative order within a section.
func Group(cmds []*cmd.Command) []Section {
	index := map[string]int{}
	var sections []Section
	for _, c := range cmds {
		i, ok := index[c.Category]
		if !ok {
			i = len(sections)
			index[c.Category] = i
			sections = append(sections, Section{Category: c.Category})
		}
		sections[i].Commands = append(sections[i].Commands, c)
	}
	sort.SliceStable(sections, func(i, j int) bool {
		wi, wj := config.CategoryWeight(sections[i].Category), config.CategoryWeight(sections[j].Category)
		if wi != wj {
			return wi < wj
		}
		return sections[i].Category < sections[j].Category
	})
	return sections
}

const defaultTemplate = `# Commands

Every command starts with ` + "`{{.Prefix}}`" + `. Arguments in <angle brackets> are
required, [square brackets] are optional.

{{.CommandSections}}`

// CommandSections renders cmds as markdown, one heading per category.
func CommandSections(cmds []*cmd.Command, prefix string) string {
	var b strings.Builder
	for i, s := range Group(cmds) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s\n\n", s.Title())
		for _, c := range s.Commands {
			fmt.Fprintf(&b, "- **`%s%s`** %s\n", prefix, c.Usage(), c.Description)
		}
	}
	return b.String()
}

// UpdateReadme executes the template at tmplPath (a built-in one when empty)
// with the command reference and writes the result to outPath.
func UpdateReadme(cmds []*cmd.Command, prefix, tmplPath, outPath string) error {
	tmpl := template.New("readme")
	var err error
	if tmplPath == "" {
		tmpl, err = tmpl.Parse(defaultTemplate)
	} else {
		tmpl, err = template.ParseFiles(tmplPath)
	}
	if err != nil {
		return fmt.Errorf("parse readme template: %w", err)
	}

	var out strings.Builder
	data := struct {
		Prefix          string
		CommandSections string
	}{
		Prefix:          prefix,
		CommandSections: CommandSections(cmds, prefix),
	}
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("render readme: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(out.String()), 0644); err != nil {
		return err
	}

	log.Info().Str("path", outPath).Int("commands", len(cmds)).Msg("README updated with current commands")
	return nil
}
