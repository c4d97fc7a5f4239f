package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sitekit/cli/internal/config"
	"github.com/sitekit/cli/internal/output"
	"github.com/sitekit/cli/internal/templates"
)

// NewTemplatesCmd creates the templates command.
func NewTemplatesCmd(_ *config.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Aliases: []string{"archetypes", "ls"},
		Short:   "List available archetypes and templates",
		Long: `List the archetypes sitekit can create, with their default project
names and template variants. The first variant is used unless --template is
given to sitekit create.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), renderTemplatesTable(templates.List()))
			return nil
		},
	}
}

func renderTemplatesTable(descriptors []templates.Descriptor) string {
	tbl := output.NewTable("ARCHETYPE", "DEFAULT NAME", "TEMPLATES", "DESCRIPTION")
	for _, d := range descriptors {
		tbl.Row(
			output.StyleNoun.Render(d.ID),
			d.DefaultName,
			strings.Join(d.Variants, ", "),
			d.Description,
		)
	}
	return tbl.String()
}
