package cli

import (
	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import clients, projects, risks and resources from JSON, CSV or XLSX",
		Long: `Import a portfolio file. The format is chosen by extension:
  .json  object with clients/projects/risks/resources arrays, or a bare
         projects array
  .csv   projects only, one per row with a header line
  .xlsx  sheets named clients, projects, risks and resources

The file is validated in full before anything is written, and all rows are
inserted in a single transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Import.ImportPortfolio(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, result, func() string { return formatter.FormatImportResult(result) })
		},
	}
}

func newSeedTemplatesCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-templates [file]",
		Short: "Seed process templates from a YAML file, or the built-in defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.TemplateSeedPath
			if len(args) == 1 {
				path = args[0]
			}
			result, err := a.Templates.SeedTemplates(cmd.Context(), path)
			if err != nil {
				return err
			}
			return render(cmd, result, func() string { return formatter.FormatSeedResult(result) })
		},
	}
}

func newProjectCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect portfolio projects",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.Projects.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, projects, func() string { return formatter.FormatProjectList(projects) })
		},
	})
	return cmd
}

func newTemplateCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect process templates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List process templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := a.Templates.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, templates, func() string { return formatter.FormatTemplateList(templates) })
		},
	})
	return cmd
}
