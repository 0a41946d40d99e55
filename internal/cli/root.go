package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Analytics service.AnalyticsService
	Brief     service.BriefService
	Feedback  service.FeedbackService
	Decisions service.DecisionService
	Import    service.ImportService
	Templates service.TemplateService
	Projects  service.ProjectService
	Resources service.ResourceService
	Gaps      service.GapService
	Risks     service.RiskService

	// ScenarioDefaults seed the scenario flags; zero means the simulator defaults.
	ScenarioDefaults analytics.ScenarioParams
	// TemplateSeedPath is used by seed-templates when no file argument is given.
	TemplateSeedPath string

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pdsops" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pdsops",
		Short:         "Portfolio analytics and decision support",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Print machine-readable JSON instead of tables")

	root.AddCommand(
		newKPIsCmd(app),
		newRankCmd(app),
		newScenarioCmd(app),
		newRecommendCmd(app),
		newBriefCmd(app),
		newReviewCmd(app),
		newImportCmd(app),
		newSeedTemplatesCmd(app),
		newFeedbackCmd(app),
		newDecisionCmd(app),
		newProjectCmd(app),
		newTemplateCmd(app),
		newResourceCmd(app),
		newGapCmd(app),
		newRiskCmd(app),
	)

	return root
}

// parseAsOf parses an optional YYYY-MM-DD flag value as a UTC date.
func parseAsOf(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --as-of %q: use YYYY-MM-DD", value)
	}
	return &t, nil
}

func jsonOutput(cmd *cobra.Command) bool {
	on, _ := cmd.Flags().GetBool("json")
	return on
}

// render writes v as indented JSON when --json is set, else the text
// produced by pretty.
func render(cmd *cobra.Command, v any, pretty func() string) error {
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return writeJSON(out, v)
	}
	_, err := fmt.Fprintln(out, pretty())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
