package cli

import (
	"fmt"

	"github.com/alexanderramin/pdsops/internal/analytics"
	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// analyticsFlags are the scope flags shared by the read-only analytics commands.
type analyticsFlags struct {
	asOf     string
	projects []string
}

func (f *analyticsFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "Evaluation date (YYYY-MM-DD, default today UTC)")
	cmd.Flags().StringSliceVar(&f.projects, "project", nil, "Restrict to project IDs (repeatable)")
}

func (f *analyticsFlags) request() (app.AnalyticsRequest, error) {
	asOf, err := parseAsOf(f.asOf)
	if err != nil {
		return app.AnalyticsRequest{}, err
	}
	return app.AnalyticsRequest{AsOf: asOf, ProjectIDs: f.projects}, nil
}

func newKPIsCmd(a *App) *cobra.Command {
	var flags analyticsFlags
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Earned-value KPIs per project with portfolio totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			resp, err := a.Analytics.KPIs(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, resp, func() string { return formatter.FormatKPIs(resp) })
		},
	}
	flags.register(cmd)
	return cmd
}

func newRankCmd(a *App) *cobra.Command {
	var flags analyticsFlags
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank projects by attention score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			resp, err := a.Analytics.Ranking(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, resp, func() string { return formatter.FormatRanking(resp) })
		},
	}
	flags.register(cmd)
	return cmd
}

// scenarioFlags binds Monte Carlo parameters to a flag set.
type scenarioFlags struct {
	params analytics.ScenarioParams
	seed   int64
}

// addScenarioFlags registers the scenario parameters on fs with defaults
// taken from defaults, falling back to the simulator's own.
func addScenarioFlags(fs *pflag.FlagSet, defaults analytics.ScenarioParams) *scenarioFlags {
	base := analytics.DefaultScenarioParams()
	if defaults.Iterations > 0 {
		base = defaults
	}
	f := &scenarioFlags{}
	f.params.MaxIterations = base.MaxIterations
	fs.IntVar(&f.params.Iterations, "iterations", base.Iterations, "Monte Carlo iterations")
	fs.Float64Var(&f.params.InflationFactor, "inflation", base.InflationFactor, "Multiplier on realized cost impact")
	fs.Float64Var(&f.params.StaffingCapacityFactor, "staffing", base.StaffingCapacityFactor, "Divisor on realized schedule impact")
	fs.Float64Var(&f.params.RiskMitigationEffectiveness, "mitigation", base.RiskMitigationEffectiveness, "Multiplier on risk probabilities")
	var seedDefault int64
	if base.Seed != nil {
		seedDefault = *base.Seed
		f.params.Seed = &f.seed
	}
	fs.Int64Var(&f.seed, "seed", seedDefault, "Seed for reproducible draws")
	return f
}

// resolve returns the parsed parameters. The seed applies when the flag was
// set or a default seed was configured.
func (f *scenarioFlags) resolve(fs *pflag.FlagSet) analytics.ScenarioParams {
	p := f.params
	if fs.Changed("seed") {
		p.Seed = &f.seed
	}
	return p
}

func newScenarioCmd(a *App) *cobra.Command {
	var projectID string
	var fromBench bool
	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Run a Monte Carlo cost and schedule scenario",
		Args:  cobra.NoArgs,
	}
	flags := addScenarioFlags(cmd.Flags(), a.ScenarioDefaults)
	cmd.Flags().StringVar(&projectID, "project", "", "Project ID (default: every project)")
	cmd.Flags().BoolVar(&fromBench, "staffing-from-resources", false, "Derive --staffing from resource utilization")
	cmd.MarkFlagsMutuallyExclusive("staffing", "staffing-from-resources")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		req := app.ScenarioRequest{ProjectID: projectID, Params: flags.resolve(cmd.Flags())}
		if fromBench {
			staffing, err := benchStaffing(cmd, a, projectID)
			if err != nil {
				return err
			}
			req.Params.StaffingCapacityFactor = staffing.Factor
			if !jsonOutput(cmd) {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.FormatStaffing(staffing))
			}
		}

		var stop func()
		if !jsonOutput(cmd) && a.interactive() {
			stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Simulating...")
		}
		resp, err := a.Analytics.Scenario(cmd.Context(), req)
		if stop != nil {
			stop()
		}
		if err != nil {
			return err
		}
		return render(cmd, resp, func() string { return formatter.FormatScenario(resp) })
	}
	return cmd
}

func newRecommendCmd(a *App) *cobra.Command {
	var flags analyticsFlags
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Evaluate recommendation rules against the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			resp, err := a.Analytics.Recommendations(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			names, err := projectNames(cmd, a)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecommendations(resp, names))
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

func newBriefCmd(a *App) *cobra.Command {
	var flags analyticsFlags
	var markdown bool
	cmd := &cobra.Command{
		Use:   "brief",
		Short: "Generate the executive brief",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request()
			if err != nil {
				return err
			}
			resp, err := a.Brief.Brief(cmd.Context(), req)
			if err != nil {
				return err
			}
			if markdown && !jsonOutput(cmd) {
				_, err = fmt.Fprint(cmd.OutOrStdout(), resp.Markdown)
				return err
			}
			return render(cmd, resp, func() string { return formatter.FormatBrief(resp) })
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Print only the raw markdown body")
	return cmd
}

// benchStaffing derives the staffing factor from the bench in the region of
// projectID, or the whole bench when projectID is empty.
func benchStaffing(cmd *cobra.Command, a *App, projectID string) (*app.StaffingResult, error) {
	var region string
	if projectID != "" {
		projects, err := a.Projects.ListProjects(cmd.Context())
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			if p.ID == projectID {
				region = p.Region
				break
			}
		}
	}
	return a.Resources.StaffingCapacity(cmd.Context(), region)
}

// projectNames maps project IDs to names for display.
func projectNames(cmd *cobra.Command, a *App) (map[string]string, error) {
	projects, err := a.Projects.ListProjects(cmd.Context())
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
