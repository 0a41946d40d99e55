package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/spf13/cobra"
)

func newResourceCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage the delivery bench",
	}
	cmd.AddCommand(
		newResourceAddCmd(a),
		newResourceListCmd(a),
		newResourceUpdateCmd(a),
		newResourceRemoveCmd(a),
	)
	return cmd
}

// resourceFlags binds the editable resource fields.
type resourceFlags struct {
	req app.ResourceRequest
}

func (f *resourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.req.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&f.req.Role, "role", "", "Role on the bench")
	cmd.Flags().StringVar(&f.req.Region, "region", "", "Home region")
	cmd.Flags().StringSliceVar(&f.req.SkillTags, "skills", nil, "Skill tags (comma separated or repeated)")
	cmd.Flags().Float64Var(&f.req.UtilizationPct, "utilization", 0, "Booked time, as 0-1 or 0-100")
}

func newResourceAddCmd(a *App) *cobra.Command {
	var flags resourceFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person to the bench",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.Resources.AddResource(cmd.Context(), flags.req)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return fmt.Sprintf("%s Added %s (%s)", formatter.StyleGreen.Render("✔"), formatter.Bold(res.Name), res.ID)
			})
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("region")
	return cmd
}

func newResourceListCmd(a *App) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the bench",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resources, err := a.Resources.ListResources(cmd.Context(), region)
			if err != nil {
				return err
			}
			return render(cmd, resources, func() string { return formatter.FormatResourceList(resources) })
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Only this region")
	return cmd
}

func newResourceUpdateCmd(a *App) *cobra.Command {
	var flags resourceFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a bench entry; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := flags.req
			req.SetUtilization = cmd.Flags().Changed("utilization")
			res, err := a.Resources.UpdateResource(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return fmt.Sprintf("%s Updated %s", formatter.StyleGreen.Render("✔"), formatter.Bold(res.Name))
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func newResourceRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a bench entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Resources.RemoveResource(cmd.Context(), args[0]); err != nil {
				return err
			}
			return render(cmd, map[string]string{"removed": args[0]}, func() string {
				return fmt.Sprintf("%s Removed resource %s", formatter.StyleGreen.Render("✔"), args[0])
			})
		},
	}
}

func newGapCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gap",
		Short: "Track open questions from operations reviews",
	}
	cmd.AddCommand(
		newGapAddCmd(a),
		newGapListCmd(a),
		newGapAnswerCmd(a),
		newGapRemoveCmd(a),
	)
	return cmd
}

func newGapAddCmd(a *App) *cobra.Command {
	var req app.GapRequest
	var attachments []string
	cmd := &cobra.Command{
		Use:   "add <question>",
		Short: "Record a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Question = args[0]
			parsed, err := parseAttachments(attachments)
			if err != nil {
				return err
			}
			req.Attachments = parsed
			gap, err := a.Gaps.RecordGap(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, gap, func() string {
				return fmt.Sprintf("%s Recorded %s gap %s", formatter.StyleGreen.Render("✔"), formatter.Bold(gap.Category), gap.ID)
			})
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "Review area the question belongs to")
	cmd.Flags().StringVar(&req.Answer, "answer", "", "Answer, if already known")
	cmd.Flags().Float64Var(&req.Confidence, "confidence", 0, "Confidence in the answer (0-1)")
	cmd.Flags().StringArrayVar(&attachments, "attach", nil, "Supporting material as name=location (repeatable)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func newGapListCmd(a *App) *cobra.Command {
	var openOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gaps, err := a.Gaps.ListGaps(cmd.Context(), openOnly)
			if err != nil {
				return err
			}
			return render(cmd, gaps, func() string { return formatter.FormatGapList(gaps) })
		},
	}
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only unanswered questions")
	return cmd
}

func newGapAnswerCmd(a *App) *cobra.Command {
	var confidence float64
	cmd := &cobra.Command{
		Use:   "answer <id> <answer>",
		Short: "Answer a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gap, err := a.Gaps.AnswerGap(cmd.Context(), args[0], args[1], confidence)
			if err != nil {
				return err
			}
			return render(cmd, gap, func() string { return formatter.FormatGapList([]*domain.Gap{gap}) })
		},
	}
	cmd.Flags().Float64Var(&confidence, "confidence", 0.5, "Confidence in the answer (0-1)")
	return cmd
}

func newGapRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Gaps.RemoveGap(cmd.Context(), args[0]); err != nil {
				return err
			}
			return render(cmd, map[string]string{"removed": args[0]}, func() string {
				return fmt.Sprintf("%s Removed gap %s", formatter.StyleGreen.Render("✔"), args[0])
			})
		},
	}
}

// parseAttachments reads name=location pairs.
func parseAttachments(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, location, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --attach %q: use name=location", pair)
		}
		out[name] = strings.TrimSpace(location)
	}
	return out, nil
}

func newRiskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Manage project risks",
	}
	cmd.AddCommand(
		newRiskAddCmd(a),
		newRiskListCmd(a),
		newRiskRemoveCmd(a),
	)
	return cmd
}

func newRiskAddCmd(a *App) *cobra.Command {
	var req app.RiskRequest
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a risk to a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.ProjectID = args[0]
			risk, err := a.Risks.AddRisk(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, risk, func() string {
				return fmt.Sprintf("%s Added %s risk %s", formatter.StyleGreen.Render("✔"), formatter.Bold(risk.Category), risk.ID)
			})
		},
	}
	cmd.Flags().StringVar(&req.Category, "category", "", "Risk category")
	cmd.Flags().Float64Var(&req.Probability, "probability", 0, "Probability of occurrence (0-1)")
	cmd.Flags().Float64Var(&req.ImpactCost, "impact-cost", 0, "Cost if the risk occurs")
	cmd.Flags().Float64Var(&req.ImpactDays, "impact-days", 0, "Schedule days lost if the risk occurs")
	cmd.Flags().StringVar(&req.MitigationStatus, "mitigation", "", "open, in_progress or closed (default open)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("probability")
	return cmd
}

func newRiskListCmd(a *App) *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List risks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			risks, err := a.Risks.ListRisks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return writeJSON(cmd.OutOrStdout(), risks)
			}
			names, err := projectNames(cmd, a)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRiskList(risks, names))
			return err
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "Only this project")
	return cmd
}

func newRiskRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a risk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Risks.RemoveRisk(cmd.Context(), args[0]); err != nil {
				return err
			}
			return render(cmd, map[string]string{"removed": args[0]}, func() string {
				return fmt.Sprintf("%s Removed risk %s", formatter.StyleGreen.Render("✔"), args[0])
			})
		},
	}
}
