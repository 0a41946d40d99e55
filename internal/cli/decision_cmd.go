package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/pdsops/internal/app"
	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	"github.com/alexanderramin/pdsops/internal/domain"
	"github.com/spf13/cobra"
)

func newFeedbackCmd(a *App) *cobra.Command {
	var success, failure bool
	cmd := &cobra.Command{
		Use:   "feedback <rule-key>",
		Short: "Record whether a rule's recommendation worked out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := a.Feedback.RecordFeedback(cmd.Context(), app.FeedbackRequest{
				RuleKey:       args[0],
				WasSuccessful: success,
			})
			if err != nil {
				return err
			}
			return render(cmd, row, func() string { return formatter.FormatFeedbackUpdate(row) })
		},
	}
	cmd.Flags().BoolVar(&success, "success", false, "The recommendation worked")
	cmd.Flags().BoolVar(&failure, "failure", false, "The recommendation did not work")
	cmd.MarkFlagsMutuallyExclusive("success", "failure")
	cmd.MarkFlagsOneRequired("success", "failure")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show every rule's learned confidence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := a.Feedback.ListFeedback(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, rows, func() string { return formatter.FormatFeedback(rows) })
		},
	})
	return cmd
}

func newDecisionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decision",
		Short: "Track decisions taken on recommendations",
	}

	cmd.AddCommand(
		newDecisionListCmd(a),
		newDecisionAcceptCmd(a),
		newDecisionExecuteCmd(a),
		newDecisionOutcomeCmd(a),
		newDecisionFeedbackCmd(a),
	)
	return cmd
}

func newDecisionListCmd(a *App) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *domain.DecisionStatus
			if status != "" {
				s, err := parseDecisionStatus(status)
				if err != nil {
					return err
				}
				filter = &s
			}
			decisions, err := a.Decisions.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render(cmd, decisions, func() string { return formatter.FormatDecisionList(decisions) })
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (proposed, executed, rejected)")
	return cmd
}

func parseDecisionStatus(s string) (domain.DecisionStatus, error) {
	switch st := domain.DecisionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case domain.DecisionProposed, domain.DecisionExecuted, domain.DecisionRejected:
		return st, nil
	default:
		return "", fmt.Errorf("invalid status %q: use proposed, executed or rejected", s)
	}
}

func newDecisionAcceptCmd(a *App) *cobra.Command {
	var req app.AcceptRequest
	var asOf string
	cmd := &cobra.Command{
		Use:   "accept <rule-key>",
		Short: "Turn a current recommendation into a proposed decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := parseAsOf(asOf)
			if err != nil {
				return err
			}
			req.RuleKey = args[0]
			req.AsOf = at
			d, err := a.Decisions.Accept(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, d, func() string { return formatter.FormatDecision(d) })
		},
	}
	cmd.Flags().StringVar(&req.ProjectID, "project", "", "Project the rule fired for, when it fired for several")
	cmd.Flags().StringVar(&req.Owner, "owner", "", "Decision owner")
	cmd.Flags().StringVar(&req.Rationale, "rationale", "", "Rationale (default: the recommendation's explanation)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Evaluation date (YYYY-MM-DD, default today UTC)")
	return cmd
}

func newDecisionExecuteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "execute <decision-id>",
		Short: "Mark a proposed decision as executed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.Decisions.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, d, func() string { return formatter.FormatDecision(d) })
		},
	}
}

func newDecisionOutcomeCmd(a *App) *cobra.Command {
	var before, after map[string]string
	var notes, measured string
	cmd := &cobra.Command{
		Use:   "outcome <decision-id>",
		Short: "Record measured KPIs before and after a decision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kpiBefore, err := parseKPIMap("before", before)
			if err != nil {
				return err
			}
			kpiAfter, err := parseKPIMap("after", after)
			if err != nil {
				return err
			}
			at, err := parseAsOf(measured)
			if err != nil {
				return err
			}
			o, err := a.Decisions.RecordOutcome(cmd.Context(), app.OutcomeRequest{
				DecisionID: args[0],
				MeasuredAt: at,
				KPIBefore:  kpiBefore,
				KPIAfter:   kpiAfter,
				Notes:      notes,
			})
			if err != nil {
				return err
			}
			return render(cmd, o, func() string { return formatter.FormatOutcome(o) })
		},
	}
	cmd.Flags().StringToStringVar(&before, "before", nil, "KPI values before, e.g. spi=0.82,cpi=0.95")
	cmd.Flags().StringToStringVar(&after, "after", nil, "KPI values after, e.g. spi=0.97")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&measured, "measured-at", "", "Measurement date (YYYY-MM-DD, default now)")
	return cmd
}

// parseKPIMap converts key=value flag pairs into numbers. Keys are
// lower-cased; errors are reported in key order.
func parseKPIMap(flag string, raw map[string]string) (map[string]float64, error) {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]float64, len(raw))
	for _, k := range keys {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw[k]), 64)
		if err != nil {
			return nil, fmt.Errorf("--%s %s=%q: not a number", flag, k, raw[k])
		}
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out, nil
}

var errOutcomeRequired = errors.New("specify --success or --failure")

func newDecisionFeedbackCmd(a *App) *cobra.Command {
	var success, failure bool
	cmd := &cobra.Command{
		Use:   "feedback <decision-id>",
		Short: "Credit a decision's outcome to the rule that proposed it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wasSuccessful, err := resolveOutcome(cmd, a, args[0], success, failure)
			if err != nil {
				return err
			}
			row, err := a.Decisions.RecordDecisionFeedback(cmd.Context(), args[0], wasSuccessful)
			if err != nil {
				return err
			}
			return render(cmd, row, func() string { return formatter.FormatFeedbackUpdate(row) })
		},
	}
	cmd.Flags().BoolVar(&success, "success", false, "The decision worked")
	cmd.Flags().BoolVar(&failure, "failure", false, "The decision did not work")
	cmd.MarkFlagsMutuallyExclusive("success", "failure")
	return cmd
}

// resolveOutcome returns the outcome from flags, or asks on a terminal when
// neither flag was given.
func resolveOutcome(cmd *cobra.Command, a *App, decisionID string, success, failure bool) (bool, error) {
	switch {
	case success:
		return true, nil
	case failure:
		return false, nil
	case !a.interactive():
		return false, errOutcomeRequired
	}

	answer := true
	form := confirmForm(
		"Did the decision succeed?",
		"Decision "+decisionID+". Yes raises the rule's confidence, No lowers it.",
		&answer,
	)
	if err := form.RunWithContext(cmd.Context()); err != nil {
		return false, fmt.Errorf("confirming outcome: %w", err)
	}
	return answer, nil
}
