package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/pdsops/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var errReviewNeedsTerminal = errors.New("review needs an interactive terminal; use 'pdsops recommend' and 'pdsops decision accept' instead")

func newReviewCmd(a *App) *cobra.Command {
	var flags analyticsFlags
	var owner string
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Step through current recommendations and accept or dismiss each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.interactive() {
				return errReviewNeedsTerminal
			}
			req, err := flags.request()
			if err != nil {
				return err
			}
			resp, err := a.Analytics.Recommendations(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(resp.Recommendations) == 0 {
				_, err = fmt.Fprintln(out, formatter.FormatRecommendations(resp, nil))
				return err
			}
			names, err := projectNames(cmd, a)
			if err != nil {
				return err
			}

			model := newReviewModel(cmd.Context(), a, owner, resp.Recommendations, names)
			final, err := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(out),
			).Run()
			if err != nil {
				return fmt.Errorf("running review: %w", err)
			}
			_, err = fmt.Fprint(out, final.(*reviewModel).Summary())
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&owner, "owner", "", "Owner recorded on accepted decisions")
	return cmd
}
