package cli

import (
	"errors"
	"fmt"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/view"
	"github.com/spf13/cobra"
)

func newAuthenticityCmd(opts *options) *cobra.Command {
	var exampleID string

	cmd := &cobra.Command{
		Use:   "authenticity [review]",
		Short: "Estimate how likely a single review is genuine",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var review domain.SingleReview
			switch {
			case exampleID != "" && len(args) > 0:
				return errors.New("pass either a review or --example, not both")
			case exampleID != "":
				cat, err := opts.catalog()
				if err != nil {
					return err
				}
				ex, ok := cat.ExampleByID(exampleID)
				if !ok {
					return fmt.Errorf("unknown example %q", exampleID)
				}
				review = domain.SingleReview(ex.Text)
			case len(args) == 1:
				review = domain.SingleReview(args[0])
			}

			res, err := opts.client().RequestAuthenticityAnalysis(cmd.Context(), review)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Authenticity: %s (%s)\n", view.Percent(res.Score), view.Band(res.Score))
			if res.Reasoning != "" {
				fmt.Fprintf(out, "Reasoning: %s\n", res.Reasoning)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&exampleID, "example", "e", "", "analyze a catalog example by id")
	return cmd
}
