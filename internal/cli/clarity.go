package cli

import (
	"fmt"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/view"
	"github.com/spf13/cobra"
)

func newClarityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "clarity [review...]",
		Short: "Summarize the clarity issue raised by a batch of reviews",
		Long: `Summarize the clarity issue raised by a batch of reviews.

Reviews are taken from the arguments, from --file when no arguments are
given, or from the built-in product page otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			batch := domain.ReviewBatch(args)
			if len(args) == 0 {
				cat, err := opts.catalog()
				if err != nil {
					return err
				}
				batch = cat.BatchReviews()
			}

			res, err := opts.client().RequestClarityAlert(cmd.Context(), batch)
			if err != nil {
				return err
			}
			if alert, ok := res.Alert(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), alert)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.LabelNoClarity)
			return nil
		},
	}
}
