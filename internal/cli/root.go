// Package cli implements the aura command line front end.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Gappu824/aura-ai-hackathon/internal/config"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/internal/reviews"
	"github.com/Gappu824/aura-ai-hackathon/pkg/analysis"
	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	apiURL   string
	file     string
	selector string
	verbose  bool

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd builds the aura command tree writing results to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "aura",
		Short: "Ask the review analysis backend about product reviews",
		Long: `Ask the review analysis backend about product reviews.

The backend address comes from AURA_API_URL (NEXT_PUBLIC_API_URL and
BACKEND_API_URL are accepted as fallbacks) or --api-url.

Examples:
  aura clarity "Runs small." "Order a size up."
  aura clarity --file reviews.html --selector ".review .body"
  aura authenticity "Wore it daily for a month, seams held up."
  aura authenticity --example fake`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "analysis backend base URL (overrides AURA_API_URL)")
	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "reviews catalog (YAML, JSON or HTML)")
	root.PersistentFlags().StringVar(&opts.selector, "selector", "", "CSS selector for review texts in HTML files")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write debug logs to stdout")

	root.AddCommand(newClarityCmd(opts), newAuthenticityCmd(opts))
	return root
}

func (o *options) load() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if u := strings.TrimSpace(o.apiURL); u != "" {
		cfg.APIURL = u
	}
	if s := strings.TrimSpace(o.selector); s != "" {
		cfg.ReviewsSelector = s
	}
	if f := strings.TrimSpace(o.file); f != "" {
		cfg.ReviewsFile = f
	}
	o.cfg = cfg

	o.log = logger.NopLogger{}
	if o.verbose {
		cfg.LogLevel = "debug"
		log, err := logger.Init(cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		o.log = log
	}
	return nil
}

func (o *options) client() *analysis.Client {
	return analysis.New(o.cfg.APIURL,
		analysis.WithLogger(o.log),
		analysis.WithTimeout(o.cfg.RequestTimeout),
	)
}

func (o *options) catalog() (reviews.Catalog, error) {
	return reviews.LoadOrDefault(o.cfg.ReviewsFile, reviews.Options{Selector: o.cfg.ReviewsSelector})
}
