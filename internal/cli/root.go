// Package cli implements the reportctl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AngelCh415/bcm-report/internal/ingest"
	"github.com/AngelCh415/bcm-report/internal/store"
	"github.com/AngelCh415/bcm-report/internal/utils"
)

type options struct {
	dataset string
	verbose bool
}

// NewRootCmd builds a fresh command tree; nothing is shared between calls.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Inspect and render the monthly ad-performance report",
		Long: `reportctl loads a report dataset, checks that it reconciles, and renders
its tabs, chart series and chart images without running the server.

The dataset is a YAML file or an http(s) URL. Without --dataset the
embedded report is used.

Examples:
  reportctl validate --dataset report.yaml
  reportctl render --tab overview --tab platforms --format yaml
  reportctl series spend-distribution --format csv
  reportctl chart plan-orders -o plan-orders.png`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataset, "dataset", os.Getenv("REPORT_DATASET"), "Dataset path or URL (default: embedded report)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log fetch attempts and warnings to stderr")

	root.AddCommand(
		newValidateCmd(opts),
		newRenderCmd(opts),
		newSeriesCmd(opts),
		newChartCmd(opts),
	)
	return root
}

// Execute runs reportctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	lvl := slog.LevelError
	if o.verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}

func (o *options) load(cmd *cobra.Command) (*store.Dataset, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loader := ingest.NewLoader(
		ingest.NewHTTPClient(10*time.Second),
		utils.NewBackoff(200*time.Millisecond, 3),
		o.logger(cmd),
	)
	return loader.Load(ctx, o.dataset)
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unsupported format %q (use yaml or json)", format)
}
