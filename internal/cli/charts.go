package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/bcm-report/internal/charts"
	"github.com/AngelCh415/bcm-report/internal/export"
)

func newSeriesCmd(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "series <chart-id>",
		Short: "Print the data series behind a chart",
		Long: `Series builds one chart of the report catalog and prints its records.

Charts: spend-revenue-vs-projection, orders-vs-projection, spend-distribution,
plan-spend-revenue, plan-orders`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			s, err := charts.NewBuilder(ds).BuildID(args[0])
			if err != nil {
				return err
			}
			if format == "csv" {
				return export.WriteSeriesCSV(cmd.OutOrStdout(), s)
			}
			return encode(cmd.OutOrStdout(), format, s)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml | json | csv")
	return cmd
}

func newChartCmd(opts *options) *cobra.Command {
	var (
		output        string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "chart <chart-id>",
		Short: "Render a chart to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			s, err := charts.NewBuilder(ds).BuildID(args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := charts.RenderPNG(&buf, s, width, height); err != nil {
				return fmt.Errorf("rendering %s: %w", args[0], err)
			}
			if output == "" {
				output = args[0] + ".png"
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write (default: <chart-id>.png)")
	cmd.Flags().IntVar(&width, "width", charts.DefaultWidth, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", charts.DefaultHeight, "Image height in pixels")
	return cmd
}
