package cli

import (
	"github.com/spf13/cobra"

	"github.com/AngelCh415/bcm-report/internal/models"
	"github.com/AngelCh415/bcm-report/internal/view"
)

type renderedTab struct {
	Tab     models.Tab   `json:"tab" yaml:"tab"`
	Label   string       `json:"label" yaml:"label"`
	Section view.Section `json:"section" yaml:"section"`
}

func newRenderCmd(opts *options) *cobra.Command {
	var (
		tabs   []string
		format string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render report tabs as structured data",
		Long: `Render builds the sections behind the report tabs. Repeat --tab to pick
several, in order; without it every tab is rendered.

Tabs: overview, platforms, insights, next-period-plan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := models.Tabs()
			if len(tabs) > 0 {
				selected = nil
				for _, raw := range tabs {
					t, err := models.ParseTab(raw)
					if err != nil {
						return err
					}
					selected = append(selected, t)
				}
			}

			ds, err := opts.load(cmd)
			if err != nil {
				return err
			}
			v := view.New(ds)
			out := make([]renderedTab, 0, len(selected))
			for _, t := range selected {
				if err := v.Select(t); err != nil {
					return err
				}
				sec, err := v.Render()
				if err != nil {
					return err
				}
				out = append(out, renderedTab{Tab: v.Tab(), Label: v.TabLabel(v.Tab()), Section: sec})
			}
			return encode(cmd.OutOrStdout(), format, out)
		},
	}
	cmd.Flags().StringArrayVar(&tabs, "tab", nil, "Tab to render (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml | json")
	return cmd
}
