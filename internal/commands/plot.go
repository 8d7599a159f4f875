package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/araichev/mustaching/internal/chart"
	"github.com/araichev/mustaching/internal/ledger"
	"github.com/araichev/mustaching/internal/summary"
)

func newPlotCommand() *cobra.Command {
	var flags summarizeFlags
	var currency string
	var width, height int

	cmd := &cobra.Command{
		Use:   "plot <ledger.csv>",
		Short: "Summarize a ledger and emit chart specifications",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}

			table, err := ledger.Load(args[0], ledger.Options{DateFormat: cfg.DateFormat})
			if err != nil {
				return err
			}

			opts, err := flags.options(cmd, cfg, table)
			if err != nil {
				return err
			}

			s, err := summary.Summarize(table, opts)
			if err != nil {
				return err
			}

			chartOpts := chart.Options{
				Currency: cfg.Currency,
				Width:    cfg.Chart.Width,
				Height:   cfg.Chart.Height,
			}
			if currency != "" {
				chartOpts.Currency = currency
			}
			if width > 0 {
				chartOpts.Width = width
			}
			if height > 0 {
				chartOpts.Height = height
			}

			specs, err := chart.Render(s, chartOpts)
			if err != nil {
				return err
			}

			return writeJSON(os.Stdout, flags.output, specs)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&currency, "currency", "", "currency label for the y-axis, e.g. NZD")
	cmd.Flags().IntVar(&width, "width", 0, "chart width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "chart height in pixels")
	return cmd
}
