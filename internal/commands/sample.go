package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/araichev/mustaching/internal/ledger"
	"github.com/araichev/mustaching/internal/sample"
)

func newSampleCommand() *cobra.Command {
	var start, end string
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample <out.csv>",
		Short: "Write a sample transaction ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse(ledger.DefaultDateFormat, start)
			if err != nil {
				return fmt.Errorf("parsing start date %q: %w", start, err)
			}
			endDate, err := time.Parse(ledger.DefaultDateFormat, end)
			if err != nil {
				return fmt.Errorf("parsing end date %q: %w", end, err)
			}

			opts := sample.Options{}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			table := sample.Generate(startDate, endDate, opts)
			if err := ledger.Save(args[0], table); err != nil {
				return err
			}

			fmt.Printf("Wrote %d transactions to %s\n", len(table), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD (required)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible output")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
