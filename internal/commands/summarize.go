package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/araichev/mustaching/internal/config"
	"github.com/araichev/mustaching/internal/ledger"
	"github.com/araichev/mustaching/internal/model"
	"github.com/araichev/mustaching/internal/summary"
)

// summarizeFlags holds the flags shared by summarize and plot.
type summarizeFlags struct {
	freq       string
	byCategory bool
	start      string
	end        string
	budget     string
	budgetFreq string
	decimals   int32
	dateFormat string
	configPath string
	output     string
}

func (f *summarizeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.freq, "freq", "", "period frequency (weekly, monthly, quarterly, yearly)")
	cmd.Flags().BoolVar(&f.byCategory, "by-category", false, "also split totals by category")
	cmd.Flags().StringVar(&f.start, "start", "", "only include transactions on or after this date")
	cmd.Flags().StringVar(&f.end, "end", "", "only include transactions on or before this date")
	cmd.Flags().StringVar(&f.budget, "budget", "", "budget amount to scale onto each period")
	cmd.Flags().StringVar(&f.budgetFreq, "budget-freq", "monthly", "frequency the budget amount covers")
	cmd.Flags().Int32Var(&f.decimals, "decimals", 2, "round values to this many decimal places (-1 = exact)")
	cmd.Flags().StringVar(&f.dateFormat, "date-format", "", "Go time layout for the date column")
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to mustaching.yaml")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write JSON here instead of stdout")
}

// loadConfig merges the optional config file with flag overrides.
func (f *summarizeFlags) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.DateFormat == "" {
			cfg.DateFormat = ledger.DefaultDateFormat
		}
	}
	if f.dateFormat != "" {
		cfg.DateFormat = f.dateFormat
	}
	return cfg, nil
}

// options converts the flags to summary.Options. The config file's
// decimals setting applies unless the flag was set explicitly; an open
// range end defaults to the table's own span, as the averages are
// computed over the filter window.
func (f *summarizeFlags) options(cmd *cobra.Command, cfg *config.Config, table model.Table) (summary.Options, error) {
	freq, err := model.ParseFrequency(f.freq)
	if err != nil {
		return summary.Options{}, err
	}

	opts := summary.Options{
		Frequency:  freq,
		ByCategory: f.byCategory,
	}

	if f.start != "" || f.end != "" {
		r, err := parseRange(f.start, f.end, cfg.DateFormat, table)
		if err != nil {
			return summary.Options{}, err
		}
		opts.Range = r
	}

	if f.budget != "" {
		amount, err := decimal.NewFromString(f.budget)
		if err != nil {
			return summary.Options{}, fmt.Errorf("parsing budget %q: %w", f.budget, err)
		}
		bfreq, err := model.ParseFrequency(f.budgetFreq)
		if err != nil {
			return summary.Options{}, err
		}
		opts.Budget = &summary.Budget{Amount: amount, Frequency: bfreq}
	}

	decimals := f.decimals
	if !cmd.Flags().Changed("decimals") {
		decimals = cfg.Decimals
	}
	if decimals < 0 {
		return opts, nil
	}
	opts.Decimals = &decimals
	return opts, nil
}

// parseRange builds a DateRange, defaulting open ends to the table's
// first and last dates.
func parseRange(start, end, dateFormat string, table model.Table) (*model.DateRange, error) {
	first, last, ok := table.Span()
	if !ok {
		first = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
		last = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	}
	r := model.DateRange{Start: first, End: last}
	if start != "" {
		d, err := time.Parse(dateFormat, start)
		if err != nil {
			return nil, fmt.Errorf("parsing start date %q: %w", start, err)
		}
		r.Start = d
	}
	if end != "" {
		d, err := time.Parse(dateFormat, end)
		if err != nil {
			return nil, fmt.Errorf("parsing end date %q: %w", end, err)
		}
		r.End = d
	}
	// A single-sided filter outside the data span is an empty result,
	// not an inverted range.
	if start == "" && r.End.Before(r.Start) {
		r.Start = r.End
	}
	if end == "" && r.End.Before(r.Start) {
		r.End = r.Start
	}
	return &r, nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is empty.
func writeJSON(out *os.File, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func newSummarizeCommand() *cobra.Command {
	var flags summarizeFlags

	cmd := &cobra.Command{
		Use:   "summarize <ledger.csv>",
		Short: "Summarize a transaction ledger by period",
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

			return writeJSON(os.Stdout, flags.output, s)
		},
	}

	flags.register(cmd)
	return cmd
}
