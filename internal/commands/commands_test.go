package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araichev/mustaching/internal/chart"
	"github.com/araichev/mustaching/internal/ledger"
	"github.com/araichev/mustaching/internal/summary"
)

const testLedger = "../../testdata/transactions.csv"

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestSummarizeCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.json")
	err := execute(t, "summarize", testLedger, "--freq", "MS", "--by-category", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var s map[summary.Kind][]summary.Row
	require.NoError(t, json.Unmarshal(data, &s))

	require.Len(t, s[summary.KindByPeriod], 3, "ledger spans Jan-Mar")
	assert.NotEmpty(t, s[summary.KindByCategory])
	assert.NotEmpty(t, s[summary.KindByPeriodAndCategory])

	jan := s[summary.KindByPeriod][0]
	assert.Equal(t, "1000", jan.Income.String())
	assert.Equal(t, "-500", jan.Expense.String())
}

func TestSummarizeCommand_DateFilter(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.json")
	err := execute(t, "summarize", testLedger,
		"--freq", "monthly", "--start", "2021-02-01", "--end", "2021-02-28", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var s map[summary.Kind][]summary.Row
	require.NoError(t, json.Unmarshal(data, &s))
	require.Len(t, s[summary.KindByPeriod], 1)
	assert.Equal(t, "1200", s[summary.KindByPeriod][0].Income.String())
}

func TestSummarizeCommand_OpenEndedRange(t *testing.T) {
	out := filepath.Join(t.TempDir(), "summary.json")
	err := execute(t, "summarize", testLedger, "--end", "2021-01-31", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var s map[summary.Kind][]summary.Row
	require.NoError(t, json.Unmarshal(data, &s))
	require.Len(t, s[summary.KindTotals], 1)
	total := s[summary.KindTotals][0]
	assert.Equal(t, "1000", total.Income.String())
	assert.Equal(t, "-500", total.Expense.String())
	assert.Equal(t, "2021-01-05", total.Start.Format("2006-01-02"),
		"open start defaults to the first transaction date")
}

func TestSummarizeCommand_BadFrequency(t *testing.T) {
	err := execute(t, "summarize", testLedger, "--freq", "hourly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency")
}

func TestSummarizeCommand_MissingFile(t *testing.T) {
	err := execute(t, "summarize", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestPlotCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "charts.json")
	err := execute(t, "plot", testLedger, "--freq", "MS", "--currency", "NZD", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var specs map[summary.Kind]chart.Spec
	require.NoError(t, json.Unmarshal(data, &specs))

	spec, ok := specs[summary.KindByPeriod]
	require.True(t, ok)
	assert.Equal(t, "Money (NZD)", spec.YAxisTitle)
	assert.Equal(t, []string{"2021-01-01", "2021-02-01", "2021-03-01"}, spec.XCategories)
	require.NotEmpty(t, spec.Series)
	assert.Equal(t, "Income", spec.Series[0].Name)
}

func TestSampleCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.csv")
	err := execute(t, "sample", out, "--start", "2021-01-01", "--end", "2021-01-31", "--seed", "42")
	require.NoError(t, err)

	table, err := ledger.Load(out, ledger.Options{})
	require.NoError(t, err)
	assert.Len(t, table, 61, "one transaction per 12h, endpoints inclusive")

	// Same seed, same ledger.
	out2 := filepath.Join(t.TempDir(), "sample2.csv")
	err = execute(t, "sample", out2, "--start", "2021-01-01", "--end", "2021-01-31", "--seed", "42")
	require.NoError(t, err)

	a, err := os.ReadFile(out)
	require.NoError(t, err)
	b, err := os.ReadFile(out2)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSampleCommand_RequiresDates(t *testing.T) {
	err := execute(t, "sample", filepath.Join(t.TempDir(), "out.csv"))
	require.Error(t, err)
}

func TestConfigFileOptions(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "ledger.csv")
	csv := "date,amount,category\n05/01/2021,1000,salary\n10/01/2021,-200,food\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0o644))

	cfgPath := filepath.Join(dir, "mustaching.yaml")
	cfg := "currency: EUR\ndate_format: \"02/01/2006\"\ndecimals: 2\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	out := filepath.Join(dir, "charts.json")
	err := execute(t, "plot", csvPath, "--config", cfgPath, "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var specs map[summary.Kind]chart.Spec
	require.NoError(t, json.Unmarshal(data, &specs))
	assert.Equal(t, "Money (EUR)", specs[summary.KindTotals].YAxisTitle)
}
