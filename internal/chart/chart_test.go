package chart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/araichev/mustaching/internal/model"
	"github.com/araichev/mustaching/internal/summary"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func summarize(t *testing.T, table model.Table, opts summary.Options) summary.Summary {
	t.Helper()
	s, err := summary.Summarize(table, opts)
	require.NoError(t, err)
	return s
}

func scenarioTable() model.Table {
	return model.Table{
		{Date: date(2021, 1, 5), Amount: dec("1000"), Category: "salary"},
		{Date: date(2021, 1, 10), Amount: dec("-200"), Category: "food"},
		{Date: date(2021, 2, 1), Amount: dec("-50"), Category: "food"},
	}
}

func seriesNames(s Spec) []string {
	names := make([]string, len(s.Series))
	for i, series := range s.Series {
		names[i] = series.Name
	}
	return names
}

func TestRender_ByPeriod(t *testing.T) {
	s := summarize(t, scenarioTable(), summary.Options{Frequency: model.FreqMonthly})

	specs, err := Render(s, Options{Currency: "NZD"})
	require.NoError(t, err)

	spec, ok := specs[summary.KindByPeriod]
	require.True(t, ok)

	assert.Equal(t, "Account Summary", spec.Title)
	assert.Equal(t, "Money (NZD)", spec.YAxisTitle)
	assert.Equal(t, []string{"2021-01-01", "2021-02-01"}, spec.XCategories)
	assert.Equal(t, []string{"Income", "Expense", "Net"}, seriesNames(spec))

	income := spec.Series[0]
	assert.Equal(t, "column", income.Type)
	assert.Equal(t, []float64{1000, 0}, income.Values)

	expense := spec.Series[1]
	assert.Equal(t, []float64{200, 50}, expense.Values, "expenses plot as magnitudes")

	net := spec.Series[2]
	assert.Equal(t, "line", net.Type)
	assert.Equal(t, []float64{800, -50}, net.Values)
}

func TestRender_NoCurrency(t *testing.T) {
	s := summarize(t, scenarioTable(), summary.Options{})
	specs, err := Render(s, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Money", specs[summary.KindTotals].YAxisTitle)
}

func TestRender_CurrencySymbolStaysLiteral(t *testing.T) {
	s := summarize(t, scenarioTable(), summary.Options{})
	specs, err := Render(s, Options{Currency: "$"})
	require.NoError(t, err)
	assert.Equal(t, "Money ($)", specs[summary.KindTotals].YAxisTitle,
		"the symbol is plain text, never markup")
}

func TestRender_ByCategoryStacks(t *testing.T) {
	table := model.Table{
		{Date: date(2021, 1, 3), Amount: dec("-300"), Category: "food"},
		{Date: date(2021, 1, 4), Amount: dec("-1000"), Category: "rent"},
		{Date: date(2021, 1, 5), Amount: dec("1500"), Category: "salary"},
	}
	s := summarize(t, table, summary.Options{Frequency: model.FreqMonthly, ByCategory: true})

	specs, err := Render(s, Options{})
	require.NoError(t, err)

	spec, ok := specs[summary.KindByPeriodAndCategory]
	require.True(t, ok)

	// One income series, two expense series (largest first), one net line.
	require.Len(t, spec.Series, 4)
	assert.Equal(t, "Income salary", spec.Series[0].Name)
	assert.Equal(t, "income", spec.Series[0].Stack)
	assert.Equal(t, "Expense rent", spec.Series[1].Name, "largest expense category first")
	assert.Equal(t, "Expense food", spec.Series[2].Name)
	assert.Equal(t, "Net", spec.Series[3].Name)

	assert.Equal(t, []float64{1500}, spec.Series[0].Values)
	assert.Equal(t, []float64{1000}, spec.Series[1].Values)
	assert.Equal(t, []float64{300}, spec.Series[2].Values)
	assert.Equal(t, []float64{200}, spec.Series[3].Values)

	// Percent-of-stack labels.
	assert.Equal(t, []string{"100%"}, spec.Series[0].Labels)
	assert.Equal(t, []string{"77%"}, spec.Series[1].Labels, "1000 of 1300")
	assert.Equal(t, []string{"23%"}, spec.Series[2].Labels)

	// Distinct stack colors per category.
	assert.NotEqual(t, spec.Series[1].Color, spec.Series[2].Color)
}

func TestRender_Deterministic(t *testing.T) {
	table := scenarioTable()
	opts := summary.Options{Frequency: model.FreqMonthly, ByCategory: true}

	first, err := Render(summarize(t, table, opts), Options{Currency: "EUR"})
	require.NoError(t, err)
	second, err := Render(summarize(t, table, opts), Options{Currency: "EUR"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_BudgetSeries(t *testing.T) {
	s := summarize(t, scenarioTable(), summary.Options{
		Frequency: model.FreqMonthly,
		Budget:    &summary.Budget{Amount: dec("300"), Frequency: model.FreqMonthly},
	})

	specs, err := Render(s, Options{})
	require.NoError(t, err)

	spec := specs[summary.KindByPeriod]
	assert.Equal(t, []string{"Income", "Expense", "Budget", "Net"}, seriesNames(spec))
	assert.Equal(t, []float64{300, 300}, spec.Series[2].Values)
}

func TestRender_EmptySummary(t *testing.T) {
	s := summary.Summary{summary.KindTotals: {}}
	specs, err := Render(s, Options{})
	require.NoError(t, err)

	spec := specs[summary.KindTotals]
	assert.Empty(t, spec.XCategories)
	require.Len(t, spec.Series, 3)
	assert.Empty(t, spec.Series[0].Values)
}

func TestRender_DimensionsCarried(t *testing.T) {
	s := summarize(t, scenarioTable(), summary.Options{})
	specs, err := Render(s, Options{Width: 800, Height: 400})
	require.NoError(t, err)
	assert.Equal(t, 800, specs[summary.KindTotals].Width)
	assert.Equal(t, 400, specs[summary.KindTotals].Height)
}
