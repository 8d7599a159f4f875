// Package chart maps summary tables into renderable chart specifications.
// The specs are plain JSON payloads; actual drawing is left to whatever
// frontend consumes them.
package chart

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/araichev/mustaching/internal/summary"
)

// Series is one plotted data series. Values align with the chart's x-axis
// categories; Labels, when present, carry per-point annotations such as
// percent-of-stack.
type Series struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"` // "column" or "line"
	Color  string    `json:"color,omitempty"`
	Stack  string    `json:"stack,omitempty"`
	Values []float64 `json:"values"`
	Labels []string  `json:"labels,omitempty"`
}

// Spec is a renderable chart specification.
type Spec struct {
	Title       string   `json:"title"`
	YAxisTitle  string   `json:"y_axis_title"`
	Width       int      `json:"width,omitempty"`
	Height      int      `json:"height,omitempty"`
	XCategories []string `json:"x_categories"`
	Series      []Series `json:"series"`
}

// Options controls rendering.
type Options struct {
	// Currency is embedded in the y-axis title as plain text. Symbols like
	// "$" must stay literal; downstream renderers must not reinterpret
	// them as markup.
	Currency string
	Width    int
	Height   int
}

const dateFormat = "2006-01-02"

// Render maps each summary table to a chart spec. Identical input and
// options produce identical specs.
func Render(s summary.Summary, opts Options) (map[summary.Kind]Spec, error) {
	specs := make(map[summary.Kind]Spec, len(s))
	for _, kind := range summary.Kinds() {
		rows, ok := s[kind]
		if !ok {
			continue
		}
		var (
			spec Spec
			err  error
		)
		switch kind {
		case summary.KindTotals, summary.KindByPeriod:
			spec, err = renderTotals(rows, opts)
		case summary.KindByCategory, summary.KindByPeriodAndCategory:
			spec, err = renderByCategory(rows, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", kind, err)
		}
		specs[kind] = spec
	}
	return specs, nil
}

func newSpec(rows []summary.Row, opts Options) Spec {
	yTitle := "Money"
	if opts.Currency != "" {
		yTitle = fmt.Sprintf("Money (%s)", opts.Currency)
	}
	return Spec{
		Title:       "Account Summary",
		YAxisTitle:  yTitle,
		Width:       opts.Width,
		Height:      opts.Height,
		XCategories: periodLabels(rows),
		Series:      []Series{},
	}
}

// periodLabels returns the sorted distinct period start dates.
func periodLabels(rows []summary.Row) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, row := range rows {
		l := row.Start.Format(dateFormat)
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	sort.Strings(labels)
	return labels
}

// renderTotals plots one series per measure: income and expense columns,
// a net line, and a budget column when the summary carries one.
func renderTotals(rows []summary.Row, opts Options) (Spec, error) {
	spec := newSpec(rows, opts)

	income := make([]float64, len(rows))
	expense := make([]float64, len(rows))
	net := make([]float64, len(rows))
	budget := make([]float64, len(rows))
	hasBudget := false
	for i, row := range rows {
		income[i] = row.Income.InexactFloat64()
		expense[i] = row.Expense.Neg().InexactFloat64()
		net[i] = row.Net.InexactFloat64()
		if row.PeriodBudget.Valid {
			hasBudget = true
			budget[i] = row.PeriodBudget.Decimal.InexactFloat64()
		}
	}

	for _, m := range []struct {
		measure string
		name    string
		typ     string
		values  []float64
		keep    bool
	}{
		{measureIncome, "Income", "column", income, true},
		{measureExpense, "Expense", "column", expense, true},
		{measureBudget, "Budget", "column", budget, hasBudget},
		{measureNet, "Net", "line", net, true},
	} {
		if !m.keep {
			continue
		}
		colors, err := Colors(m.measure, 1)
		if err != nil {
			return Spec{}, err
		}
		spec.Series = append(spec.Series, Series{
			Name:   m.name,
			Type:   m.typ,
			Color:  colors[0],
			Values: m.values,
		})
	}
	return spec, nil
}

// renderByCategory splits income and expense into stacked columns, one
// series per category, largest total first, with percent-of-stack labels.
func renderByCategory(rows []summary.Row, opts Options) (Spec, error) {
	spec := newSpec(rows, opts)

	// Period totals per measure, for the percent labels.
	periodIncome := make(map[string]decimal.Decimal)
	periodExpense := make(map[string]decimal.Decimal)
	for _, row := range rows {
		l := row.Start.Format(dateFormat)
		periodIncome[l] = periodIncome[l].Add(row.Income)
		periodExpense[l] = periodExpense[l].Add(row.Expense.Neg())
	}

	incomeSeries, err := stackSeries(rows, spec.XCategories, measureIncome, periodIncome,
		func(r summary.Row) decimal.Decimal { return r.Income })
	if err != nil {
		return Spec{}, err
	}
	expenseSeries, err := stackSeries(rows, spec.XCategories, measureExpense, periodExpense,
		func(r summary.Row) decimal.Decimal { return r.Expense.Neg() })
	if err != nil {
		return Spec{}, err
	}
	spec.Series = append(spec.Series, incomeSeries...)
	spec.Series = append(spec.Series, expenseSeries...)

	// Net per period, as a line over both stacks.
	netColors, err := Colors(measureNet, 1)
	if err != nil {
		return Spec{}, err
	}
	net := make([]float64, len(spec.XCategories))
	for i, l := range spec.XCategories {
		net[i] = periodIncome[l].Sub(periodExpense[l]).InexactFloat64()
	}
	spec.Series = append(spec.Series, Series{
		Name:   "Net",
		Type:   "line",
		Color:  netColors[0],
		Values: net,
	})
	return spec, nil
}

// stackSeries builds one stacked column series per category that has any
// activity for the measure, ordered by descending category total.
func stackSeries(rows []summary.Row, xCategories []string, measure string,
	periodTotals map[string]decimal.Decimal, value func(summary.Row) decimal.Decimal,
) ([]Series, error) {
	xIndex := make(map[string]int, len(xCategories))
	for i, l := range xCategories {
		xIndex[l] = i
	}

	totals := make(map[string]decimal.Decimal)
	var categories []string
	for _, row := range rows {
		v := value(row)
		if !v.IsPositive() {
			continue
		}
		if _, seen := totals[row.Category]; !seen {
			categories = append(categories, row.Category)
		}
		totals[row.Category] = totals[row.Category].Add(v)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		ti, tj := totals[categories[i]], totals[categories[j]]
		if !ti.Equal(tj) {
			return ti.GreaterThan(tj)
		}
		return categories[i] < categories[j]
	})

	colors, err := Colors(measure, len(categories))
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]summary.Row)
	for _, row := range rows {
		byCategory[row.Category] = append(byCategory[row.Category], row)
	}

	series := make([]Series, 0, len(categories))
	for i, category := range categories {
		values := make([]float64, len(xCategories))
		labels := make([]string, len(xCategories))
		for _, row := range byCategory[category] {
			x := xIndex[row.Start.Format(dateFormat)]
			v := value(row)
			values[x] = v.InexactFloat64()
			labels[x] = pctLabel(v, periodTotals[row.Start.Format(dateFormat)])
		}
		name := fmt.Sprintf("%s %s", titleCase(measure), category)
		series = append(series, Series{
			Name:   name,
			Type:   "column",
			Color:  colors[i],
			Stack:  measure,
			Values: values,
			Labels: labels,
		})
	}
	return series, nil
}

// pctLabel formats value as a whole percentage of total, "" when total is
// zero or the value absent.
func pctLabel(value, total decimal.Decimal) string {
	if total.IsZero() || value.IsZero() {
		return ""
	}
	p := value.Mul(decimal.NewFromInt(100)).Div(total).Round(0)
	return p.String() + "%"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
