// Package summary buckets a transaction table into calendar periods and
// computes aggregate statistics per period and per category.
package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/araichev/mustaching/internal/model"
)

// Kind names one of the summary tables produced by Summarize.
type Kind string

const (
	KindTotals              Kind = "totals"
	KindByPeriod            Kind = "by_period"
	KindByCategory          Kind = "by_category"
	KindByPeriodAndCategory Kind = "by_period_and_category"
)

// Kinds returns all kinds in their fixed display order.
func Kinds() []Kind {
	return []Kind{KindTotals, KindByPeriod, KindByCategory, KindByPeriodAndCategory}
}

// Row is one line of a summary table. Income is the sum of positive
// amounts, Expense the sum of negative amounts (kept negative), and
// Net = Income + Expense. Fields that are meaningless for a given kind
// (or whose denominator is zero) are invalid NullDecimals.
type Row struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"` // inclusive
	Category string    `json:"category,omitempty"`

	Income      decimal.Decimal     `json:"income"`
	Expense     decimal.Decimal     `json:"expense"`
	Net         decimal.Decimal     `json:"net"`
	SavingsRate decimal.NullDecimal `json:"savings_rate"`

	CumulativeIncome      decimal.NullDecimal `json:"cumulative_income,omitzero"`
	CumulativeNet         decimal.NullDecimal `json:"cumulative_net,omitzero"`
	CumulativeSavingsRate decimal.NullDecimal `json:"cumulative_savings_rate,omitzero"`

	DailyAvgNet  decimal.NullDecimal `json:"daily_avg_net,omitzero"`
	WeeklyAvgNet decimal.NullDecimal `json:"weekly_avg_net,omitzero"`

	PctOfTotalIncome   decimal.NullDecimal `json:"pct_of_total_income,omitzero"`
	PctOfTotalExpense  decimal.NullDecimal `json:"pct_of_total_expense,omitzero"`
	PctOfPeriodIncome  decimal.NullDecimal `json:"pct_of_period_income,omitzero"`
	PctOfPeriodExpense decimal.NullDecimal `json:"pct_of_period_expense,omitzero"`

	PeriodBudget decimal.NullDecimal `json:"period_budget,omitzero"`
}

// Budget scales a recurring budget amount onto each summary period by
// actual day counts.
type Budget struct {
	Amount    decimal.Decimal
	Frequency model.Frequency
}

// Options controls Summarize.
type Options struct {
	Frequency  model.Frequency  // zero value = one whole-range bucket
	ByCategory bool             // also produce the category tables
	Range      *model.DateRange // inclusive date filter
	Budget     *Budget          // optional period budget column
	Decimals   *int32           // round all values; nil = exact
}

// Summary maps a kind to its rows.
type Summary map[Kind][]Row

// Summarize filters table to the optional date range, buckets it by the
// requested frequency, and returns the aggregate tables. The input table
// is never mutated. A filter that matches nothing yields empty tables,
// not an error.
func Summarize(table model.Table, opts Options) (Summary, error) {
	if !validFrequency(opts.Frequency) {
		return nil, &RangeError{Reason: "unrecognized frequency " + string(opts.Frequency)}
	}
	if opts.Budget != nil && !validFrequency(opts.Budget.Frequency) {
		return nil, &RangeError{Reason: "unrecognized budget frequency " + string(opts.Budget.Frequency)}
	}
	if opts.Budget != nil && opts.Budget.Frequency == model.FreqNone {
		return nil, &RangeError{Reason: "budget requires a frequency"}
	}
	if opts.Range != nil && opts.Range.Start.After(opts.Range.End) {
		return nil, &RangeError{Start: opts.Range.Start, End: opts.Range.End, Reason: "start after end"}
	}

	// Date filter first. The category set is derived from the filtered
	// rows below, so categories active only outside the range never
	// appear in output.
	f := filter(table, opts.Range)

	s := Summary{KindTotals: []Row{}}
	if opts.Frequency != model.FreqNone {
		s[KindByPeriod] = []Row{}
	}
	if opts.ByCategory {
		s[KindByCategory] = []Row{}
		if opts.Frequency != model.FreqNone {
			s[KindByPeriodAndCategory] = []Row{}
		}
	}
	if len(f) == 0 {
		return s, nil
	}

	spanStart, spanEnd, _ := f.Span()
	if opts.Range != nil {
		spanStart, spanEnd = opts.Range.Start, opts.Range.End
	}

	total := totalsRow(f, spanStart, spanEnd, opts)
	s[KindTotals] = []Row{total}

	var periods []Row
	if opts.Frequency != model.FreqNone {
		periods = periodRows(f, opts)
		s[KindByPeriod] = periods
	}

	if opts.ByCategory {
		s[KindByCategory] = categoryRows(f, total, spanStart, spanEnd)
		if opts.Frequency != model.FreqNone {
			s[KindByPeriodAndCategory] = periodCategoryRows(f, periods, opts.Frequency)
		}
	}

	if opts.Decimals != nil {
		for kind, rows := range s {
			for i := range rows {
				roundRow(&rows[i], *opts.Decimals)
			}
			s[kind] = rows
		}
	}
	return s, nil
}

func validFrequency(f model.Frequency) bool {
	switch f {
	case model.FreqNone, model.FreqWeekly, model.FreqMonthly, model.FreqQuarterly, model.FreqYearly:
		return true
	}
	return false
}

func filter(table model.Table, r *model.DateRange) model.Table {
	if r == nil {
		return table.Clone()
	}
	var out model.Table
	for _, txn := range table {
		if r.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out
}

// accumulate sums a set of transactions into income, expense, net.
func accumulate(txns model.Table) (income, expense, net decimal.Decimal) {
	for _, txn := range txns {
		if txn.Amount.IsPositive() {
			income = income.Add(txn.Amount)
		} else {
			expense = expense.Add(txn.Amount)
		}
	}
	return income, expense, income.Add(expense)
}

// rate returns num/den as a NullDecimal, invalid when den is zero.
func rate(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Div(den), Valid: true}
}

// pct returns 100*num/den as a NullDecimal, invalid when den is zero.
func pct(num, den decimal.Decimal) decimal.NullDecimal {
	if den.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: num.Mul(decimal.NewFromInt(100)).Div(den), Valid: true}
}

func spanDays(start, end time.Time) int64 {
	return int64(end.Sub(start).Hours()/24) + 1
}

func totalsRow(f model.Table, spanStart, spanEnd time.Time, opts Options) Row {
	income, expense, net := accumulate(f)
	row := Row{
		Start:       spanStart,
		End:         spanEnd,
		Income:      income,
		Expense:     expense,
		Net:         net,
		SavingsRate: rate(net, income),
	}

	if opts.Frequency == model.FreqNone {
		days := decimal.NewFromInt(spanDays(spanStart, spanEnd))
		row.DailyAvgNet = rate(net, days)
		row.WeeklyAvgNet = rate(net.Mul(decimal.NewFromInt(7)), days)
	}

	if opts.Budget != nil {
		row.PeriodBudget = scaleBudget(*opts.Budget, spanStart, spanDays(spanStart, spanEnd))
	}
	return row
}

// scaleBudget scales the budget amount to a period of days days starting at
// start, using the actual length of the budget period anchored there.
func scaleBudget(b Budget, start time.Time, days int64) decimal.NullDecimal {
	budgetDays := int64(b.Frequency.Days(b.Frequency.PeriodStart(start)))
	if budgetDays == 0 {
		return decimal.NullDecimal{}
	}
	scaled := b.Amount.Mul(decimal.NewFromInt(days)).Div(decimal.NewFromInt(budgetDays))
	return decimal.NullDecimal{Decimal: scaled, Valid: true}
}

// periodRows produces one row per calendar period from the first to the
// last filtered date, zero-filling periods with no activity so chart
// x-axes stay contiguous.
func periodRows(f model.Table, opts Options) []Row {
	freq := opts.Frequency
	byStart := groupByPeriod(f, freq)

	first, last, _ := f.Span()
	var rows []Row
	cumIncome, cumNet := decimal.Zero, decimal.Zero
	for start := freq.PeriodStart(first); !start.After(last); start = freq.Next(start) {
		income, expense, net := accumulate(byStart[start])
		cumIncome = cumIncome.Add(income)
		cumNet = cumNet.Add(net)

		row := Row{
			Start:                 start,
			End:                   freq.Next(start).AddDate(0, 0, -1),
			Income:                income,
			Expense:               expense,
			Net:                   net,
			SavingsRate:           rate(net, income),
			CumulativeIncome:      decimal.NullDecimal{Decimal: cumIncome, Valid: true},
			CumulativeNet:         decimal.NullDecimal{Decimal: cumNet, Valid: true},
			CumulativeSavingsRate: rate(cumNet, cumIncome),
		}
		if opts.Budget != nil {
			row.PeriodBudget = scaleBudget(*opts.Budget, start, int64(freq.Days(start)))
		}
		rows = append(rows, row)
	}
	return rows
}

func groupByPeriod(f model.Table, freq model.Frequency) map[time.Time]model.Table {
	byStart := make(map[time.Time]model.Table)
	for _, txn := range f {
		start := freq.PeriodStart(txn.Date)
		byStart[start] = append(byStart[start], txn)
	}
	return byStart
}

// activity is the absolute flow of a row, |income| + |expense|, used to
// order categories with the largest contributor first.
func activity(income, expense decimal.Decimal) decimal.Decimal {
	return income.Sub(expense)
}

func sortCategoryRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ai := activity(rows[i].Income, rows[i].Expense)
		aj := activity(rows[j].Income, rows[j].Expense)
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return rows[i].Category < rows[j].Category
	})
}

func categoryRows(f model.Table, total Row, spanStart, spanEnd time.Time) []Row {
	byCategory := make(map[string]model.Table)
	for _, txn := range f {
		byCategory[txn.Category] = append(byCategory[txn.Category], txn)
	}

	rows := make([]Row, 0, len(byCategory))
	for category, txns := range byCategory {
		income, expense, net := accumulate(txns)
		rows = append(rows, Row{
			Start:             spanStart,
			End:               spanEnd,
			Category:          category,
			Income:            income,
			Expense:           expense,
			Net:               net,
			SavingsRate:       rate(net, income),
			PctOfTotalIncome:  pct(income, total.Income),
			PctOfTotalExpense: pct(expense, total.Expense),
		})
	}
	sortCategoryRows(rows)
	return rows
}

// periodCategoryRows produces one row per (period, category) pair with
// activity in that period. Pairs with no activity are omitted, not
// zero-filled.
func periodCategoryRows(f model.Table, periods []Row, freq model.Frequency) []Row {
	periodByStart := make(map[time.Time]Row, len(periods))
	for _, p := range periods {
		periodByStart[p.Start] = p
	}

	type key struct {
		start    time.Time
		category string
	}
	groups := make(map[key]model.Table)
	for _, txn := range f {
		k := key{start: freq.PeriodStart(txn.Date), category: txn.Category}
		groups[k] = append(groups[k], txn)
	}

	rows := make([]Row, 0, len(groups))
	for k, txns := range groups {
		income, expense, net := accumulate(txns)
		period := periodByStart[k.start]
		rows = append(rows, Row{
			Start:              k.start,
			End:                freq.Next(k.start).AddDate(0, 0, -1),
			Category:           k.category,
			Income:             income,
			Expense:            expense,
			Net:                net,
			SavingsRate:        rate(net, income),
			PctOfPeriodIncome:  pct(income, period.Income),
			PctOfPeriodExpense: pct(expense, period.Expense),
		})
	}

	// Periods ascending, then largest contributor first.
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Start.Equal(rows[j].Start) {
			return rows[i].Start.Before(rows[j].Start)
		}
		ai := activity(rows[i].Income, rows[i].Expense)
		aj := activity(rows[j].Income, rows[j].Expense)
		if !ai.Equal(aj) {
			return ai.GreaterThan(aj)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

func roundRow(r *Row, decimals int32) {
	r.Income = r.Income.Round(decimals)
	r.Expense = r.Expense.Round(decimals)
	r.Net = r.Net.Round(decimals)
	for _, nd := range []*decimal.NullDecimal{
		&r.SavingsRate,
		&r.CumulativeIncome, &r.CumulativeNet, &r.CumulativeSavingsRate,
		&r.DailyAvgNet, &r.WeeklyAvgNet,
		&r.PctOfTotalIncome, &r.PctOfTotalExpense,
		&r.PctOfPeriodIncome, &r.PctOfPeriodExpense,
		&r.PeriodBudget,
	} {
		if nd.Valid {
			nd.Decimal = nd.Decimal.Round(decimals)
		}
	}
}
