package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the label assigned to transactions whose category is
// missing or blank, so every transaction groups into exactly one bucket.
const Uncategorized = "uncategorized"

// Transaction represents one parsed ledger row.
type Transaction struct {
	Date        time.Time
	Amount      decimal.Decimal // negative = expense, positive = income
	Description string
	Category    string // lowercased, never empty (see Uncategorized)
	Comment     string
}

// Table is an ordered sequence of transactions, sorted by (date, amount).
type Table []Transaction

// Clone returns a copy of the table sharing no backing storage.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Sort orders the table by date ascending, then amount ascending.
// The sort is stable so equal rows keep their input order.
func (t Table) Sort() {
	sort.SliceStable(t, func(i, j int) bool {
		if !t[i].Date.Equal(t[j].Date) {
			return t[i].Date.Before(t[j].Date)
		}
		return t[i].Amount.LessThan(t[j].Amount)
	})
}

// Span returns the first and last transaction dates. ok is false for an
// empty table.
func (t Table) Span() (first, last time.Time, ok bool) {
	if len(t) == 0 {
		return time.Time{}, time.Time{}, false
	}
	first, last = t[0].Date, t[0].Date
	for _, txn := range t[1:] {
		if txn.Date.Before(first) {
			first = txn.Date
		}
		if txn.Date.After(last) {
			last = txn.Date
		}
	}
	return first, last, true
}
