// Package sample generates synthetic transaction tables for demos and
// documentation.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/araichev/mustaching/internal/model"
)

// Default category pools, in the spirit of the hand-maintained ledgers
// this tool is for.
var (
	DefaultIncomeCategories  = []string{"yoga", "reiki", "thieving"}
	DefaultExpenseCategories = []string{"food", "housing", "transport", "healthcare", "soil testing"}
)

// Options controls Generate.
type Options struct {
	Seed              *int64        // nil = time-based seed (non-reproducible)
	Step              time.Duration // spacing between transactions; default 12h
	IncomeCategories  []string
	ExpenseCategories []string
}

// Generate produces a table of random transactions between start and end
// inclusive, one per step. Positive amounts get an income category,
// negative ones an expense category. Output is deterministic for a given
// seed.
func Generate(start, end time.Time, opts Options) model.Table {
	step := opts.Step
	if step <= 0 {
		step = 12 * time.Hour
	}
	income := opts.IncomeCategories
	if len(income) == 0 {
		income = DefaultIncomeCategories
	}
	expense := opts.ExpenseCategories
	if len(expense) == 0 {
		expense = DefaultExpenseCategories
	}

	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	var table model.Table
	for ts := start; !ts.After(end); ts = ts.Add(step) {
		// Integer amounts in [-100, 100), like a rough hand-kept ledger.
		amount := decimal.NewFromInt(int64(rng.Intn(200)) - 100)

		var category string
		if amount.IsPositive() {
			category = income[rng.Intn(len(income))]
		} else {
			category = expense[rng.Intn(len(expense))]
		}

		y, m, d := ts.Date()
		table = append(table, model.Transaction{
			Date:        time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			Amount:      amount,
			Description: fmt.Sprintf("%x", rng.Uint32()&0xfffff),
			Category:    category,
			Comment:     fmt.Sprintf("%x", uint64(rng.Int63())&0xffffffffff),
		})
	}
	table.Sort()
	return table
}
