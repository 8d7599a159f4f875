package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/araichev/mustaching/internal/model"
)

// RepeatingParams holds parameters for adding a repeating transaction.
type RepeatingParams struct {
	Amount      decimal.Decimal
	Frequency   model.Frequency
	Description string
	Category    string
	Comment     string
	Start       *time.Time // defaults to the table's first date
	End         *time.Time // defaults to the table's last date
}

// InsertRepeating returns a new table with one transaction per period start
// between Start and End inclusive. Rows identical to an existing row are
// dropped, and the result is sorted by (date, amount). The input table is
// not mutated.
func InsertRepeating(table model.Table, params RepeatingParams) model.Table {
	start, end, ok := table.Span()
	if params.Start != nil {
		start = *params.Start
	}
	if params.End != nil {
		end = *params.End
	}
	if (!ok && (params.Start == nil || params.End == nil)) || end.Before(start) {
		return table.Clone()
	}

	out := table.Clone()
	category := NormalizeCategory(params.Category)

	for d := params.Frequency.PeriodStart(start); !d.After(end); d = params.Frequency.Next(d) {
		if d.Before(start) {
			continue
		}
		txn := model.Transaction{
			Date:        d,
			Amount:      params.Amount,
			Description: params.Description,
			Category:    category,
			Comment:     params.Comment,
		}
		if containsTransaction(out, txn) {
			continue
		}
		out = append(out, txn)
	}
	out.Sort()
	return out
}

func containsTransaction(table model.Table, txn model.Transaction) bool {
	for _, t := range table {
		if t.Date.Equal(txn.Date) &&
			t.Amount.Equal(txn.Amount) &&
			t.Description == txn.Description &&
			t.Category == txn.Category &&
			t.Comment == txn.Comment {
			return true
		}
	}
	return false
}
