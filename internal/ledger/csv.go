package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/araichev/mustaching/internal/model"
)

// Header is the canonical CSV header written by Write.
const Header = "date,amount,description,category,comment"

// DefaultDateFormat is the date layout used when none is configured.
const DefaultDateFormat = "2006-01-02"

// Required column names.
const (
	colDate     = "date"
	colAmount   = "amount"
	colDesc     = "description"
	colCategory = "category"
	colComment  = "comment"
)

// Options controls CSV parsing.
type Options struct {
	// DateFormat is the time layout for the date column.
	// Empty means DefaultDateFormat.
	DateFormat string
}

func (o Options) dateFormat() string {
	if o.DateFormat == "" {
		return DefaultDateFormat
	}
	return o.DateFormat
}

// Load reads and validates a transaction CSV from a file path.
func Load(path string, opts Options) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	table, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return table, nil
}

// Read reads a transaction CSV, validates it, and returns a table sorted by
// (date, amount). The header row is required; column names are matched after
// lowercasing and trimming, and unrecognized columns are ignored.
func Read(r io.Reader, opts Options) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // column count checked against the header below

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transaction CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, &SchemaError{Column: colDate, Reason: "empty input, header row required"}
	}

	cols, err := locateColumns(records[0])
	if err != nil {
		return nil, err
	}

	table := make(model.Table, 0, len(records)-1)
	for i, rec := range records[1:] {
		txn, err := unmarshalTransaction(rec, cols, opts.dateFormat(), i+2)
		if err != nil {
			return nil, err
		}
		table = append(table, txn)
	}
	table.Sort()
	return table, nil
}

// columnIndex maps recognized columns to their position in the header,
// -1 when absent.
type columnIndex struct {
	date, amount, desc, category, comment int
}

func locateColumns(header []string) (columnIndex, error) {
	cols := columnIndex{date: -1, amount: -1, desc: -1, category: -1, comment: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case colDate:
			cols.date = i
		case colAmount:
			cols.amount = i
		case colDesc:
			cols.desc = i
		case colCategory:
			cols.category = i
		case colComment:
			cols.comment = i
		}
	}
	if cols.date == -1 {
		return cols, &SchemaError{Column: colDate, Reason: "required column missing"}
	}
	if cols.amount == -1 {
		return cols, &SchemaError{Column: colAmount, Reason: "required column missing"}
	}
	return cols, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

func unmarshalTransaction(rec []string, cols columnIndex, dateFormat string, row int) (model.Transaction, error) {
	rawDate := strings.TrimSpace(field(rec, cols.date))
	date, err := time.Parse(dateFormat, rawDate)
	if err != nil {
		return model.Transaction{}, &SchemaError{
			Column: colDate,
			Row:    row,
			Reason: fmt.Sprintf("cannot parse %q as %s", rawDate, dateFormat),
		}
	}

	rawAmount := strings.TrimSpace(field(rec, cols.amount))
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return model.Transaction{}, &SchemaError{
			Column: colAmount,
			Row:    row,
			Reason: fmt.Sprintf("cannot parse %q as a number", rawAmount),
		}
	}

	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Description: field(rec, cols.desc),
		Category:    NormalizeCategory(field(rec, cols.category)),
		Comment:     field(rec, cols.comment),
	}, nil
}

// Write writes a table as canonical CSV (including header). The output
// round-trips through Read.
func Write(w io.Writer, table model.Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range table {
		row := []string{
			txn.Date.Format(DefaultDateFormat),
			txn.Amount.String(),
			txn.Description,
			txn.Category,
			txn.Comment,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Save writes a table to a CSV file at path.
func Save(path string, table model.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	defer f.Close()

	if err := Write(f, table); err != nil {
		return fmt.Errorf("writing ledger %s: %w", path, err)
	}
	return nil
}
