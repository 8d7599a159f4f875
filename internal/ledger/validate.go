package ledger

import (
	"fmt"
	"strings"

	"github.com/araichev/mustaching/internal/model"
)

// SchemaError reports a required column that is missing or a cell that
// cannot be coerced to its declared type. Row is 1-based (header is row 1);
// zero when the error concerns the header itself.
type SchemaError struct {
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("schema: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("schema: row %d, column %q: %s", e.Row, e.Column, e.Reason)
}

// NormalizeCategory lowercases and trims a category label, mapping blank
// values to model.Uncategorized.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return model.Uncategorized
	}
	return c
}
