// Package table implements the record filter/sort engine behind the table view.
package table

import (
	"fmt"
	"strings"
)

// MaxClauses is the maximum number of filter clauses applied at once.
const MaxClauses = 32

// Clause is a single field-substring filter condition.
type Clause struct {
	field     string
	substring string
}

// NewClause validates and creates a Clause. Both parts are required.
func NewClause(field, substring string) (Clause, error) {
	if strings.TrimSpace(field) == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	if substring == "" {
		return Clause{}, fmt.Errorf("filter value is required for field %q", field)
	}
	return Clause{field: field, substring: substring}, nil
}

// ParseClause parses the "field:substring" form used in query strings.
// The substring may itself contain colons.
func ParseClause(s string) (Clause, error) {
	field, sub, ok := strings.Cut(s, ":")
	if !ok {
		return Clause{}, fmt.Errorf("filter %q must have the form field:value", s)
	}
	return NewClause(field, sub)
}

// Field returns the filtered field name.
func (c Clause) Field() string { return c.field }

// Substring returns the substring searched for.
func (c Clause) Substring() string { return c.substring }

// String returns the "field:substring" form.
func (c Clause) String() string { return c.field + ":" + c.substring }
