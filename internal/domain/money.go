package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency is used for new drafts.
const DefaultCurrency = "USD"

// Ref is a nested reference to another entity, rendered by name.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// IsZero reports whether the reference points nowhere.
func (r Ref) IsZero() bool {
	return r.ID == ""
}

func checkCurrency(v ValidationError, field, code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		v.Add(field, "is required")
		return
	}
	if _, err := currency.ParseISO(code); err != nil {
		v.Add(field, "unknown currency "+code)
	}
}

func checkNonNegative(v ValidationError, field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.Add(field, "must not be negative")
	}
}

// ParseAmount parses a user-entered amount, tolerating thousands separators.
func ParseAmount(input string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(input), ",", "")
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}
