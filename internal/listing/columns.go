package listing

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/five82/tally/internal/domain"
)

// Pipe selects how a column value is formatted.
type Pipe string

const (
	PipeNone     Pipe = ""
	PipeCurrency Pipe = "currency"
	PipeDate     Pipe = "date"
	PipeType     Pipe = "type"
	PipeCategory Pipe = "category"
	PipePercent  Pipe = "percent"
)

// DateLayout is the medium date-time format used by the date pipe.
const DateLayout = "Jan 2, 2006, 3:04:05 PM"

// Column describes one table column of a screen.
type Column struct {
	Field  string
	Header string
	Pipe   Pipe
	Width  int
}

// Columns is the static column list of a screen plus the user's selection.
type Columns struct {
	all      []Column
	selected []string
	defaults int
}

// NewColumns selects the first defaults columns. A non-positive count selects
// every column.
func NewColumns(all []Column, defaults int) *Columns {
	if defaults <= 0 || defaults > len(all) {
		defaults = len(all)
	}
	c := &Columns{all: slices.Clone(all), defaults: defaults}
	c.Reset()
	return c
}

// All returns every column of the screen.
func (c *Columns) All() []Column { return c.all }

// Reset restores the default prefix selection.
func (c *Columns) Reset() {
	c.selected = c.selected[:0]
	for _, col := range c.all[:c.defaults] {
		c.selected = append(c.selected, col.Field)
	}
}

// Selected returns the selected columns in display order.
func (c *Columns) Selected() []Column {
	out := make([]Column, 0, len(c.selected))
	for _, field := range c.selected {
		if col, ok := c.lookup(field); ok {
			out = append(out, col)
		}
	}
	return out
}

// Fields returns the selected field names in display order.
func (c *Columns) Fields() []string { return slices.Clone(c.selected) }

// IsSelected reports whether field is shown.
func (c *Columns) IsSelected(field string) bool {
	return slices.Contains(c.selected, field)
}

// Select shows field. Selecting a shown or unknown field is a no-op. The
// column keeps its position from All.
func (c *Columns) Select(field string) bool {
	if c.IsSelected(field) {
		return false
	}
	if _, ok := c.lookup(field); !ok {
		return false
	}
	next := make([]string, 0, len(c.selected)+1)
	for _, col := range c.all {
		if col.Field == field || c.IsSelected(col.Field) {
			next = append(next, col.Field)
		}
	}
	c.selected = next
	return true
}

// Deselect hides field. The last selected column cannot be hidden.
func (c *Columns) Deselect(field string) bool {
	i := slices.Index(c.selected, field)
	if i < 0 || len(c.selected) == 1 {
		return false
	}
	c.selected = slices.Delete(c.selected, i, i+1)
	return true
}

// Toggle flips the visibility of field.
func (c *Columns) Toggle(field string) bool {
	if c.IsSelected(field) {
		return c.Deselect(field)
	}
	return c.Select(field)
}

// SetFields replaces the selection, dropping unknown and repeated fields. An
// empty result restores the defaults.
func (c *Columns) SetFields(fields []string) {
	next := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, ok := c.lookup(field); !ok || slices.Contains(next, field) {
			continue
		}
		next = append(next, field)
	}
	if len(next) == 0 {
		c.Reset()
		return
	}
	c.selected = next
}

func (c *Columns) lookup(field string) (Column, bool) {
	for _, col := range c.all {
		if col.Field == field {
			return col, true
		}
	}
	return Column{}, false
}

// Cell is a formatted table cell.
type Cell struct {
	Text string
	Tone domain.Tone
}

// Currencied is implemented by rows that carry their own currency code.
type Currencied interface {
	CurrencyCode() string
}

// Render formats the value of col for row.
func Render(row Row, col Column) Cell {
	value := row.Value(col.Field)
	switch col.Pipe {
	case PipeCurrency:
		code := domain.DefaultCurrency
		if cc, ok := row.(Currencied); ok && cc.CurrencyCode() != "" {
			code = cc.CurrencyCode()
		}
		if amount, ok := value.(decimal.Decimal); ok {
			return Cell{Text: FormatCurrency(amount, code)}
		}
	case PipeDate:
		if t, ok := value.(time.Time); ok {
			return Cell{Text: FormatDate(t)}
		}
	case PipeType, PipeCategory:
		if b, ok := value.(domain.Badger); ok {
			badge := b.Badge()
			return Cell{Text: strings.TrimSpace(badge.Icon + " " + badge.Label), Tone: badge.Tone}
		}
	case PipePercent:
		if f, ok := value.(float64); ok {
			return Cell{Text: fmt.Sprintf("%.0f%%", f*100)}
		}
	}
	return Cell{Text: plain(value)}
}

// FormatCurrency renders amount with the code and the currency's standard
// number of decimals. Unknown codes fall back to two decimals. Digits come
// from the decimal itself, so large amounts keep their precision.
func FormatCurrency(amount decimal.Decimal, code string) string {
	scale := 2
	unit, err := currency.ParseISO(code)
	if err == nil {
		scale, _ = currency.Standard.Rounding(unit)
		code = unit.String()
	}
	digits := amount.StringFixed(int32(scale))
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	whole, frac, _ := strings.Cut(digits, ".")
	out := code + " " + sign + groupThousands(whole)
	if frac != "" {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders t in DateLayout using local time. The zero time renders
// empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

func plain(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case []string:
		return strings.Join(v, ", ")
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return FormatDate(v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return FormatDate(*v)
	case domain.Badger:
		return v.Badge().Label
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
