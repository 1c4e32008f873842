package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Course is an academy course.
type Course struct {
	ID         string          `json:"id,omitempty"`
	Title      string          `json:"title"`
	Instructor string          `json:"instructor"`
	Category   CourseCategory  `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	StartsAt   time.Time       `json:"startsAt,omitzero"`
	Published  bool            `json:"published"`
}

// NewCourse returns a defaulted draft.
func NewCourse() Course {
	return Course{Category: CategoryOther, Currency: DefaultCurrency}
}

func (c Course) Key() string   { return c.ID }
func (c Course) Label() string { return c.Title }

// CurrencyCode is the currency used to render Price.
func (c Course) CurrencyCode() string { return c.Currency }

func (c Course) Value(field string) any {
	switch field {
	case "id":
		return c.ID
	case "title":
		return c.Title
	case "instructor":
		return c.Instructor
	case "category":
		return c.Category
	case "price":
		return c.Price
	case "startsAt":
		return c.StartsAt
	case "published":
		return c.Published
	}
	return nil
}

func (c Course) Validate() error {
	v := ValidationError{}
	required(v, "title", c.Title)
	required(v, "instructor", c.Instructor)
	checkCurrency(v, "currency", c.Currency)
	checkNonNegative(v, "price", c.Price)
	if _, ok := courseCategories[c.Category]; !ok {
		v.Add("category", "is required")
	}
	return v.Err()
}

func (c Course) Clone() Course { return c }

// CourseFilter narrows course searches.
type CourseFilter struct {
	Category      CourseCategory `json:"category,omitempty"`
	PublishedOnly bool           `json:"publishedOnly,omitempty"`
}

func (f CourseFilter) IsZero() bool { return f == CourseFilter{} }
