package domain

import "github.com/shopspring/decimal"

// Bucket is a savings envelope with a target amount.
type Bucket struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Target   decimal.Decimal `json:"target"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	Archived bool            `json:"archived"`
}

// NewBucket returns a defaulted draft.
func NewBucket() Bucket {
	return Bucket{Currency: DefaultCurrency}
}

func (b Bucket) Key() string          { return b.ID }
func (b Bucket) Label() string        { return b.Name }
func (b Bucket) CurrencyCode() string { return b.Currency }

// Progress returns Balance/Target as a fraction in [0,1].
func (b Bucket) Progress() float64 {
	if !b.Target.IsPositive() {
		return 0
	}
	f, _ := b.Balance.Div(b.Target).Float64()
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func (b Bucket) Value(field string) any {
	switch field {
	case "id":
		return b.ID
	case "name":
		return b.Name
	case "target":
		return b.Target
	case "balance":
		return b.Balance
	case "progress":
		return b.Progress()
	case "archived":
		return b.Archived
	}
	return nil
}

func (b Bucket) Validate() error {
	v := ValidationError{}
	required(v, "name", b.Name)
	checkCurrency(v, "currency", b.Currency)
	if !b.Target.IsPositive() {
		v.Add("target", "must be greater than zero")
	}
	return v.Err()
}

func (b Bucket) Clone() Bucket { return b }

// BucketFilter narrows bucket searches.
type BucketFilter struct {
	IncludeArchived bool `json:"includeArchived,omitempty"`
}

func (f BucketFilter) IsZero() bool { return !f.IncludeArchived }
