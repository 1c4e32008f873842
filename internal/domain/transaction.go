package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single money movement on an account.
type Transaction struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Account     Ref             `json:"account"`
	Bucket      *Ref            `json:"bucket,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// NewTransaction returns a defaulted expense dated now.
func NewTransaction(now time.Time) Transaction {
	return Transaction{Type: TransactionExpense, Currency: DefaultCurrency, Date: now}
}

func (t Transaction) Key() string          { return t.ID }
func (t Transaction) Label() string        { return t.Description }
func (t Transaction) CurrencyCode() string { return t.Currency }

func (t Transaction) Value(field string) any {
	switch field {
	case "id":
		return t.ID
	case "description":
		return t.Description
	case "amount":
		return t.Amount
	case "type":
		return t.Type
	case "date":
		return t.Date
	case "account", "account.name":
		return t.Account.Name
	case "bucket", "bucket.name":
		if t.Bucket == nil {
			return ""
		}
		return t.Bucket.Name
	case "category":
		return t.Category
	}
	return nil
}

func (t Transaction) Validate() error {
	v := ValidationError{}
	required(v, "description", t.Description)
	checkCurrency(v, "currency", t.Currency)
	if !t.Amount.IsPositive() {
		v.Add("amount", "must be greater than zero")
	}
	if _, ok := transactionTypes[t.Type]; !ok {
		v.Add("type", "is required")
	}
	if t.Date.IsZero() {
		v.Add("date", "is required")
	}
	if t.Account.IsZero() {
		v.Add("account", "is required")
	}
	return v.Err()
}

func (t Transaction) Clone() Transaction {
	if t.Bucket != nil {
		b := *t.Bucket
		t.Bucket = &b
	}
	return t
}

// TransactionFilter narrows transaction searches.
type TransactionFilter struct {
	AccountID string          `json:"accountId,omitempty"`
	Type      TransactionType `json:"type,omitempty"`
	From      time.Time       `json:"from,omitzero"`
	To        time.Time       `json:"to,omitzero"`
}

func (f TransactionFilter) IsZero() bool {
	return f.AccountID == "" && f.Type == 0 && f.From.IsZero() && f.To.IsZero()
}
