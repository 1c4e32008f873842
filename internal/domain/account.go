package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldSpec describes one variant-specific field of an account.
type FieldSpec struct {
	Key      string
	Label    string
	Required bool
}

// AccountDetails is the variant payload selected by AccountType. The set of
// implementations is closed: BankDetails, CardDetails, CashDetails and
// InvestmentDetails.
type AccountDetails interface {
	Type() AccountType
	Specs() []FieldSpec
	Get(key string) string
	Set(key, input string) error
	check(v ValidationError)
	clone() AccountDetails
}

// NewDetails returns an empty variant for t, or nil for unknown types.
func NewDetails(t AccountType) AccountDetails {
	switch t {
	case AccountBank:
		return &BankDetails{}
	case AccountCard:
		return &CardDetails{}
	case AccountCash:
		return &CashDetails{}
	case AccountInvestment:
		return &InvestmentDetails{}
	}
	return nil
}

// FinanceAccount is a bank, card, cash or investment account.
type FinanceAccount struct {
	ID       string
	Name     string
	Currency string
	Balance  decimal.Decimal
	Details  AccountDetails
}

// NewFinanceAccount returns a defaulted bank account draft.
func NewFinanceAccount() FinanceAccount {
	return FinanceAccount{Currency: DefaultCurrency, Details: NewDetails(AccountBank)}
}

// Type returns the discriminant, zero when no variant is set.
func (a FinanceAccount) Type() AccountType {
	if a.Details == nil {
		return 0
	}
	return a.Details.Type()
}

// WithType switches the account to the variant for t. Switching to the
// current type keeps the details; any other type starts from an empty variant.
func (a FinanceAccount) WithType(t AccountType) FinanceAccount {
	if a.Type() == t {
		return a
	}
	a.Details = NewDetails(t)
	return a
}

func (a FinanceAccount) Key() string          { return a.ID }
func (a FinanceAccount) Label() string        { return a.Name }
func (a FinanceAccount) CurrencyCode() string { return a.Currency }

func (a FinanceAccount) Value(field string) any {
	switch field {
	case "id":
		return a.ID
	case "name":
		return a.Name
	case "currency":
		return a.Currency
	case "balance":
		return a.Balance
	case "type":
		return a.Type()
	}
	if key, ok := strings.CutPrefix(field, "details."); ok && a.Details != nil {
		return a.Details.Get(key)
	}
	return nil
}

func (a FinanceAccount) Validate() error {
	v := ValidationError{}
	required(v, "name", a.Name)
	checkCurrency(v, "currency", a.Currency)
	if a.Details == nil {
		v.Add("type", "is required")
		return v.Err()
	}
	for _, spec := range a.Details.Specs() {
		if spec.Required {
			required(v, "details."+spec.Key, a.Details.Get(spec.Key))
		}
	}
	a.Details.check(v)
	return v.Err()
}

func (a FinanceAccount) Clone() FinanceAccount {
	if a.Details != nil {
		a.Details = a.Details.clone()
	}
	return a
}

type accountWire struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
	Type     AccountType     `json:"type"`
	Details  json.RawMessage `json:"details,omitempty"`
}

func (a FinanceAccount) MarshalJSON() ([]byte, error) {
	w := accountWire{ID: a.ID, Name: a.Name, Currency: a.Currency, Balance: a.Balance, Type: a.Type()}
	if a.Details != nil {
		raw, err := json.Marshal(a.Details)
		if err != nil {
			return nil, fmt.Errorf("marshal account details: %w", err)
		}
		w.Details = raw
	}
	return json.Marshal(w)
}

func (a *FinanceAccount) UnmarshalJSON(data []byte) error {
	var w accountWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*a = FinanceAccount{ID: w.ID, Name: w.Name, Currency: w.Currency, Balance: w.Balance}
	details := NewDetails(w.Type)
	if details == nil {
		if w.Type != 0 {
			return fmt.Errorf("unknown account type %d", w.Type)
		}
		return nil
	}
	if len(w.Details) > 0 && string(w.Details) != "null" {
		if err := json.Unmarshal(w.Details, details); err != nil {
			return fmt.Errorf("decode %s details: %w", w.Type.Badge().Label, err)
		}
	}
	a.Details = details
	return nil
}

// AccountFilter narrows account searches.
type AccountFilter struct {
	Type AccountType `json:"type,omitempty"`
}

func (f AccountFilter) IsZero() bool { return f.Type == 0 }

// BankDetails is the variant for checking and savings accounts.
type BankDetails struct {
	Institution string `json:"institution"`
	IBAN        string `json:"iban"`
}

func (*BankDetails) Type() AccountType { return AccountBank }

func (*BankDetails) Specs() []FieldSpec {
	return []FieldSpec{
		{Key: "institution", Label: "Institution", Required: true},
		{Key: "iban", Label: "IBAN", Required: true},
	}
}

func (d *BankDetails) Get(key string) string {
	switch key {
	case "institution":
		return d.Institution
	case "iban":
		return d.IBAN
	}
	return ""
}

func (d *BankDetails) Set(key, input string) error {
	switch key {
	case "institution":
		d.Institution = strings.TrimSpace(input)
	case "iban":
		d.IBAN = strings.ToUpper(strings.ReplaceAll(input, " ", ""))
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

func (d *BankDetails) check(v ValidationError) {
	if d.IBAN != "" && (len(d.IBAN) < 15 || len(d.IBAN) > 34) {
		v.Add("details.iban", "must be 15 to 34 characters")
	}
}

func (d *BankDetails) clone() AccountDetails { c := *d; return &c }

// CardDetails is the variant for credit cards.
type CardDetails struct {
	Issuer       string          `json:"issuer"`
	Limit        decimal.Decimal `json:"limit"`
	StatementDay int             `json:"statementDay"`
}

func (*CardDetails) Type() AccountType { return AccountCard }

func (*CardDetails) Specs() []FieldSpec {
	return []FieldSpec{
		{Key: "issuer", Label: "Issuer", Required: true},
		{Key: "limit", Label: "Credit limit", Required: true},
		{Key: "statementDay", Label: "Statement day", Required: true},
	}
}

func (d *CardDetails) Get(key string) string {
	switch key {
	case "issuer":
		return d.Issuer
	case "limit":
		if d.Limit.IsZero() {
			return ""
		}
		return d.Limit.String()
	case "statementDay":
		if d.StatementDay == 0 {
			return ""
		}
		return strconv.Itoa(d.StatementDay)
	}
	return ""
}

func (d *CardDetails) Set(key, input string) error {
	switch key {
	case "issuer":
		d.Issuer = strings.TrimSpace(input)
	case "limit":
		amount, err := ParseAmount(input)
		if err != nil {
			return fmt.Errorf("limit: %w", err)
		}
		d.Limit = amount
	case "statementDay":
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			d.StatementDay = 0
			return nil
		}
		day, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("statement day: %w", err)
		}
		d.StatementDay = day
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

func (d *CardDetails) check(v ValidationError) {
	if !d.Limit.IsZero() && !d.Limit.IsPositive() {
		v.Add("details.limit", "must be greater than zero")
	}
	if d.StatementDay != 0 && (d.StatementDay < 1 || d.StatementDay > 28) {
		v.Add("details.statementDay", "must be between 1 and 28")
	}
}

func (d *CardDetails) clone() AccountDetails { c := *d; return &c }

// CashDetails is the variant for wallets and petty cash.
type CashDetails struct {
	Location string `json:"location,omitempty"`
}

func (*CashDetails) Type() AccountType { return AccountCash }

func (*CashDetails) Specs() []FieldSpec {
	return []FieldSpec{{Key: "location", Label: "Location"}}
}

func (d *CashDetails) Get(key string) string {
	if key == "location" {
		return d.Location
	}
	return ""
}

func (d *CashDetails) Set(key, input string) error {
	if key != "location" {
		return fmt.Errorf("unknown field %q", key)
	}
	d.Location = strings.TrimSpace(input)
	return nil
}

func (d *CashDetails) check(ValidationError) {}

func (d *CashDetails) clone() AccountDetails { c := *d; return &c }

// InvestmentDetails is the variant for brokerage accounts.
type InvestmentDetails struct {
	Broker    string `json:"broker"`
	RiskLevel int    `json:"riskLevel"`
}

func (*InvestmentDetails) Type() AccountType { return AccountInvestment }

func (*InvestmentDetails) Specs() []FieldSpec {
	return []FieldSpec{
		{Key: "broker", Label: "Broker", Required: true},
		{Key: "riskLevel", Label: "Risk level (1-5)", Required: true},
	}
}

func (d *InvestmentDetails) Get(key string) string {
	switch key {
	case "broker":
		return d.Broker
	case "riskLevel":
		if d.RiskLevel == 0 {
			return ""
		}
		return strconv.Itoa(d.RiskLevel)
	}
	return ""
}

func (d *InvestmentDetails) Set(key, input string) error {
	switch key {
	case "broker":
		d.Broker = strings.TrimSpace(input)
	case "riskLevel":
		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			d.RiskLevel = 0
			return nil
		}
		level, err := strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("risk level: %w", err)
		}
		d.RiskLevel = level
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

func (d *InvestmentDetails) check(v ValidationError) {
	if d.RiskLevel != 0 && (d.RiskLevel < 1 || d.RiskLevel > 5) {
		v.Add("details.riskLevel", "must be between 1 and 5")
	}
}

func (d *InvestmentDetails) clone() AccountDetails { c := *d; return &c }
