package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransaction_ValidateRequiredFields(t *testing.T) {
	tx := NewTransaction(time.Now())
	err := tx.Validate()
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want ValidationError", err)
	}
	for _, field := range []string{"description", "amount", "account"} {
		if _, ok := verr[field]; !ok {
			t.Fatalf("missing %q in %v", field, verr.Fields())
		}
	}

	tx.Description = "Gym membership"
	tx.Amount = decimal.RequireFromString("39.90")
	tx.Account = Ref{ID: "acc-1", Name: "Checking"}
	if err := tx.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestTransaction_UnknownCurrency(t *testing.T) {
	tx := Transaction{
		Description: "x",
		Amount:      decimal.NewFromInt(1),
		Currency:    "ZZZ",
		Type:        TransactionIncome,
		Date:        time.Now(),
		Account:     Ref{ID: "a"},
	}
	var verr ValidationError
	if !errors.As(tx.Validate(), &verr) {
		t.Fatalf("expected validation error")
	}
	if _, ok := verr["currency"]; !ok {
		t.Fatalf("fields = %v, want currency", verr.Fields())
	}
}

func TestTransaction_ValueResolvesReferences(t *testing.T) {
	tx := Transaction{Account: Ref{ID: "a", Name: "Checking"}}
	if got := tx.Value("account.name"); got != "Checking" {
		t.Fatalf("Value(account.name) = %v", got)
	}
	if got := tx.Value("bucket.name"); got != "" {
		t.Fatalf("Value(bucket.name) = %v, want empty", got)
	}
	if got := tx.Value("nope"); got != nil {
		t.Fatalf("Value(nope) = %v, want nil", got)
	}
}

func TestTask_CloneIsDeep(t *testing.T) {
	task := Task{Title: "Stretch", Project: &Ref{ID: "p", Name: "Health"}, Labels: []string{"daily"}}
	c := task.Clone()
	c.Project.Name = "Changed"
	c.Labels[0] = "weekly"
	if task.Project.Name != "Health" || task.Labels[0] != "daily" {
		t.Fatalf("Clone shares memory: %+v", task)
	}
}

func TestContentSource_ValidateURL(t *testing.T) {
	c := NewContentSource()
	c.Name = "Go blog"
	c.URL = "not a url"
	var verr ValidationError
	if !errors.As(c.Validate(), &verr) {
		t.Fatalf("expected validation error")
	}
	if verr["url"] != "must be an absolute URL" {
		t.Fatalf("url message = %q", verr["url"])
	}
	c.URL = "https://go.dev/blog/feed.atom"
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestBucket_Progress(t *testing.T) {
	b := Bucket{Target: decimal.NewFromInt(200), Balance: decimal.NewFromInt(50)}
	if got := b.Progress(); got != 0.25 {
		t.Fatalf("Progress = %v, want 0.25", got)
	}
	b.Balance = decimal.NewFromInt(500)
	if got := b.Progress(); got != 1 {
		t.Fatalf("Progress = %v, want capped at 1", got)
	}
	if got := (Bucket{}).Progress(); got != 0 {
		t.Fatalf("Progress of zero target = %v", got)
	}
}

func TestFilters_IsZero(t *testing.T) {
	if !(TransactionFilter{}).IsZero() || (TransactionFilter{From: time.Now()}).IsZero() {
		t.Fatalf("TransactionFilter.IsZero wrong")
	}
	if !(TaskFilter{}).IsZero() || (TaskFilter{Status: TaskDone}).IsZero() {
		t.Fatalf("TaskFilter.IsZero wrong")
	}
	if !(BucketFilter{}).IsZero() || (BucketFilter{IncludeArchived: true}).IsZero() {
		t.Fatalf("BucketFilter.IsZero wrong")
	}
}

func TestBadges(t *testing.T) {
	if got := TaskDone.Badge(); got.Label != "Done" || got.Tone != ToneSuccess {
		t.Fatalf("TaskDone badge = %+v", got)
	}
	if got := TaskStatus(99).Badge(); got.Label != "Unknown" {
		t.Fatalf("unknown badge = %+v", got)
	}
}

func TestParseCode(t *testing.T) {
	if code, ok := ParseCode(TaskStatuses, " in progress "); !ok || code != TaskInProgress {
		t.Fatalf("ParseCode label = %v %v", code, ok)
	}
	if code, ok := ParseCode(Priorities, "3"); !ok || code != PriorityHigh {
		t.Fatalf("ParseCode number = %v %v", code, ok)
	}
	if _, ok := ParseCode(Priorities, "7"); ok {
		t.Fatalf("ParseCode accepted unknown code")
	}
	if _, ok := ParseCode(Priorities, "urgent"); ok {
		t.Fatalf("ParseCode accepted unknown label")
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 1,234.50 ")
	if err != nil || !d.Equal(decimal.RequireFromString("1234.5")) {
		t.Fatalf("ParseAmount = %v, %v", d, err)
	}
	if d, err := ParseAmount(""); err != nil || !d.IsZero() {
		t.Fatalf("ParseAmount empty = %v, %v", d, err)
	}
	if _, err := ParseAmount("12abc"); err == nil {
		t.Fatalf("ParseAmount accepted garbage")
	}
}
