package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/five82/tally/internal/api"
	"github.com/five82/tally/internal/domain"
	"github.com/five82/tally/internal/listing"
)

// buildScreens creates one list screen per backend collection, in tab order.
func buildScreens(res api.Resources, deps screenDeps) []screen {
	return []screen{
		newListScreen(transactionsSpec(), res.Transactions, deps),
		newListScreen(accountsSpec(), res.Accounts, deps),
		newListScreen(bucketsSpec(), res.Buckets, deps),
		newListScreen(tasksSpec(), res.Tasks, deps),
		newListScreen(coursesSpec(), res.Courses, deps),
		newListScreen(contentSpec(), res.Content, deps),
	}
}

func decimalInput(d interface{ String() string }, zero bool) string {
	if zero {
		return ""
	}
	return d.String()
}

func coursesSpec() screenSpec[domain.Course, domain.CourseFilter] {
	type C = domain.Course
	return screenSpec[C, domain.CourseFilter]{
		name:  api.PathCourses,
		title: "Courses",
		noun:  "course",
		columns: []listing.Column{
			{Field: "title", Header: "Title", Width: 30},
			{Field: "instructor", Header: "Instructor", Width: 20},
			{Field: "category", Header: "Category", Pipe: listing.PipeCategory, Width: 16},
			{Field: "price", Header: "Price", Pipe: listing.PipeCurrency, Width: 14},
			{Field: "startsAt", Header: "Starts", Pipe: listing.PipeDate, Width: 24},
			{Field: "published", Header: "Published", Width: 9},
		},
		defaults: 5,
		filters: []filterPreset[domain.CourseFilter]{
			{label: "All"},
			{label: "Published", filter: domain.CourseFilter{PublishedOnly: true}},
			{label: "Programming", filter: domain.CourseFilter{Category: domain.CategoryProgramming}},
			{label: "Design", filter: domain.CourseFilter{Category: domain.CategoryDesign}},
			{label: "Finance", filter: domain.CourseFilter{Category: domain.CategoryFinance}},
			{label: "Language", filter: domain.CourseFilter{Category: domain.CategoryLanguage}},
		},
		draft: func(time.Time) C { return domain.NewCourse() },
		fields: func(formEnv, C) []formField[C] {
			return []formField[C]{
				textField("title", "Title", func(c C) string { return c.Title }, func(c *C, v string) { c.Title = v }),
				textField("instructor", "Instructor", func(c C) string { return c.Instructor }, func(c *C, v string) { c.Instructor = v }),
				{
					key:   "category",
					label: "Category",
					hint: codedHint(domain.CourseCategories, domain.CategoryProgramming, domain.CategoryDesign,
						domain.CategoryFinance, domain.CategoryLanguage, domain.CategoryOther),
					get: func(c C) string { return c.Category.Badge().Label },
					set: func(c *C, v string) (err error) {
						c.Category, err = parseCoded(domain.CourseCategories, v)
						return err
					},
				},
				amountField("price", "Price",
					func(c C) string { return decimalInput(c.Price, c.Price.IsZero()) },
					func(c *C, v string) (err error) {
						c.Price, err = domain.ParseAmount(v)
						return err
					}),
				textField("currency", "Currency", func(c C) string { return c.Currency }, func(c *C, v string) { c.Currency = strings.ToUpper(v) }),
				{
					key:   "startsAt",
					label: "Starts",
					hint:  "YYYY-MM-DD HH:MM",
					get:   func(c C) string { return formatDateInput(c.StartsAt) },
					set: func(c *C, v string) (err error) {
						c.StartsAt, err = parseDate(v)
						return err
					},
				},
				{
					key:   "published",
					label: "Published",
					hint:  "yes or no",
					get:   func(c C) string { return formatBool(c.Published) },
					set: func(c *C, v string) (err error) {
						c.Published, err = parseBool(v)
						return err
					},
				},
			}
		},
	}
}

func contentSpec() screenSpec[domain.ContentSource, domain.ContentSourceFilter] {
	type S = domain.ContentSource
	return screenSpec[S, domain.ContentSourceFilter]{
		name:  api.PathContent,
		title: "Content",
		noun:  "source",
		columns: []listing.Column{
			{Field: "name", Header: "Name", Width: 26},
			{Field: "kind", Header: "Kind", Pipe: listing.PipeType, Width: 14},
			{Field: "url", Header: "URL", Width: 36},
			{Field: "tags", Header: "Tags", Width: 20},
			{Field: "active", Header: "Active", Width: 6},
			{Field: "createdAt", Header: "Added", Pipe: listing.PipeDate, Width: 24},
		},
		defaults: 5,
		filters: []filterPreset[domain.ContentSourceFilter]{
			{label: "All"},
			{label: "Active", filter: domain.ContentSourceFilter{ActiveOnly: true}},
			{label: "Feeds", filter: domain.ContentSourceFilter{Kind: domain.ContentFeed}},
			{label: "Videos", filter: domain.ContentSourceFilter{Kind: domain.ContentVideo}},
			{label: "Podcasts", filter: domain.ContentSourceFilter{Kind: domain.ContentPodcast}},
			{label: "Newsletters", filter: domain.ContentSourceFilter{Kind: domain.ContentNewsletter}},
		},
		draft: func(time.Time) S { return domain.NewContentSource() },
		fields: func(formEnv, S) []formField[S] {
			return []formField[S]{
				textField("name", "Name", func(s S) string { return s.Name }, func(s *S, v string) { s.Name = v }),
				textField("url", "URL", func(s S) string { return s.URL }, func(s *S, v string) { s.URL = v }),
				{
					key:   "kind",
					label: "Kind",
					hint:  codedHint(domain.ContentKinds, domain.ContentFeed, domain.ContentVideo, domain.ContentPodcast, domain.ContentNewsletter),
					get:   func(s S) string { return s.Kind.Badge().Label },
					set: func(s *S, v string) (err error) {
						s.Kind, err = parseCoded(domain.ContentKinds, v)
						return err
					},
				},
				{
					key:   "tags",
					label: "Tags",
					hint:  "comma separated",
					get:   func(s S) string { return strings.Join(s.Tags, ", ") },
					set: func(s *S, v string) error {
						s.Tags = parseList(v)
						return nil
					},
				},
				{
					key:   "active",
					label: "Active",
					hint:  "yes or no",
					get:   func(s S) string { return formatBool(s.Active) },
					set: func(s *S, v string) (err error) {
						s.Active, err = parseBool(v)
						return err
					},
				},
			}
		},
	}
}

func accountsSpec() screenSpec[domain.FinanceAccount, domain.AccountFilter] {
	type A = domain.FinanceAccount
	return screenSpec[A, domain.AccountFilter]{
		name:  api.PathAccounts,
		title: "Accounts",
		noun:  "account",
		columns: []listing.Column{
			{Field: "name", Header: "Name", Width: 26},
			{Field: "type", Header: "Type", Pipe: listing.PipeType, Width: 14},
			{Field: "balance", Header: "Balance", Pipe: listing.PipeCurrency, Width: 16},
			{Field: "currency", Header: "Currency", Width: 8},
			{Field: "details.institution", Header: "Institution", Width: 20},
			{Field: "details.issuer", Header: "Issuer", Width: 16},
			{Field: "details.broker", Header: "Broker", Width: 16},
		},
		defaults: 3,
		filters: []filterPreset[domain.AccountFilter]{
			{label: "All"},
			{label: "Bank", filter: domain.AccountFilter{Type: domain.AccountBank}},
			{label: "Card", filter: domain.AccountFilter{Type: domain.AccountCard}},
			{label: "Cash", filter: domain.AccountFilter{Type: domain.AccountCash}},
			{label: "Investment", filter: domain.AccountFilter{Type: domain.AccountInvestment}},
		},
		draft:  func(time.Time) A { return domain.NewFinanceAccount() },
		fields: accountFields,
		watch:  []string{api.PathTransactions},
	}
}

// accountFields lists the common account fields followed by the fields of
// the draft's variant.
func accountFields(_ formEnv, draft domain.FinanceAccount) []formField[domain.FinanceAccount] {
	type A = domain.FinanceAccount
	fields := []formField[A]{
		{
			key:     "type",
			label:   "Type",
			hint:    codedHint(domain.AccountTypes, domain.AccountBank, domain.AccountCard, domain.AccountCash, domain.AccountInvestment),
			rebuild: true,
			get: func(a A) string {
				if a.Type() == 0 {
					return ""
				}
				return a.Type().Badge().Label
			},
			set: func(a *A, v string) error {
				t, err := parseCoded(domain.AccountTypes, v)
				if err != nil {
					return err
				}
				*a = a.WithType(t)
				return nil
			},
		},
		textField("name", "Name", func(a A) string { return a.Name }, func(a *A, v string) { a.Name = v }),
		textField("currency", "Currency", func(a A) string { return a.Currency }, func(a *A, v string) { a.Currency = strings.ToUpper(v) }),
		amountField("balance", "Balance",
			func(a A) string { return decimalInput(a.Balance, a.Balance.IsZero()) },
			func(a *A, v string) (err error) {
				a.Balance, err = domain.ParseAmount(v)
				return err
			}),
	}
	if draft.Details == nil {
		return fields
	}
	for _, spec := range draft.Details.Specs() {
		label := spec.Label
		if spec.Required {
			label += " *"
		}
		fields = append(fields, formField[A]{
			key:   "details." + spec.Key,
			label: label,
			get: func(a A) string {
				if a.Details == nil {
					return ""
				}
				return a.Details.Get(spec.Key)
			},
			set: func(a *A, v string) error {
				if a.Details == nil || a.Details.Type() != draft.Details.Type() {
					return nil
				}
				return a.Details.Set(spec.Key, v)
			},
		})
	}
	return fields
}

func transactionsSpec() screenSpec[domain.Transaction, domain.TransactionFilter] {
	type T = domain.Transaction
	return screenSpec[T, domain.TransactionFilter]{
		name:  api.PathTransactions,
		title: "Transactions",
		noun:  "transaction",
		columns: []listing.Column{
			{Field: "date", Header: "Date", Pipe: listing.PipeDate, Width: 24},
			{Field: "description", Header: "Description", Width: 28},
			{Field: "type", Header: "Type", Pipe: listing.PipeType, Width: 12},
			{Field: "amount", Header: "Amount", Pipe: listing.PipeCurrency, Width: 16},
			{Field: "account", Header: "Account", Width: 18},
			{Field: "bucket", Header: "Bucket", Width: 16},
			{Field: "category", Header: "Category", Width: 14},
		},
		defaults: 5,
		filters: []filterPreset[domain.TransactionFilter]{
			{label: "All"},
			{label: "Expenses", filter: domain.TransactionFilter{Type: domain.TransactionExpense}},
			{label: "Income", filter: domain.TransactionFilter{Type: domain.TransactionIncome}},
			{label: "Transfers", filter: domain.TransactionFilter{Type: domain.TransactionTransfer}},
		},
		draft:  domain.NewTransaction,
		fields: transactionFields,
		watch:  []string{api.PathAccounts, api.PathBuckets},
	}
}

// transactionFields resolves account and bucket names against the pages
// last shown on their screens.
func transactionFields(env formEnv, _ domain.Transaction) []formField[domain.Transaction] {
	type T = domain.Transaction
	return []formField[T]{
		textField("description", "Description", func(t T) string { return t.Description }, func(t *T, v string) { t.Description = v }),
		{
			key:   "type",
			label: "Type",
			hint:  codedHint(domain.TransactionTypes, domain.TransactionExpense, domain.TransactionIncome, domain.TransactionTransfer),
			get:   func(t T) string { return t.Type.Badge().Label },
			set: func(t *T, v string) (err error) {
				t.Type, err = parseCoded(domain.TransactionTypes, v)
				return err
			},
		},
		amountField("amount", "Amount",
			func(t T) string { return decimalInput(t.Amount, t.Amount.IsZero()) },
			func(t *T, v string) (err error) {
				t.Amount, err = domain.ParseAmount(v)
				return err
			}),
		textField("currency", "Currency", func(t T) string { return t.Currency }, func(t *T, v string) { t.Currency = strings.ToUpper(v) }),
		{
			key:   "date",
			label: "Date",
			hint:  "YYYY-MM-DD HH:MM",
			get:   func(t T) string { return formatDateInput(t.Date) },
			set: func(t *T, v string) (err error) {
				t.Date, err = parseDate(v)
				return err
			},
		},
		{
			key:   "account",
			label: "Account",
			hint:  "account name",
			get:   func(t T) string { return t.Account.Name },
			set: func(t *T, v string) error {
				v = strings.TrimSpace(v)
				switch {
				case v == "":
					t.Account = domain.Ref{}
					return nil
				case !t.Account.IsZero() && strings.EqualFold(v, t.Account.Name):
					return nil
				}
				ref, err := lookupRef[domain.FinanceAccount](env, api.PathAccounts, "account", v)
				if err != nil {
					return err
				}
				t.Account = ref
				return nil
			},
		},
		{
			key:   "bucket",
			label: "Bucket",
			hint:  "optional bucket name",
			get: func(t T) string {
				if t.Bucket == nil {
					return ""
				}
				return t.Bucket.Name
			},
			set: func(t *T, v string) error {
				v = strings.TrimSpace(v)
				switch {
				case v == "":
					t.Bucket = nil
					return nil
				case t.Bucket != nil && strings.EqualFold(v, t.Bucket.Name):
					return nil
				}
				ref, err := lookupRef[domain.Bucket](env, api.PathBuckets, "bucket", v)
				if err != nil {
					return err
				}
				t.Bucket = &ref
				return nil
			},
		},
		textField("category", "Category", func(t T) string { return t.Category }, func(t *T, v string) { t.Category = v }),
	}
}

func bucketsSpec() screenSpec[domain.Bucket, domain.BucketFilter] {
	type B = domain.Bucket
	return screenSpec[B, domain.BucketFilter]{
		name:  api.PathBuckets,
		title: "Buckets",
		noun:  "bucket",
		columns: []listing.Column{
			{Field: "name", Header: "Name", Width: 24},
			{Field: "balance", Header: "Balance", Pipe: listing.PipeCurrency, Width: 16},
			{Field: "target", Header: "Target", Pipe: listing.PipeCurrency, Width: 16},
			{Field: "progress", Header: "Progress", Pipe: listing.PipePercent, Width: 8},
			{Field: "archived", Header: "Archived", Width: 8},
		},
		defaults: 4,
		filters: []filterPreset[domain.BucketFilter]{
			{label: "Active"},
			{label: "Include archived", filter: domain.BucketFilter{IncludeArchived: true}},
		},
		draft: func(time.Time) B { return domain.NewBucket() },
		fields: func(formEnv, B) []formField[B] {
			return []formField[B]{
				textField("name", "Name", func(b B) string { return b.Name }, func(b *B, v string) { b.Name = v }),
				amountField("target", "Target",
					func(b B) string { return decimalInput(b.Target, b.Target.IsZero()) },
					func(b *B, v string) (err error) {
						b.Target, err = domain.ParseAmount(v)
						return err
					}),
				amountField("balance", "Balance",
					func(b B) string { return decimalInput(b.Balance, b.Balance.IsZero()) },
					func(b *B, v string) (err error) {
						b.Balance, err = domain.ParseAmount(v)
						return err
					}),
				textField("currency", "Currency", func(b B) string { return b.Currency }, func(b *B, v string) { b.Currency = strings.ToUpper(v) }),
				{
					key:   "archived",
					label: "Archived",
					hint:  "yes or no",
					get:   func(b B) string { return formatBool(b.Archived) },
					set: func(b *B, v string) (err error) {
						b.Archived, err = parseBool(v)
						return err
					},
				},
			}
		},
		watch: []string{api.PathTransactions},
	}
}

func tasksSpec() screenSpec[domain.Task, domain.TaskFilter] {
	type K = domain.Task
	return screenSpec[K, domain.TaskFilter]{
		name:  api.PathTasks,
		title: "Tasks",
		noun:  "task",
		columns: []listing.Column{
			{Field: "title", Header: "Title", Width: 30},
			{Field: "status", Header: "Status", Pipe: listing.PipeType, Width: 14},
			{Field: "priority", Header: "Priority", Pipe: listing.PipeType, Width: 10},
			{Field: "due", Header: "Due", Pipe: listing.PipeDate, Width: 24},
			{Field: "project", Header: "Project", Width: 16},
			{Field: "labels", Header: "Labels", Width: 18},
			{Field: "recurrence", Header: "Repeats", Width: 18},
		},
		defaults: 5,
		filters: []filterPreset[domain.TaskFilter]{
			{label: "All"},
			{label: "To do", filter: domain.TaskFilter{Status: domain.TaskTodo}},
			{label: "In progress", filter: domain.TaskFilter{Status: domain.TaskInProgress}},
			{label: "Blocked", filter: domain.TaskFilter{Status: domain.TaskBlocked}},
			{label: "Done", filter: domain.TaskFilter{Status: domain.TaskDone}},
			{label: "High priority", filter: domain.TaskFilter{Priority: domain.PriorityHigh}},
		},
		draft:  func(time.Time) K { return domain.NewTask() },
		fields: taskFields,
	}
}

func taskFields(formEnv, domain.Task) []formField[domain.Task] {
	type K = domain.Task
	return []formField[K]{
		textField("title", "Title", func(t K) string { return t.Title }, func(t *K, v string) { t.Title = v }),
		{
			key:   "status",
			label: "Status",
			hint:  codedHint(domain.TaskStatuses, domain.TaskTodo, domain.TaskInProgress, domain.TaskBlocked, domain.TaskDone),
			get:   func(t K) string { return t.Status.Badge().Label },
			set: func(t *K, v string) (err error) {
				t.Status, err = parseCoded(domain.TaskStatuses, v)
				return err
			},
		},
		{
			key:   "priority",
			label: "Priority",
			hint:  codedHint(domain.Priorities, domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh),
			get:   func(t K) string { return t.Priority.Badge().Label },
			set: func(t *K, v string) (err error) {
				t.Priority, err = parseCoded(domain.Priorities, v)
				return err
			},
		},
		{
			key:   "due",
			label: "Due",
			hint:  "YYYY-MM-DD HH:MM",
			get:   func(t K) string { return formatDateInput(t.Due) },
			set: func(t *K, v string) (err error) {
				t.Due, err = parseDate(v)
				return err
			},
		},
		{
			key:   "project",
			label: "Project",
			get: func(t K) string {
				if t.Project == nil {
					return ""
				}
				return t.Project.Name
			},
			set: func(t *K, v string) error {
				v = strings.TrimSpace(v)
				switch {
				case v == "":
					t.Project = nil
				case t.Project == nil || !strings.EqualFold(v, t.Project.Name):
					t.Project = &domain.Ref{Name: v}
				}
				return nil
			},
		},
		{
			key:   "labels",
			label: "Labels",
			hint:  "comma separated",
			get:   func(t K) string { return strings.Join(t.Labels, ", ") },
			set: func(t *K, v string) error {
				t.Labels = parseList(v)
				return nil
			},
		},
		{
			key:   "recurrence",
			label: "Repeats",
			hint:  "RRULE, e.g. FREQ=WEEKLY",
			get:   func(t K) string { return t.Recurrence },
			set: func(t *K, v string) error {
				v = strings.TrimSpace(v)
				if v != "" && !strings.Contains(strings.ToUpper(v), "FREQ=") {
					return fmt.Errorf("expected an RRULE with FREQ=")
				}
				t.Recurrence = v
				return nil
			},
		},
		textField("notes", "Notes", func(t K) string { return t.Notes }, func(t *K, v string) { t.Notes = v }),
	}
}

// screenIndex parses a 1-based tab shortcut.
func screenIndex(s string, n int) (int, bool) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
