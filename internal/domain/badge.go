package domain

import (
	"strconv"
	"strings"
)

// Tone names a semantic color; the UI maps tones to theme colors.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneAccent  Tone = "accent"
)

// Badge is the display form of a status or type code.
type Badge struct {
	Label string
	Icon  string
	Tone  Tone
}

// Badger is implemented by coded values that render as badges.
type Badger interface {
	Badge() Badge
}

func lookup[K comparable](table map[K]Badge, code K) Badge {
	if b, ok := table[code]; ok {
		return b
	}
	return Badge{Label: "Unknown", Icon: "?", Tone: ToneNeutral}
}

// TransactionType codes as sent by the backend.
type TransactionType int

const (
	TransactionExpense  TransactionType = 1
	TransactionIncome   TransactionType = 2
	TransactionTransfer TransactionType = 3
)

var transactionTypes = map[TransactionType]Badge{
	TransactionExpense:  {Label: "Expense", Icon: "↓", Tone: ToneDanger},
	TransactionIncome:   {Label: "Income", Icon: "↑", Tone: ToneSuccess},
	TransactionTransfer: {Label: "Transfer", Icon: "⇄", Tone: ToneInfo},
}

func (t TransactionType) Badge() Badge { return lookup(transactionTypes, t) }

// TaskStatus codes.
type TaskStatus int

const (
	TaskTodo       TaskStatus = 1
	TaskInProgress TaskStatus = 2
	TaskBlocked    TaskStatus = 3
	TaskDone       TaskStatus = 4
)

var taskStatuses = map[TaskStatus]Badge{
	TaskTodo:       {Label: "To do", Icon: "○", Tone: ToneNeutral},
	TaskInProgress: {Label: "In progress", Icon: "◐", Tone: ToneInfo},
	TaskBlocked:    {Label: "Blocked", Icon: "■", Tone: ToneDanger},
	TaskDone:       {Label: "Done", Icon: "●", Tone: ToneSuccess},
}

func (s TaskStatus) Badge() Badge { return lookup(taskStatuses, s) }

// Priority codes.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

var priorities = map[Priority]Badge{
	PriorityLow:    {Label: "Low", Icon: "▽", Tone: ToneNeutral},
	PriorityMedium: {Label: "Medium", Icon: "◇", Tone: ToneWarning},
	PriorityHigh:   {Label: "High", Icon: "▲", Tone: ToneDanger},
}

func (p Priority) Badge() Badge { return lookup(priorities, p) }

// ContentKind codes.
type ContentKind int

const (
	ContentFeed       ContentKind = 1
	ContentVideo      ContentKind = 2
	ContentPodcast    ContentKind = 3
	ContentNewsletter ContentKind = 4
)

var contentKinds = map[ContentKind]Badge{
	ContentFeed:       {Label: "Feed", Icon: "≋", Tone: ToneWarning},
	ContentVideo:      {Label: "Video", Icon: "▶", Tone: ToneDanger},
	ContentPodcast:    {Label: "Podcast", Icon: "♪", Tone: ToneAccent},
	ContentNewsletter: {Label: "Newsletter", Icon: "✉", Tone: ToneInfo},
}

func (k ContentKind) Badge() Badge { return lookup(contentKinds, k) }

// CourseCategory codes.
type CourseCategory int

const (
	CategoryProgramming CourseCategory = 1
	CategoryDesign      CourseCategory = 2
	CategoryFinance     CourseCategory = 3
	CategoryLanguage    CourseCategory = 4
	CategoryOther       CourseCategory = 9
)

var courseCategories = map[CourseCategory]Badge{
	CategoryProgramming: {Label: "Programming", Icon: "⌘", Tone: ToneInfo},
	CategoryDesign:      {Label: "Design", Icon: "✎", Tone: ToneAccent},
	CategoryFinance:     {Label: "Finance", Icon: "$", Tone: ToneSuccess},
	CategoryLanguage:    {Label: "Language", Icon: "¶", Tone: ToneWarning},
	CategoryOther:       {Label: "Other", Icon: "·", Tone: ToneNeutral},
}

func (c CourseCategory) Badge() Badge { return lookup(courseCategories, c) }

// AccountType is the discriminant of FinanceAccount.
type AccountType int

const (
	AccountBank       AccountType = 1
	AccountCard       AccountType = 2
	AccountCash       AccountType = 3
	AccountInvestment AccountType = 4
)

var accountTypes = map[AccountType]Badge{
	AccountBank:       {Label: "Bank", Icon: "⌂", Tone: ToneInfo},
	AccountCard:       {Label: "Card", Icon: "▭", Tone: ToneWarning},
	AccountCash:       {Label: "Cash", Icon: "¤", Tone: ToneSuccess},
	AccountInvestment: {Label: "Investment", Icon: "↗", Tone: ToneAccent},
}

func (a AccountType) Badge() Badge { return lookup(accountTypes, a) }

// ParseCode resolves a badge label (case-insensitive) or numeric code back to
// its code within table. It backs form inputs for coded fields.
func ParseCode[K ~int](table map[K]Badge, input string) (K, bool) {
	input = strings.TrimSpace(input)
	for code, b := range table {
		if strings.EqualFold(b.Label, input) {
			return code, true
		}
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, false
	}
	if _, ok := table[K(n)]; !ok {
		return 0, false
	}
	return K(n), true
}

// Lookup tables exposed for form parsing.
var (
	TransactionTypes = transactionTypes
	TaskStatuses     = taskStatuses
	Priorities       = priorities
	ContentKinds     = contentKinds
	CourseCategories = courseCategories
	AccountTypes     = accountTypes
)
