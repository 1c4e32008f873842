// Package domain defines the rows Tally lists and edits.
//
// Each entity (Course, ContentSource, FinanceAccount, Transaction, Bucket,
// Task) is owned by the backend; the client holds a transient copy of one
// page. Entities share a small method set used by package listing:
//
//   - Key: the server id, empty for drafts that were never saved
//   - Label: the human name used in prompts ("Delete Checking?")
//   - Value: field lookup for column rendering, including dotted references
//     such as "account.name"
//   - Validate: client-side checks run before any request is sent
//   - Clone: a deep copy, so edit dialogs never mutate the displayed row
//
// Every entity has a matching domain filter (TransactionFilter, TaskFilter,
// ...) whose IsZero method lets the request builder omit it.
//
// Numeric status and type codes map to display badges (label, icon, color)
// through static tables in badge.go.
//
// FinanceAccount is a tagged variant: the account type selects a Details
// implementation that carries its own required fields, instead of one flat
// struct with validators switched on and off.
package domain
