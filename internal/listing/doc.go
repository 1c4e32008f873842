// Package listing implements the response side of a list screen.
//
// # Overview
//
// A screen owns one Controller. The controller combines the request inputs
// from package search (committed query, pagination, sort, domain filter) with
// a Cycle that tracks what is on screen:
//
//	Idle ──Begin──> Loading ──Resolve──> Success
//	                   │
//	                   └──────Fail─────> Error
//
// Begin is called for every page change, sort change, committed search or
// explicit refresh. While loading, the screen draws Skeleton() placeholder
// rows (one per page slot) so the layout does not shift.
//
// # Stale responses
//
// Every Begin hands out a Ticket with a monotonic sequence number, and the
// controller cancels the context of the request it supersedes. Resolve and
// Fail ignore any ticket that is not the latest, so a slow response for an
// old query can never overwrite a newer page. After Dispose every ticket is
// stale.
//
// # Errors
//
// A failed fetch clears the rows, sets the total to zero and reports the
// error once. Nothing is retried; the user re-triggers the fetch.
//
// # Columns
//
// Columns holds the static column list of a screen and the user's ordered
// selection. Render dispatches on the column pipe: currency, date, type and
// category badges, percent, or plain text.
//
// # Editing
//
// Editor carries the create/edit dialog state. Drafts are deep clones of the
// selected row, validation runs before any request, and Save picks create or
// update from the presence of an id.
package listing
