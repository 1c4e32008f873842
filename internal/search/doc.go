// Package search implements the request side of the list-screen protocol.
//
// # Overview
//
// Every list screen in Tally goes from a user-typed query and a page request
// to a rendered page of rows. This package owns the first half of that path:
//
//	keystrokes ──> Gate / Debounce ──> committed query
//	                                        │
//	Pagination ─────────────────────────────┤
//	Order (sort) ───────────────────────────┼──> Build() ──> Filter[D]
//	domain filter D ────────────────────────┘
//
// The response side (loading state, stale response handling, column
// rendering) lives in package listing.
//
// # Debouncing
//
// Gate is a small state machine that the UI drives with tagged ticks:
//
//	tag := gate.Input(text)          // on every keystroke
//	tea.Tick(window, tickMsg{tag})   // schedule a check
//	value, ok := gate.Fire(tag)      // when the tick arrives
//
// Fire only reports a value when the tick belongs to the most recent input
// and the value differs from the last committed one. Debounce wraps the same
// rules in a goroutine for callers that prefer channels.
//
// An empty string is a valid committed value: clearing the search box commits
// "" and reloads with no search term.
//
// # Pagination
//
// Pagination is 1-based ({PageNumber, PageSize}). Offset-based callers convert
// with FromOffset; the mapping is pageNumber = floor(first/rows) + 1.
//
// # Wire format
//
// Filter serialises to the backend's search body:
//
//	{
//	  "search": {"value": "gym"},
//	  "paginationFilter": {"pageNumber": 1, "pageSize": 10},
//	  "order": {"column": "date", "direction": "desc"},
//	  "filter": {...}
//	}
//
// Members that do not apply are omitted rather than sent empty, so the server
// never confuses "no filter" with "filter everything out".
package search
