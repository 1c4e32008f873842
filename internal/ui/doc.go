// Package ui provides the terminal user interface for Tally.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model is the root tea.Model; it owns
// one list screen per backend collection and at most one open modal. All
// state changes happen on the Bubble Tea event loop. Network calls run
// inside tea.Cmd functions and come back as messages addressed to the screen
// that issued them.
//
// # Package Structure
//
//   - app.go: Root model, key routing, store subscriptions and Run
//   - screen.go: Generic list screen (table, search box, pager, detail strip)
//   - screens.go: Column, filter and form definitions for each collection
//   - form.go: Create/edit form modal and field parsers
//   - dialogs.go: Delete confirmation and column chooser modals
//   - logs.go: Client log overlay backed by logtail
//   - header.go: Tab bar, command bar and status bar
//   - help.go, keys.go: Key bindings and the help overlay
//   - theme.go, style_helpers.go: Themes, tone colors and background-aware rendering
//
// # Screens
//
// Six screens are available, reachable with tab/shift+tab or the digits 1-6:
//
//   - Transactions, Accounts, Buckets (finance)
//   - Tasks
//   - Courses, Content (academy and content sources)
//
// Each screen is driven by a listing.Controller. Typing in the search box
// feeds a search.Gate; a debounce tick carrying the gate tag commits the
// query once input settles. Page, page size, sort and filter changes each
// issue exactly one fetch. While a page is loading the table shows skeleton
// rows.
//
// # Key Bindings
//
//	/        search           r        refresh
//	] [      next/prev page   + -      page size
//	s S      sort column/dir  f        cycle filter
//	n        new              enter/e  edit
//	d        delete           c        columns
//	L        log overlay      T        cycle theme
//	?        help             q        quit
//
// # Cross-screen Updates
//
// Screens publish every page to the shared state.Store. Saves and deletes
// invalidate their collection, and screens that watch it (for example the
// accounts screen watching transactions) refetch when notified.
//
// # Preferences
//
// The active theme and the selected columns per screen are written to the
// prefs file whenever they change.
package ui
