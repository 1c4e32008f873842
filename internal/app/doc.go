// Package app wires configuration, logging, the API client, the page cache
// and the UI into the Tally terminal client.
//
// # Overview
//
// Run is the composition root. It loads settings, applies command-line
// overrides and hands a fully built dependency set to ui.Run, which blocks
// until the user quits or the context is cancelled.
//
// # Startup
//
//  1. Load ~/.config/tally/config.toml (defaults when missing)
//  2. Apply the -page-size and -log-level overrides
//  3. Open the rotating log file and route the standard logger into it
//  4. Build the API client and bind one resource per collection
//  5. Dial Redis when redis_addr is set; fall back to memory on failure
//  6. Load preferences and start the TUI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read config.toml
//	       ├─────> logging.New()       logrus + lumberjack
//	       ├─────> api.NewClient()     HTTP client, rate limit, dedup
//	       ├─────> state.NewStore()    Page cache (+ optional Redis mirror)
//	       ├─────> prefs.Load()        Theme and column selections
//	       └─────> ui.Run()            Start TUI (blocks)
//
// There is no background poller. Each screen fetches when its query, page,
// sort or filter changes, and the store notifies dependent screens when a
// collection is invalidated by a save or delete.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration or flag values
//   - Log directory that cannot be created
//   - Malformed api_base
//
// Recoverable errors (logged):
//   - Redis unreachable at startup
//   - Unreadable preferences file
//
// Request failures never stop the program; they are reported per screen.
package app
