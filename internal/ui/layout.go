package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutMinColumnWidth is the narrowest a table column is drawn.
	LayoutMinColumnWidth = 6
)

// Rows drawn around the active screen (header, command bar, status bar) and
// around the table inside a list screen (search line, detail strip, pager).
const (
	frameRows        = 3
	screenChromeRows = 3
)

// Log display limits.
const (
	// LogTailLines is the number of log lines read for the log overlay.
	LogTailLines = 500
)

// Timing constants.
const (
	// NoticeTTL is how long a status bar notice stays visible.
	NoticeTTL = 6 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)

// pageSizes are the steps cycled by the grow and shrink keys.
var pageSizes = []int{5, 10, 20, 50, 100}
