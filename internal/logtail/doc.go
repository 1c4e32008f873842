// Package logtail reads the tail of the client log file for the in-app log
// overlay.
//
// # Reading
//
// Read uses a ring buffer to keep the last maxLines of a file of any size
// without loading it whole. A missing file is not an error; the log may not
// exist before the first message is written.
//
// # Parsing
//
// The client logs with logrus' text formatter:
//
//	time="2024-03-05T14:07:09+01:00" level=warning msg="search failed" collection=tasks page=2
//
// Parse splits such a line into time, level, message and the remaining
// fields, unquoting quoted values. Lines without a level (stack traces,
// foreign output) are kept verbatim with Parsed=false.
//
// Tail combines both and filters by minimum severity, so the overlay can
// toggle between all entries and warnings only.
package logtail
