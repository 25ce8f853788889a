// Package logging provides opt-in file-based logging with rotation for
// topo. When --debug is set, or the configured logging level is anything
// other than "info", logs are written to ~/.topo/logs/ for debugging and
// troubleshooting.
//
// By default (no --debug and the level left at "info"), logging is
// minimal: only warnings and errors go to stderr. Per-file scan and index errors are logged at
// warn level with structured fields rather than returned, since such
// errors are localized to one file and should not abort the run.
package logging
