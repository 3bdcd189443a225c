// Package logging provides slog-based logger construction for shelfd.
//
// All operational logging goes through *slog.Logger values built here so
// that level, format and destination are configured in exactly one place.
// Components that accept a logger should treat a nil logger as Nop().
package logging
