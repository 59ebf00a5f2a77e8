// Package logging provides structured logging configuration for imitatus.
//
// It wraps log/slog so all components log consistently. Components should
// accept a *slog.Logger in their constructor or via a setter; when logging
// is disabled, pass logging.Nop().
package logging
