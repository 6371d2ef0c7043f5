// Package logging is the structured logger every client package takes as a
// dependency. SlogLogger is the only implementation; tests use Nop.
package logging

import "context"

// Logger writes leveled records with key/value attributes:
//
//	log.Warn(ctx, "submission failed", "flow", "grievance", "kind", "network")
//
// Tokens and passwords must never be passed as attributes.
type Logger interface {
	// Debug is for HTTP round trips, pipeline transitions and prefill results.
	Debug(ctx context.Context, msg string, args ...any)
	// Info is for session changes: sign in, sign up, sign out, profile edits.
	Info(ctx context.Context, msg string, args ...any)
	// Warn is for classified failures shown to the user.
	Warn(ctx context.Context, msg string, args ...any)
	// Error is for local storage failures.
	Error(ctx context.Context, msg string, args ...any)

	// With scopes the logger, e.g. log.With("flow", name).
	With(args ...any) Logger
}
