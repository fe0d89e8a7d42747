// Package logger provides structured logging attributes built on Go's
// standard slog package, tailored to the update pipeline: fetch cursors,
// update identifiers, handler scopes, and retry bookkeeping.
//
// All helpers follow the empty-Attr-on-nil pattern, so they can be passed
// directly without guarding:
//
//	log.Error("fetch failed",
//		logger.Error(err),
//		logger.Component("longpolling"),
//		logger.Offset(cursor),
//		logger.RetryCount(attempts),
//	)
//
// A nil error or empty string produces an empty attribute that slog drops
// from the output.
//
// Pipeline-specific helpers:
//
//	log.Debug("handler completed",
//		logger.UpdateID(u.UpdateID),
//		logger.UpdateType(string(u.Type())),
//		logger.Scope(scopeName),
//		logger.Elapsed(start),
//	)
package logger
