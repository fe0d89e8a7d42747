package dispatcher

import "context"

type matchesCtx struct{}

// WithMatches attaches pattern capture groups to the context.
func WithMatches(ctx context.Context, matches []string) context.Context {
	return context.WithValue(ctx, matchesCtx{}, matches)
}

// Matches extracts the capture groups recorded by the firing scope's
// pattern. Index 0 is the full match, following the regexp package's
// submatch convention. Returns nil when the scope had no pattern.
func Matches(ctx context.Context) []string {
	if m, ok := ctx.Value(matchesCtx{}).([]string); ok {
		return m
	}
	return nil
}

type scopeNameCtx struct{}

// WithScopeName attaches the firing scope's name to the context.
func WithScopeName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, scopeNameCtx{}, name)
}

// ScopeName extracts the firing scope's name from the context.
// Returns empty string if not present.
func ScopeName(ctx context.Context) string {
	if name, ok := ctx.Value(scopeNameCtx{}).(string); ok {
		return name
	}
	return ""
}
