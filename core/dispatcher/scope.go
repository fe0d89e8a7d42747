package dispatcher

import (
	"context"
	"regexp"
	"slices"

	"github.com/GiuseppeFn/televerse/core/update"
)

// HandlerFunc is the uniform action signature every scope conforms to. The
// dispatcher awaits its completion before considering the update dispatched.
type HandlerFunc func(ctx context.Context, u update.Update) error

// Predicate decides whether a scope matches an update.
type Predicate func(u update.Update) bool

// Scope is one handler rule: eligibility, a predicate, and an action.
type Scope struct {
	// Name identifies the scope for removal. Optional; scopes registered
	// without a name can only be removed in bulk with RemoveWhere.
	Name string

	// Types is the set of update kinds the scope is eligible for. An empty
	// set means every kind.
	Types []update.Type

	// Predicate guards the action. A nil predicate matches when Pattern
	// matches (or always, when there is no Pattern either).
	Predicate Predicate

	// Handler is the action to invoke. A scope without a handler is skipped
	// during dispatch unless it is a gate.
	Handler HandlerFunc

	// IsGate marks a scope that claims matching updates silently: the scan
	// stops and no action runs.
	IsGate bool

	// Pattern is matched against the update's textual payload before the
	// predicate runs; captured groups are exposed to the handler context.
	Pattern *regexp.Regexp
}

// eligible reports whether the scope accepts the given update kind.
func (s Scope) eligible(t update.Type) bool {
	if len(s.Types) == 0 {
		return true
	}
	return slices.Contains(s.Types, t)
}

// match evaluates the pattern (recording captures) and then the predicate.
func (s Scope) match(u update.Update) (bool, []string) {
	var captures []string
	if s.Pattern != nil {
		captures = s.Pattern.FindStringSubmatch(u.Text())
	}

	if s.Predicate != nil {
		return s.Predicate(u), captures
	}
	if s.Pattern != nil {
		return captures != nil, captures
	}
	return true, nil
}
