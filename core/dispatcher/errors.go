package dispatcher

import "errors"

var (
	// ErrAlreadyStarted is returned when starting a running dispatcher.
	ErrAlreadyStarted = errors.New("dispatcher: already started")

	// ErrNotStarted is returned when stopping a dispatcher that is not
	// running.
	ErrNotStarted = errors.New("dispatcher: not started")

	// ErrNoSource is returned when the dispatcher is started without an
	// update source.
	ErrNoSource = errors.New("dispatcher: no update source")

	// ErrHealthcheckFailed wraps healthcheck failures for errors.Is checks.
	ErrHealthcheckFailed = errors.New("dispatcher: healthcheck failed")
)
