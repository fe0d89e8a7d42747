package bot

import "errors"

var (
	// ErrAlreadyRunning is returned when starting a running bot.
	ErrAlreadyRunning = errors.New("bot: already running")

	// ErrNotRunning is returned when stopping a bot that is not running.
	ErrNotRunning = errors.New("bot: not running")

	// ErrNilHandler is returned by registration builders given a nil action.
	ErrNilHandler = errors.New("bot: nil handler")

	// ErrNilReference is returned by NextStep given a nil reference message.
	ErrNilReference = errors.New("bot: nil reference message")

	// ErrHealthcheckFailed wraps healthcheck failures for errors.Is checks.
	ErrHealthcheckFailed = errors.New("bot: healthcheck failed")
)
