package fetcher

import "errors"

var (
	// ErrAlreadyRunning is returned when starting a fetcher that is running.
	ErrAlreadyRunning = errors.New("fetcher: already running")

	// ErrNotRunning is returned when stopping a fetcher that is not running,
	// or delivering updates to one.
	ErrNotRunning = errors.New("fetcher: not running")

	// ErrNilClient is returned when a fetcher is constructed without an
	// event source client.
	ErrNilClient = errors.New("fetcher: nil client")

	// ErrMissingWebhookURL is returned when a webhook fetcher is started
	// without a delivery URL.
	ErrMissingWebhookURL = errors.New("fetcher: missing webhook url")

	// ErrHealthcheckFailed wraps healthcheck failures for errors.Is checks.
	ErrHealthcheckFailed = errors.New("fetcher: healthcheck failed")
)
