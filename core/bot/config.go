package bot

import "time"

// Config carries the settings a bot needs at startup. Load it from the
// environment with core/config, or populate it directly in code.
type Config struct {
	// Token authenticates against the Bot API. Required.
	Token string `env:"BOT_TOKEN,required"`

	// APIBaseURL points at the Bot API server. Override for local test
	// servers.
	APIBaseURL string `env:"BOT_API_BASE_URL" envDefault:"https://api.telegram.org"`

	// PollTimeout is the long poll hold duration.
	PollTimeout time.Duration `env:"BOT_POLL_TIMEOUT" envDefault:"30s"`

	// BufferSize caps the fetcher's output feed buffers.
	BufferSize int `env:"BOT_BUFFER_SIZE" envDefault:"100"`

	// ShutdownTimeout bounds how long Stop waits for in-flight work.
	ShutdownTimeout time.Duration `env:"BOT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}
