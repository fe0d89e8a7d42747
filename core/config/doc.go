// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/GiuseppeFn/televerse/core/config"
//
//	type BotConfig struct {
//		Token       string        `env:"BOT_TOKEN,required"`
//		APIBaseURL  string        `env:"BOT_API_BASE_URL" envDefault:"https://api.telegram.org"`
//		PollTimeout time.Duration `env:"BOT_POLL_TIMEOUT" envDefault:"30s"`
//	}
//
//	func main() {
//		var cfg BotConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 BotConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 BotConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently, so webhook and polling
// configurations can be loaded side by side without interference.
package config
