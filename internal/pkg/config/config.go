package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	// APIURL is the ParkEase backend root.
	APIURL    string `env:"PARKEASE_API_URL, default=http://localhost:8080"`
	Env       string `env:"ENV,              default=development"`
	LogLevel  string `env:"LOG_LEVEL,        default=info"`
	LogPretty bool   `env:"LOG_PRETTY,       default=true"`

	// SessionBackend selects where the session persists: file, redis, memory.
	SessionBackend string `env:"SESSION_BACKEND, default=file"`
	// SessionFile overrides the session file location. Empty means the
	// per-user default under the OS config directory.
	SessionFile string `env:"SESSION_FILE"`

	PollInterval  time.Duration `env:"POLL_INTERVAL,  default=5s"`
	ClockInterval time.Duration `env:"CLOCK_INTERVAL, default=1s"`

	// OpsAddr is where watch mode serves /health and /metrics.
	OpsAddr string `env:"OPS_ADDR, default=127.0.0.1:9465"`

	Redis RedisConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from the environment, honouring a local .env file
// when one exists.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
