package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
	IndexPath       string        `env:"INDEX_HTML_PATH" envDefault:"html/index.html"`
	TaskPath        string        `env:"EXTRACTION_TASK_PATH"`
}

type GeminiConfig struct {
	APIKey     string        `env:"GEMINI_API_KEY"`
	BaseURL    string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta/models/"`
	Model      string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-preview-09-2025"`
	MaxRetries int           `env:"GEMINI_MAX_RETRIES" envDefault:"5"`
	Timeout    time.Duration `env:"GEMINI_TIMEOUT" envDefault:"30s"`
}

type CacheConfig struct {
	Enabled  bool          `env:"CACHE_ENABLE"`
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
