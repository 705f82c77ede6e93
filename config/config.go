package config

import (
	"time"
)

type Config struct {
	API     APIConfig     `koanf:"api"`
	Breaker BreakerConfig `koanf:"breaker"`
	Server  ServerConfig  `koanf:"server"`
	Cache   CacheConfig   `koanf:"cache"`
	Logging LoggingConfig `koanf:"logging"`
}

// APIConfig points at the external recommendation backend.
type APIConfig struct {
	BaseURL  string        `koanf:"base_url"`
	Timeout  time.Duration `koanf:"timeout"`
	RetryMax int           `koanf:"retry_max"` // 0: one attempt, no automatic retry
}

type BreakerConfig struct {
	MaxRequests         uint32        `koanf:"max_requests"`
	Interval            time.Duration `koanf:"interval"`
	Timeout             time.Duration `koanf:"timeout"`
	ConsecutiveFailures uint32        `koanf:"consecutive_failures"`
}

type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	CORSOrigins  []string      `koanf:"cors_origins"`
	RateLimit    int           `koanf:"rate_limit"`
	RateWindow   time.Duration `koanf:"rate_window"`
}

// CacheConfig selects the last-search store. An empty RedisAddr keeps it in
// memory.
type CacheConfig struct {
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
