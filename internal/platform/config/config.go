package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the verifier daemon.
type Server struct {
	Addr string

	Redis RedisConfig

	// ResultCacheTTL is how long computed verification results stay valid.
	ResultCacheTTL time.Duration

	// SourceTimeout bounds the registry fan-out of one verification.
	SourceTimeout time.Duration

	// MaxResultAge is the staleness window for re-verification.
	MaxResultAge time.Duration

	// BatchMaxConcurrent bounds in-flight verifications during batch runs.
	BatchMaxConcurrent int
}

// RedisConfig captures Redis connection settings. An empty URL means Redis
// is not configured and the in-memory result store is used instead.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VERIFIER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr: addr,
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		ResultCacheTTL:     envDuration("RESULT_CACHE_TTL", 24*time.Hour),
		SourceTimeout:      envDuration("SOURCE_TIMEOUT", 30*time.Second),
		MaxResultAge:       envDuration("MAX_RESULT_AGE", 168*time.Hour),
		BatchMaxConcurrent: envInt("BATCH_MAX_CONCURRENT", 3),
	}
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
