package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Store drivers
const (
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// HTTPCfg is http server config
type HTTPCfg struct {
	Port            int           `env:"HTTP_PORT" envDefault:"5000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowOrigins    []string      `env:"HTTP_CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// GrpcCfg is gRPC server config
type GrpcCfg struct {
	Port int `env:"GRPC_PORT" envDefault:"5001"`
}

// MongoCfg is mongodb connection config
type MongoCfg struct {
	Host        string `env:"MONGO_HOST" envDefault:"localhost"`
	Port        int    `env:"MONGO_PORT" envDefault:"27017"`
	User        string `env:"MONGO_USER"`
	Password    string `env:"MONGO_PASSWORD"`
	Database    string `env:"MONGO_DB" envDefault:"contactdb"`
	MaxPoolSize int    `env:"MONGO_MAX_POOL_SIZE" envDefault:"100"`
}

// PostgresCfg is postgresql connection config
type PostgresCfg struct {
	Host        string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port        int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User        string `env:"POSTGRES_USER"`
	Password    string `env:"POSTGRES_PASSWORD"`
	Database    string `env:"POSTGRES_DB" envDefault:"contactdb"`
	SslMode     string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	PoolMaxConn int    `env:"POSTGRES_POOL_MAX_CONN" envDefault:"100"`
}

// RedisCfg is redis connection config, cache is disabled when address is empty
type RedisCfg struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Enabled reports whether redis cache is configured
func (c RedisCfg) Enabled() bool {
	return c.Addr != ""
}

// LogCfg is logger config
type LogCfg struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Config is application config
type Config struct {
	StoreDriver    string        `env:"STORE_DRIVER" envDefault:"mongo"`
	ConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" envDefault:"5s"`
	HTTPCfg        HTTPCfg
	GrpcCfg        GrpcCfg
	MongoCfg       MongoCfg
	PostgresCfg    PostgresCfg
	RedisCfg       RedisCfg
	LogCfg         LogCfg
}

// Build parses config from environment variables
func Build() (Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment variables - %w", err)
	}

	switch cfg.StoreDriver {
	case StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory:
	default:
		return cfg, fmt.Errorf("unknown store driver %q, expected one of %s, %s, %s", cfg.StoreDriver, StoreDriverMongo, StoreDriverPostgres, StoreDriverMemory)
	}

	return cfg, nil
}
