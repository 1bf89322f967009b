package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the gateway reads.
	EnvPrefix = "procgw"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv                 = "PROCGW_APP_ENV"
	EnvPort                   = "PROCGW_APP_PORT"
	EnvUpstreamBaseURL        = "PROCGW_UPSTREAM_BASE_URL"
	EnvRedisURL               = "PROCGW_REDIS_URL"
	EnvJWTSecret              = "PROCGW_JWT_SECRET"
	EnvJWTIssuer              = "PROCGW_JWT_ISSUER"
	EnvJWTExpMins             = "PROCGW_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "PROCGW_REFRESH_TOKEN_TTL_MINUTES"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Alerts   AlertsConfig
	Confirm  ConfirmConfig
	Uploads  UploadsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"PROCGW_APP_ENV" required:"true"`
	Port         string   `envconfig:"PROCGW_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"PROCGW_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"PROCGW_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"PROCGW_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig locates the procurement backend every request is forwarded to.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"PROCGW_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"PROCGW_UPSTREAM_TIMEOUT" default:"30s"`
}

func (u UpstreamConfig) validate() error {
	if strings.TrimSpace(u.BaseURL) == "" {
		return fmt.Errorf("upstream base url is required")
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"PROCGW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PROCGW_REDIS_ADDR"`
	Password     string        `envconfig:"PROCGW_REDIS_PASSWORD"`
	DB           int           `envconfig:"PROCGW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PROCGW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PROCGW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PROCGW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PROCGW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PROCGW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PROCGW_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PROCGW_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PROCGW_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PROCGW_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AlertsConfig controls how long transient session alerts stay readable.
type AlertsConfig struct {
	TTL     time.Duration `envconfig:"PROCGW_ALERTS_TTL" default:"10m"`
	MaxKept int           `envconfig:"PROCGW_ALERTS_MAX_KEPT" default:"50"`
}

// ConfirmConfig controls the two-phase confirmation tokens issued for
// destructive actions.
type ConfirmConfig struct {
	TokenTTL time.Duration `envconfig:"PROCGW_CONFIRM_TOKEN_TTL" default:"2m"`
}

type UploadsConfig struct {
	MaxUploadMB int `envconfig:"PROCGW_MAX_UPLOAD_MB" default:"50"`
}
