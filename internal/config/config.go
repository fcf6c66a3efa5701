package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeDev    = "dev"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Storage: DB_DSN (postgres) tiene prioridad sobre SQLITE_PATH; sin ninguno => in-memory.
	DBDSN      string `mapstructure:"DB_DSN"`
	SQLitePath string `mapstructure:"SQLITE_PATH"`
	RedisURL   string `mapstructure:"REDIS_URL"`

	BackendBaseURL string        `mapstructure:"BACKEND_BASE_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`

	AuthMode         string `mapstructure:"AUTH_MODE"`
	AuthJWTSecret    string `mapstructure:"AUTH_JWT_SECRET"`
	AuthRemoteURL    string `mapstructure:"AUTH_REMOTE_URL"`
	AuthRemoteAPIKey string `mapstructure:"AUTH_REMOTE_API_KEY"`

	DefaultLocale string `mapstructure:"DEFAULT_LOCALE"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME",
	"LOG_LEVEL", "LOG_FORMAT",
	"DB_DSN", "SQLITE_PATH", "REDIS_URL",
	"BACKEND_BASE_URL", "BACKEND_TIMEOUT",
	"AUTH_MODE", "AUTH_JWT_SECRET", "AUTH_REMOTE_URL", "AUTH_REMOTE_API_KEY",
	"DEFAULT_LOCALE",
}

// Load lee env vars (y un .env opcional en el cwd).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "child-care-tracker")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("AUTH_MODE", "") // "" => inferido
	v.SetDefault("DEFAULT_LOCALE", "en")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AuthMode = cfg.ResolvedAuthMode()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedAuthMode: AUTH_MODE explícito gana; si no, secret JWT => jwt, URL remota => remote, si no dev.
func (c *Config) ResolvedAuthMode() string {
	if m := strings.ToLower(strings.TrimSpace(c.AuthMode)); m != "" {
		return m
	}
	if c.AuthJWTSecret != "" {
		return AuthModeJWT
	}
	if c.AuthRemoteURL != "" {
		return AuthModeRemote
	}
	return AuthModeDev
}

func (c *Config) Validate() error {
	switch c.AuthMode {
	case AuthModeDev:
		if !c.IsDev() {
			return fmt.Errorf("AUTH_MODE=dev is only allowed with ENV=development")
		}
	case AuthModeJWT:
		if c.AuthJWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required for AUTH_MODE=jwt")
		}
	case AuthModeRemote:
		if c.AuthRemoteURL == "" {
			return fmt.Errorf("AUTH_REMOTE_URL is required for AUTH_MODE=remote")
		}
	default:
		return fmt.Errorf("unknown AUTH_MODE: %q", c.AuthMode)
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
