package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name         string        `mapstructure:"name"`
		Port         string        `mapstructure:"port"`
		Mode         string        `mapstructure:"mode"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
	} `mapstructure:"app"`
	Database struct {
		Host         string        `mapstructure:"host"`
		Port         string        `mapstructure:"port"`
		User         string        `mapstructure:"user"`
		Password     string        `mapstructure:"password"`
		Name         string        `mapstructure:"name"`
		Sslmode      string        `mapstructure:"sslmode"`
		Timezone     string        `mapstructure:"timezone"`
		MaxIdleConns int           `mapstructure:"max_idle_conns"`
		MaxOpenConns int           `mapstructure:"max_open_conns"`
		QueryTimeout time.Duration `mapstructure:"query_timeout"`
	} `mapstructure:"database"`
	Redis struct {
		Enabled  bool          `mapstructure:"enabled"`
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		CacheTTL time.Duration `mapstructure:"cache_ttl"`
	} `mapstructure:"redis"`
	Auth struct {
		JWTSecret         string        `mapstructure:"jwt_secret"`
		TokenTTL          time.Duration `mapstructure:"token_ttl"`
		AdminUsername     string        `mapstructure:"admin_username"`
		AdminPasswordHash string        `mapstructure:"admin_password_hash"`
	} `mapstructure:"auth"`
	RateLimit struct {
		RPS   float64 `mapstructure:"rps"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

// AdminEnabled reports whether the CMS ingest endpoints should be mounted.
func (cfg *Config) AdminEnabled() bool {
	return cfg.Auth.AdminUsername != "" && cfg.Auth.AdminPasswordHash != ""
}

// Validate checks the settings that the server cannot start without.
func (cfg *Config) Validate() error {
	if cfg.App.Port == "" {
		return errors.New("app.port must be set")
	}
	switch cfg.App.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("app.mode must be debug, release or test, got %q", cfg.App.Mode)
	}
	if cfg.Database.Host == "" || cfg.Database.Name == "" {
		return errors.New("database.host and database.name must be set")
	}
	if cfg.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive, got %s", cfg.Database.QueryTimeout)
	}
	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		return errors.New("redis.addr must be set when redis is enabled")
	}
	if cfg.AdminEnabled() && cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret must be set when an admin account is configured")
	}
	if cfg.RateLimit.RPS < 0 || cfg.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	if cfg.RateLimit.RPS > 0 && cfg.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be at least 1 when rps is set, got %d", cfg.RateLimit.Burst)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "nkust-campus")
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.read_timeout", 10*time.Second)
	v.SetDefault("app.write_timeout", 15*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "campus")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "Asia/Taipei")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.query_timeout", 5*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", time.Minute)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.admin_username", "")
	v.SetDefault("auth.admin_password_hash", "")

	v.SetDefault("rate_limit.rps", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:8080"})
}

// Load reads the YAML file at path and applies CAMPUS_* environment overrides.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("campus")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
