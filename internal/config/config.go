package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigPathEnv names the environment variable pointing at a YAML file.
const ConfigPathEnv = "TIMETRACKER_CONFIG_PATH"

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Webhook WebhookConfig `yaml:"webhook"`
	Cache   CacheConfig   `yaml:"cache"`
	Clock   ClockConfig   `yaml:"clock"`
	MCP     MCPConfig     `yaml:"mcp"`
}

type ServerConfig struct {
	Host           string        `yaml:"host" env:"TIMETRACKER_SERVER_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"TIMETRACKER_SERVER_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"TIMETRACKER_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TIMETRACKER_HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"TIMETRACKER_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"TIMETRACKER_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DBConfig struct {
	Driver string `yaml:"driver" env:"TIMETRACKER_DB_DRIVER" env-default:"sqlite"`
	DSN    string `yaml:"dsn" env:"TIMETRACKER_DB_DSN" env-default:"timetracker.db"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"TIMETRACKER_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"TIMETRACKER_LOG_FORMAT" env-default:"text"`
	Path   string `yaml:"path" env:"TIMETRACKER_LOG_PATH"`
}

// AuthConfig controls bearer-token auth. With Enabled false every request
// acts as DefaultUser.
type AuthConfig struct {
	Enabled     bool   `yaml:"enabled" env:"TIMETRACKER_AUTH_ENABLED" env-default:"true"`
	DefaultUser string `yaml:"default_user" env:"TIMETRACKER_DEFAULT_USER" env-default:"local"`
}

// WebhookConfig holds the identity-provider signing secret. The webhook
// route is only mounted when Secret is set.
type WebhookConfig struct {
	Secret string `yaml:"secret" env:"CLERK_WEBHOOK_SECRET"`
}

type CacheConfig struct {
	RedisURL string        `yaml:"redis_url" env:"TIMETRACKER_REDIS_URL"`
	TTL      time.Duration `yaml:"ttl" env:"TIMETRACKER_CACHE_TTL" env-default:"60s"`
}

type ClockConfig struct {
	Timezone string `yaml:"timezone" env:"TIMETRACKER_TIMEZONE" env-default:"Local"`
}

type MCPConfig struct {
	Enabled bool `yaml:"enabled" env:"TIMETRACKER_MCP_ENABLED" env-default:"true"`
}

// Load reads configuration from an optional YAML file and environment
// variables. An explicit path wins over TIMETRACKER_CONFIG_PATH.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(ConfigPathEnv)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver must be sqlite or postgres, got %q", c.DB.Driver)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if !c.Auth.Enabled && c.Auth.DefaultUser == "" {
		return fmt.Errorf("auth.default_user is required when auth is disabled")
	}
	return nil
}
