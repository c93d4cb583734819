package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Defaults  DefaultsConfig  `yaml:"defaults"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// TailscaleConfig enables the tsnet listener. When enabled, callers are
// identified by their tailnet login instead of the X-User-ID header.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DefaultsConfig overrides the fallbacks used when a user or a session does
// not say otherwise. Zero keeps the built-in value.
type DefaultsConfig struct {
	BodyWeightKg    float64 `yaml:"body_weight_kg"`
	DurationMinutes float64 `yaml:"duration_minutes"`
	TargetReps      int     `yaml:"target_reps"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix LIFTLOG_ and underscore-separated paths:
//
//	LIFTLOG_SERVER_HOST, LIFTLOG_SERVER_PORT,
//	LIFTLOG_DB_HOST, LIFTLOG_DB_PORT, LIFTLOG_DB_NAME,
//	LIFTLOG_DB_USER, LIFTLOG_DB_PASSWORD, LIFTLOG_DB_SSLMODE,
//	LIFTLOG_AUTH_API_KEY,
//	LIFTLOG_TAILSCALE_ENABLED, LIFTLOG_TAILSCALE_HOSTNAME, LIFTLOG_TAILSCALE_STATE_DIR,
//	LIFTLOG_DEFAULT_BODY_WEIGHT_KG
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Tailscale.Enabled && cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "liftlog"
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFTLOG_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFTLOG_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFTLOG_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFTLOG_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFTLOG_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFTLOG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("LIFTLOG_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("LIFTLOG_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("LIFTLOG_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("LIFTLOG_DEFAULT_BODY_WEIGHT_KG"); v != "" {
		if kg, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Defaults.BodyWeightKg = kg
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Defaults.BodyWeightKg < 0 || c.Defaults.DurationMinutes < 0 || c.Defaults.TargetReps < 0 {
		return fmt.Errorf("defaults must not be negative")
	}
	return nil
}
