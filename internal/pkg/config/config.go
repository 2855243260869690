package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Driver names for the spatial backend. Selection happens once at startup;
// nothing downstream of main branches on these.
const (
	DriverPostgres   = "postgres"
	DriverSpatiaLite = "spatialite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Valkey   ValkeyConfig   `mapstructure:"valkey"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// DatabaseConfig selects and configures the spatial backend. Driver is
// "spatialite" (embedded, development) or "postgres" (PostGIS, production).
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`

	// PostGIS connection settings.
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`

	// SpatiaLite file settings.
	Path        string `mapstructure:"path"`
	BusyTimeout int    `mapstructure:"busy_timeout"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// NATSConfig configures the optional event publisher. An empty URL
// disables it.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// ValkeyConfig configures the optional read cache. An empty address
// disables it.
type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	// .env files are a development convenience; missing is fine.
	_ = godotenv.Load()

	v := viper.New()

	// Defaults: embedded engine out of the box, PostGIS via config.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("database.driver", DriverSpatiaLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "puntu")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "puntu")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "./data/puntu.db")
	v.SetDefault("database.busy_timeout", 5)
	v.SetDefault("nats.url", "")
	v.SetDefault("valkey.addr", "")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: PUNTU_DATABASE_DRIVER → database.driver
	v.SetEnvPrefix("PUNTU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	case DriverSpatiaLite:
		if c.Database.Path == "" {
			errs = append(errs, "database.path is required")
		}
		if c.Database.BusyTimeout <= 0 {
			errs = append(errs, "database.busy_timeout must be positive")
		}
	default:
		errs = append(errs, fmt.Sprintf("database.driver must be %q or %q, got %q",
			DriverPostgres, DriverSpatiaLite, c.Database.Driver))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
