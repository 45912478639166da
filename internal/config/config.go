// Package config loads runtime settings from defaults, an optional config
// file, BREEDERS_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/erazemk/breeders/internal/db"
)

// EnvPrefix is prepended to every environment variable, e.g. BREEDERS_DB_PATH.
const EnvPrefix = "BREEDERS"

// Config is the typed view of all settings.
type Config struct {
	Addr string
	DB   DBConfig
	Log  LogConfig
}

// DBConfig selects and locates the database.
type DBConfig struct {
	Driver db.Dialect
	Path   string
	DSN    string
}

// LogConfig controls the optional log file and the minimum level.
type LogConfig struct {
	File      string
	Level     string
	MaxSizeMB int
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":3000")
	v.SetDefault("db.driver", string(db.DialectSQLite))
	v.SetDefault("db.path", "./pug_breeders.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
}

// New returns a viper instance with defaults and environment binding set up.
// configFile is read when non-empty.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}
	return v, nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr: v.GetString("addr"),
		DB: DBConfig{
			Driver: db.Dialect(strings.ToLower(v.GetString("db.driver"))),
			Path:   v.GetString("db.path"),
			DSN:    v.GetString("db.dsn"),
		},
		Log: LogConfig{
			File:      v.GetString("log.file"),
			Level:     v.GetString("log.level"),
			MaxSizeMB: v.GetInt("log.max_size_mb"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case db.DialectSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for the sqlite driver")
		}
	case db.DialectPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown db.driver %q (want sqlite or postgres)", c.DB.Driver)
	}

	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}
	return nil
}
