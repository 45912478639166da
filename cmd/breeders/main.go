package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erazemk/breeders/internal/config"
	"github.com/erazemk/breeders/internal/db"
	"github.com/erazemk/breeders/internal/logging"
)

var (
	configFile string
	cfg        config.Config

	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "breeders",
	Short: "Pug breeder directory",
	Long: `A small directory of pug breeders: a JSON API over a single breeders
table plus a browser page for listing, searching and editing entries.

Settings come from flags, BREEDERS_* environment variables (e.g.
BREEDERS_DB_PATH) and an optional config file, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := config.New(configFile)
		if err != nil {
			return err
		}
		if err := bindFlags(cmd, v); err != nil {
			return err
		}

		cfg, err = config.Load(v)
		if err != nil {
			return err
		}

		closeLog, err = logging.Setup(logging.Options{
			Level:     cfg.Log.Level,
			File:      cfg.Log.File,
			MaxSizeMB: cfg.Log.MaxSizeMB,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"addr":      "addr",
	"db":        "db.path",
	"db-driver": "db.driver",
	"dsn":       "db.dsn",
	"log":       "log.file",
	"log-level": "log.level",
}

// bindFlags makes every flag the user set on cmd override the loaded value.
func bindFlags(cmd *cobra.Command, target *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := target.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// openDatabase opens the configured database and makes sure the schema is
// current.
func openDatabase(c config.DBConfig) (*db.DB, error) {
	var (
		database *db.DB
		err      error
	)
	switch c.Driver {
	case db.DialectPostgres:
		database, err = db.OpenPostgres(c.DSN)
	default:
		database, err = db.Open(c.Path)
	}
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}
	return database, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml, toml or json)")
	pf.String("db", "./pug_breeders.db", "SQLite database path")
	pf.String("db-driver", "sqlite", "database driver: sqlite or postgres")
	pf.String("dsn", "", "PostgreSQL connection string")
	pf.String("log", "", "also write logs to this file (rotated)")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
