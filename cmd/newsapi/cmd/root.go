// Package cmd holds the newsapi cobra commands.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-api/internal/config"
	"github.com/tbourn/go-news-api/internal/repo"
	"github.com/tbourn/go-news-api/internal/sysutil"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "newsapi",
	Short: "News REST API",
	Long: `newsapi serves topics, articles, comments and users over JSON.

Configuration is read from the environment (and an optional .env file).

Examples:
  newsapi serve                     # start the HTTP server
  newsapi seed --dataset test       # reset the store to the test fixtures`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading configuration (missing file is ignored)")
}

// loadConfig reads the optional dotenv file, then the environment, and
// configures the global logger.
func loadConfig() (config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	sysutil.SetupLogger(sysutil.LogOptions{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Out:     os.Stderr,
		Service: cfg.OTEL.ServiceName,
		Version: version(),
	})
	return cfg, nil
}

// openStore opens and migrates the SQLite store at path.
func openStore(path string, traced bool) (*gorm.DB, error) {
	db, err := repo.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if traced {
		if err := repo.EnableTracing(db); err != nil {
			_ = repo.Close(db)
			return nil, fmt.Errorf("db tracing: %w", err)
		}
	}
	if err := repo.AutoMigrate(db); err != nil {
		_ = repo.Close(db)
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Debug().Str("path", path).Msg("store ready")
	return db, nil
}

func closeStore(db *gorm.DB) {
	if err := repo.Close(db); err != nil {
		log.Error().Err(err).Msg("close store")
	}
}
