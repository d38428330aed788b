package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"comics/catalog"
	"comics/config"
)

var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "comics",
		Short:         "Comics catalog, reader and Mr. Effort assistant",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file
			envErr := godotenv.Load()

			var err error
			logger, err = newLogger(config.GetLogLevel())
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if envErr != nil {
				logger.Debug(".env file not found, using environment variables")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	root.AddCommand(serveCmd())
	root.AddCommand(askCmd())
	root.AddCommand(catalogCmd())
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// loadCatalog reads CATALOG_PATH when set, otherwise the embedded catalog.
// The returned path is empty for the embedded catalog.
func loadCatalog() (*catalog.Store, string, error) {
	path := config.GetCatalogPath()
	if path == "" {
		return catalog.NewStore(catalog.Default()), "", nil
	}
	c, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	return catalog.NewStore(c), path, nil
}
