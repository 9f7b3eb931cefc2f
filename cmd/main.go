package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/gbx/internal/repositories"
	"github.com/desertthunder/gbx/internal/services"
	"github.com/desertthunder/gbx/internal/session"
	"github.com/desertthunder/gbx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	apiService := services.NewAPIService(config.API.BaseURL, nil)
	client := services.NewClient(apiService)

	opts := RunnerOpts{
		Config: config,
		API:    apiService,
		Client: client,
		Logger: logger,
	}

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		opts.DB = db
		opts.Store = session.New(repositories.NewKVRepository(db), client, logger)
		opts.Exports = repositories.NewExportRepository(db)
	} else {
		logger.Warn("database unavailable, session and exports disabled", "error", err)
	}

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "gbx",
		Usage:    "Manage your GoBarber schedule from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
