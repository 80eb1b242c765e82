// Command techboard is the interactive console client for the techboard
// blog API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/techboard/techboard/internal/api"
	"github.com/techboard/techboard/internal/auth"
	"github.com/techboard/techboard/internal/cli"
	"github.com/techboard/techboard/internal/config"
	"github.com/techboard/techboard/internal/draft"
	"github.com/techboard/techboard/internal/localstore"
	"github.com/techboard/techboard/internal/logger"
	"github.com/techboard/techboard/internal/query"
	"github.com/techboard/techboard/internal/render"
	"github.com/techboard/techboard/internal/repository"
	"github.com/techboard/techboard/internal/theme"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("TECHBOARD_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := config.LoadConfig(configPath); err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}
	cfg := config.AppConfig

	log := logger.New(cfg.Logging.Level)
	config.SetLogger(log)
	query.SetLogger(log)
	repository.SetLogger(log)
	localstore.SetLogger(log)
	auth.SetLogger(log)
	theme.SetLogger(log)
	draft.SetLogger(log)
	render.SetLogger(log)

	storage, err := localstore.Open(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local storage")
	}
	defer storage.Close()

	client, err := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build the API client")
	}

	cache := query.NewCache()
	repos := repository.NewSet(client, cache)

	provider := auth.NewLocalProvider(cfg.Auth.Username, cfg.Auth.Password)
	authStore := auth.NewStore(storage, provider)
	if err := authStore.Rehydrate(); err != nil {
		log.Warn().Err(err).Msg("Could not restore the previous session")
	}

	drafts := draft.NewStore(storage)

	app := cli.NewApp(cfg, log, repos, authStore, nil, drafts)

	// The UI store applies the persisted theme into the app before the first
	// menu paints.
	uiStore := theme.NewStore(storage, app.ApplyTheme)
	app.SetUI(uiStore)
	if err := uiStore.Rehydrate(); err != nil {
		log.Warn().Err(err).Msg("Could not restore the ui state")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Console exited with an error")
	}
}
