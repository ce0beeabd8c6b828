package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/iudanet/transconnection/internal/client/api"
	"github.com/iudanet/transconnection/internal/client/auth"
	"github.com/iudanet/transconnection/internal/client/cli"
	"github.com/iudanet/transconnection/internal/client/device"
	"github.com/iudanet/transconnection/internal/client/history"
	"github.com/iudanet/transconnection/internal/client/iocli"
	"github.com/iudanet/transconnection/internal/client/preferences"
	"github.com/iudanet/transconnection/internal/client/session"
	"github.com/iudanet/transconnection/internal/client/speech"
	"github.com/iudanet/transconnection/internal/client/storage"
	"github.com/iudanet/transconnection/internal/client/storage/boltdb"
	"github.com/iudanet/transconnection/internal/client/storage/sqlite"
	"github.com/iudanet/transconnection/internal/client/subscription"
	"github.com/iudanet/transconnection/internal/client/translation"
	"github.com/iudanet/transconnection/internal/client/users"
	"github.com/iudanet/transconnection/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	stdio := iocli.NewStdio()

	cfg, args, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.PrintUsage(stdio)
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if cfg.ShowVersion {
		printVersion()
		return 0
	}

	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	sess := session.New(store)
	dir := users.New(store, sess, users.WithLogger(logger))

	apiClient := api.NewClient(cfg.BaseURL, cfg.APIKey,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithMinInterval(cfg.MinRequestInterval),
		api.WithMaxRetries(cfg.MaxRetries),
		api.WithLogger(logger),
	)

	var player speech.Player = speech.NopPlayer{}
	if fields := strings.Fields(cfg.Player); len(fields) > 0 {
		player = speech.CommandPlayer{Command: fields[0], Args: fields[1:]}
	}

	app := cli.New(stdio, cli.Deps{
		Users:   dir,
		Auth:    auth.NewService(dir, sess, logger),
		Meter:   subscription.NewMeter(dir, subscription.WithLogger(logger)),
		History: history.New(store, logger),
		Theme:   preferences.New(store),
		Device:  device.NewStoredProvider(store, cfg.DeviceID),
		Translator: translation.New(apiClient,
			translation.WithModel(cfg.ChatModel),
			translation.WithLogger(logger),
		),
		Speech: speech.New(apiClient,
			speech.WithModels(cfg.TranscriptionModel, cfg.SpeechModel),
			speech.WithCacheDir(cfg.CacheDir),
			speech.WithPlayer(player),
			speech.WithLogger(logger),
		),
		Logger: logger,
	})

	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) || errors.Is(err, cli.ErrUsage) {
			cli.PrintUsage(stdio)
		}
		return 1
	}
	return 0
}

// newLogger создает текстовый логгер с уровнем из конфигурации
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// openStore открывает выбранный backend хранилища
func openStore(ctx context.Context, cfg *config.Config) (storage.KeyValueStore, error) {
	if cfg.Backend == config.BackendSQLite {
		s, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	s, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func printVersion() {
	fmt.Printf("TransConnection Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
