package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"GolfPassport/internal/catalog"
	"GolfPassport/internal/cli"
	"GolfPassport/internal/config"
	"GolfPassport/internal/logger"
	"GolfPassport/internal/recorder"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		l := logger.New("info", false)
		l.Error().Err(err).Str("path", cfgPath).Msg("load config")
		return 1
	}
	if err := cfg.Validate(); err != nil {
		l := logger.New("info", false)
		l.Error().Err(err).Msg("config validation")
		return 1
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Console)

	// Load catalog
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.Catalog.Path).Msg("load catalog")
		return 1
	}
	if _, ok := cat.Package(cfg.Membership.PackageID); !ok {
		log.Error().Str("package", cfg.Membership.PackageID).Msg("configured package is not in the catalog")
		return 1
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := cli.NewRootCommand(&cli.App{
		Config:   cfg,
		Catalog:  cat,
		Recorder: rec,
		Log:      log,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
