package main

import (
	"context"
	"flag"
	"log"

	"github.com/go-kratos/kratos/v2"

	"github.com/Tranv-IA/ContenAI/internal/config"
	"github.com/Tranv-IA/ContenAI/internal/engine"
	"github.com/Tranv-IA/ContenAI/internal/logger"
	"github.com/Tranv-IA/ContenAI/internal/server"
	"github.com/Tranv-IA/ContenAI/internal/storage"
)

var flagconf string

func init() {
	flag.StringVar(&flagconf, "conf", "config.yaml", "config path, eg: -conf config.yaml")
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger.Log.Info("starting ContenAI trend engine...")

	ctx := context.Background()

	// Persistence is optional; the engine runs stateless without it.
	var store *storage.Storage
	if cfg.DB.Host != "" {
		store, err = storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Fatalf("storage init failed: %v", err)
		}
		defer store.Close()
	}

	eng, err := engine.NewFromConfig(ctx, cfg, store)
	if err != nil {
		logger.Log.Fatalf("engine init failed: %v", err)
	}

	srv := server.NewHTTPServer(cfg.Server, eng)

	app := kratos.New(
		kratos.Name("contenai"),
		kratos.Server(srv),
	)

	logger.Log.Infof("listening on %s", cfg.Server.Addr)
	if err := app.Run(); err != nil {
		logger.Log.Fatalf("server exited: %v", err)
	}
}
