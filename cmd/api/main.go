package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/OpsDesk-io/opsdesk/internal/api"
	"github.com/OpsDesk-io/opsdesk/internal/auth"
	"github.com/OpsDesk-io/opsdesk/internal/config"
	"github.com/OpsDesk-io/opsdesk/internal/database"
	"github.com/OpsDesk-io/opsdesk/internal/storage"
	"github.com/OpsDesk-io/opsdesk/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	st := store.New(db, cfg.DatabaseType)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenDuration)

	var docs storage.Storage
	switch cfg.StorageBackend {
	case "s3":
		docs, err = storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
	default:
		docs, err = storage.NewLocal(cfg.StorageLocalDir)
	}
	if err != nil {
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	a, err := api.NewApi(cfg, st, tokens, docs)
	if err != nil {
		log.Fatalf("Failed to create API: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.Serve(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
