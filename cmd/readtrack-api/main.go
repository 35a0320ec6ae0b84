package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"readtrack/internal/config"
	"readtrack/internal/database/relational"
	"readtrack/internal/server"
)

func main() {
	addr := flag.String("addr", "", "listen address (overrides READTRACK_SERVER_ADDR)")
	dbPath := flag.String("db", "", "DuckDB file (overrides READTRACK_DUCKDB_PATH, empty for in-memory)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg = cfg.WithServerAddr(*addr)
	}
	if *dbPath != "" {
		cfg = cfg.WithDuckDBPath(*dbPath)
	}
	config.SetupLogger(cfg, os.Stderr)

	if err := run(cfg); err != nil {
		slog.Error("api server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := relational.Open(cfg.DuckDBPath)
	if err != nil {
		return err
	}
	repo := relational.NewRepo(client.DB())
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	if cfg.SeedSampleData {
		if _, err := repo.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	router := server.NewRouter(repo, server.Options{
		PopularLimit: cfg.PopularLimit,
		CORSOrigins:  cfg.CORSOrigins,
		Debug:        cfg.SlogLevel() == slog.LevelDebug,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
	})
	return server.Run(ctx, cfg.ServerAddr, router)
}
