package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"readtrack/internal/api"
	"readtrack/internal/collector"
	"readtrack/internal/config"
	"readtrack/internal/database/relational"
	"readtrack/internal/mcpserver"
)

func main() {
	local := flag.Bool("local", false, "serve from a DuckDB catalogue instead of the HTTP API")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the MCP protocol
	config.SetupLogger(cfg, os.Stderr)

	if err := run(cfg, *local); err != nil {
		slog.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, local bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var provider collector.DataProvider
	if local {
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
				return err
			}
		}
		provider = relational.NewLocalProvider(repo, cfg.PopularLimit)
	} else {
		provider = api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))
	}

	s := mcpserver.NewServer(mcpserver.Config{
		ServerName:    cfg.MCPServerName,
		ServerVersion: cfg.MCPServerVersion,
	}, provider)
	return s.Start(ctx)
}
