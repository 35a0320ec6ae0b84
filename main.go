package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"readtrack/internal/api"
	"readtrack/internal/collector"
	"readtrack/internal/config"
	"readtrack/internal/models"
	"readtrack/internal/output"
	"readtrack/ui/console"
	"readtrack/ui/tui"
)

func main() {
	once := flag.Bool("once", false, "fetch once, print a report to stdout and exit")
	apiURL := flag.String("api", "", "override the books API base URL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg = cfg.WithAPIBaseURL(*apiURL)
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Use the interface to allow for different fetch implementations
	var provider collector.DataProvider = api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.RequestTimeout))

	if *once {
		config.SetupLogger(cfg, os.Stderr)
		os.Exit(report(ctx, provider))
	}

	// The TUI owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	config.SetupLogger(cfg, logFile)

	if err := tui.Start(ctx, provider); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func report(ctx context.Context, provider collector.DataProvider) int {
	snap, err := collector.Collect(ctx, provider)
	if err != nil {
		fmt.Fprintln(os.Stderr, models.FetchFailedMessage)
		return 1
	}
	console.Print(os.Stdout, output.BuildBooks(snap.PopularBooks), output.BuildDashboard(*snap.DashboardStats))
	return 0
}
