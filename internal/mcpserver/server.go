package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"readtrack/internal/collector"
	"readtrack/internal/models"
	"readtrack/internal/output"
	"readtrack/ui/console"
)

// Server exposes the reading dashboard data as MCP tools.
type Server struct {
	mcpServer *mcp.Server
	provider  collector.DataProvider
}

// Config holds configuration for the MCP server.
type Config struct {
	ServerName    string
	ServerVersion string
}

// NewServer creates a new MCP server instance reading through provider.
func NewServer(cfg Config, provider collector.DataProvider) *Server {
	impl := &mcp.Implementation{
		Name:    cfg.ServerName,
		Version: cfg.ServerVersion,
	}

	s := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		provider:  provider,
	}
	s.registerTools()
	return s
}

// PopularBooksArgs defines the input for get_popular_books tool.
type PopularBooksArgs struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of books to return, 0 for all"`
}

// PopularBooksResult wraps the ranked books for tool output.
type PopularBooksResult struct {
	Books []models.Book `json:"books" jsonschema:"books ordered by number of readers, most read first"`
}

type StatsArgs struct{}

// ReportArgs defines the input for get_reading_report tool.
type ReportArgs struct {
	Section string `json:"section,omitempty" jsonschema:"books, dashboard or all (default)"`
}

type ReportResult struct {
	Report string `json:"report" jsonschema:"plain text report"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_popular_books",
		Description: "List the most popular books ranked by number of readers, with author and reader count.",
	}, s.handleGetPopularBooks)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard_stats",
		Description: "Get the current user's reading statistics: most popular author, number of books read and top authors.",
	}, s.handleGetDashboardStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_reading_report",
		Description: "Fetch books and statistics together and return the same report the dashboard shows, as plain text.",
	}, s.handleGetReadingReport)
}

func (s *Server) handleGetPopularBooks(ctx context.Context, _ *mcp.CallToolRequest, args PopularBooksArgs) (*mcp.CallToolResult, PopularBooksResult, error) {
	if args.Limit < 0 {
		return nil, PopularBooksResult{}, fmt.Errorf("invalid limit: %d", args.Limit)
	}

	books, err := s.provider.PopularBooks(ctx)
	if err != nil {
		slog.Warn("get_popular_books failed", "error", err)
		return nil, PopularBooksResult{}, fmt.Errorf("%s: %w", models.FetchFailedMessage, err)
	}
	if args.Limit > 0 && len(books) > args.Limit {
		books = books[:args.Limit]
	}
	return nil, PopularBooksResult{Books: books}, nil
}

func (s *Server) handleGetDashboardStats(ctx context.Context, _ *mcp.CallToolRequest, _ StatsArgs) (*mcp.CallToolResult, *models.DashboardStats, error) {
	stats, err := s.provider.DashboardStats(ctx)
	if err != nil {
		slog.Warn("get_dashboard_stats failed", "error", err)
		return nil, nil, fmt.Errorf("%s: %w", models.FetchFailedMessage, err)
	}
	return nil, stats, nil
}

// handleGetReadingReport runs a full fetch cycle, so either both sections
// are reported or the call fails.
func (s *Server) handleGetReadingReport(ctx context.Context, _ *mcp.CallToolRequest, args ReportArgs) (*mcp.CallToolResult, ReportResult, error) {
	section := strings.ToLower(strings.TrimSpace(args.Section))
	switch section {
	case "", "all", "books", "dashboard":
	default:
		return nil, ReportResult{}, fmt.Errorf("invalid section: %s (must be books, dashboard or all)", args.Section)
	}

	snap, err := collector.Collect(ctx, s.provider)
	if err != nil {
		return nil, ReportResult{}, fmt.Errorf("%s: %w", models.FetchFailedMessage, err)
	}

	books := output.BuildBooks(snap.PopularBooks)
	dash := output.BuildDashboard(*snap.DashboardStats)

	var b strings.Builder
	switch section {
	case "books":
		console.PrintBooks(&b, books)
	case "dashboard":
		console.PrintDashboard(&b, dash)
	default:
		console.PrintPlain(&b, books, dash)
	}
	return nil, ReportResult{Report: b.String()}, nil
}

// Start starts the MCP server using stdio transport.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("starting readtrack MCP server on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
