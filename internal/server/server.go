// Package server exposes the books API over HTTP for local development.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"readtrack/internal/database/relational"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	requestTimeout  = 5 * time.Second
	requestIDHeader = "X-Request-ID"
)

type Options struct {
	PopularLimit int
	CORSOrigins  []string
	Debug        bool
	// RateLimit caps requests per second across all clients; 0 disables it.
	RateLimit float64
	RateBurst int
}

type Handler struct {
	store        relational.Store
	popularLimit int
}

func NewHandler(store relational.Store, popularLimit int) *Handler {
	if popularLimit <= 0 {
		popularLimit = relational.DefaultPopularLimit
	}
	return &Handler{store: store, popularLimit: popularLimit}
}

// NewRouter wires every route onto a fresh gin engine.
func NewRouter(store relational.Store, opts Options) *gin.Engine {
	if opts.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID())
	if opts.Debug {
		r.Use(gin.Logger())
	}
	r.Use(CORS(opts.CORSOrigins))
	if opts.RateLimit > 0 {
		r.Use(RateLimit(rate.NewLimiter(rate.Limit(opts.RateLimit), max(opts.RateBurst, 1))))
	}

	h := NewHandler(store, opts.PopularLimit)
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/books/popular", h.PopularBooks)
	r.GET("/dashboard/stats", h.DashboardStats)

	r.GET("/authors/", h.ListAuthors)
	r.POST("/authors/", h.CreateAuthor)
	r.GET("/books/", h.ListBooks)
	r.POST("/books/", h.CreateBook)
	r.GET("/readers/", h.ListReaders)
	r.POST("/readers/", h.CreateReader)
	r.POST("/readers/:reader_id/books/:book_id", h.RecordReading)
}

// CORS allows browser clients from the listed origins.
func CORS(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && slices.Contains(origins, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "*")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID tags every request with an id, reusing the caller's when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests"})
			return
		}
		c.Next()
	}
}

func detail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"detail": msg})
}

func internalError(c *gin.Context, op string, err error) {
	slog.Error("request failed",
		"op", op,
		"path", c.FullPath(),
		"request_id", c.GetString("request_id"),
		"error", err,
	)
	detail(c, http.StatusInternalServerError, "Internal server error")
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Book Reading App API", "status": "active"})
}

func (h *Handler) PopularBooks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	limit := h.popularLimit
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			detail(c, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	books, err := h.store.PopularBooks(ctx, limit)
	if err != nil {
		internalError(c, "popular_books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) DashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	stats, err := h.store.DashboardStats(ctx)
	if errors.Is(err, relational.ErrNoReaders) {
		detail(c, http.StatusNotFound, "No users found")
		return
	}
	if err != nil {
		internalError(c, "dashboard_stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.store.ListAuthors(c.Request.Context())
	if err != nil {
		internalError(c, "list_authors", err)
		return
	}
	c.JSON(http.StatusOK, authors)
}

func (h *Handler) CreateAuthor(c *gin.Context) {
	var in relational.NewAuthor
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	author, err := h.store.CreateAuthor(c.Request.Context(), in)
	if err != nil {
		internalError(c, "create_author", err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.store.ListBooks(c.Request.Context())
	if err != nil {
		internalError(c, "list_books", err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *Handler) CreateBook(c *gin.Context) {
	var in relational.NewBook
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	book, err := h.store.CreateBook(c.Request.Context(), in)
	if errors.Is(err, relational.ErrAuthorNotFound) {
		detail(c, http.StatusNotFound, "Author not found")
		return
	}
	if err != nil {
		internalError(c, "create_book", err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *Handler) ListReaders(c *gin.Context) {
	readers, err := h.store.ListReaders(c.Request.Context())
	if err != nil {
		internalError(c, "list_readers", err)
		return
	}
	c.JSON(http.StatusOK, readers)
}

func (h *Handler) CreateReader(c *gin.Context) {
	var in relational.NewReader
	if err := c.ShouldBindJSON(&in); err != nil {
		detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	reader, err := h.store.CreateReader(c.Request.Context(), in)
	if errors.Is(err, relational.ErrEmailTaken) {
		detail(c, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		internalError(c, "create_reader", err)
		return
	}
	c.JSON(http.StatusOK, reader)
}

func (h *Handler) RecordReading(c *gin.Context) {
	readerID, err1 := strconv.ParseInt(c.Param("reader_id"), 10, 64)
	bookID, err2 := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err1 != nil || err2 != nil {
		detail(c, http.StatusUnprocessableEntity, "ids must be integers")
		return
	}

	err := h.store.RecordReading(c.Request.Context(), readerID, bookID)
	switch {
	case errors.Is(err, relational.ErrReaderNotFound):
		detail(c, http.StatusNotFound, "Reader not found")
	case errors.Is(err, relational.ErrBookNotFound):
		detail(c, http.StatusNotFound, "Book not found")
	case err != nil:
		internalError(c, "record_reading", err)
	default:
		c.JSON(http.StatusOK, gin.H{"reader_id": readerID, "book_id": bookID})
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("api server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
