// Package api is the HTTP fetch layer for the books API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"readtrack/internal/models"
)

const (
	PopularBooksPath   = "/books/popular"
	DashboardStatsPath = "/dashboard/stats"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMalformedBody    = errors.New("malformed response body")
)

// Client reads the two dashboard resources from the books API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		validate:   validator.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// statsPayload mirrors models.DashboardStats with pointers so that missing
// fields can be told apart from zero values.
type statsPayload struct {
	MostPopularAuthor *models.Author  `json:"most_popular_author" validate:"required"`
	UserBooksRead     *int            `json:"user_books_read" validate:"required,gte=0"`
	UserTopAuthors    []models.Author `json:"user_top_authors" validate:"required,dive"`
}

// PopularBooks fetches the rank-ordered popular books list.
func (c *Client) PopularBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.getJSON(ctx, PopularBooksPath, &books); err != nil {
		return nil, err
	}
	if books == nil {
		return nil, fmt.Errorf("%w: %s: null list", ErrMalformedBody, PopularBooksPath)
	}
	for i := range books {
		if err := c.validate.Struct(&books[i]); err != nil {
			return nil, fmt.Errorf("%w: %s: book %d: %v", ErrMalformedBody, PopularBooksPath, i, err)
		}
	}
	return books, nil
}

// DashboardStats fetches the personal reading statistics.
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var payload statsPayload
	if err := c.getJSON(ctx, DashboardStatsPath, &payload); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedBody, DashboardStatsPath, err)
	}
	return &models.DashboardStats{
		MostPopularAuthor: *payload.MostPopularAuthor,
		UserBooksRead:     *payload.UserBooksRead,
		UserTopAuthors:    payload.UserTopAuthors,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %s", ErrUnexpectedStatus, path, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedBody, path, err)
	}
	return nil
}
