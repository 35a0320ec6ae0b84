package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"readtrack/internal/api"
	"readtrack/internal/collector"
	"readtrack/internal/database/relational"
	"readtrack/internal/models"
	"readtrack/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- MOCK STORE ---

type MockStore struct {
	mock.Mock
}

func (m *MockStore) PopularBooks(ctx context.Context, limit int) ([]models.Book, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Book), args.Error(1)
}

func (m *MockStore) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockStore) ListAuthors(ctx context.Context) ([]relational.AuthorRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]relational.AuthorRecord), args.Error(1)
}

func (m *MockStore) CreateAuthor(ctx context.Context, in relational.NewAuthor) (relational.AuthorRecord, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(relational.AuthorRecord), args.Error(1)
}

func (m *MockStore) ListBooks(ctx context.Context) ([]relational.BookRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]relational.BookRecord), args.Error(1)
}

func (m *MockStore) CreateBook(ctx context.Context, in relational.NewBook) (relational.BookRecord, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(relational.BookRecord), args.Error(1)
}

func (m *MockStore) ListReaders(ctx context.Context) ([]relational.ReaderRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]relational.ReaderRecord), args.Error(1)
}

func (m *MockStore) CreateReader(ctx context.Context, in relational.NewReader) (relational.ReaderRecord, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(relational.ReaderRecord), args.Error(1)
}

func (m *MockStore) RecordReading(ctx context.Context, readerID, bookID int64) error {
	args := m.Called(ctx, readerID, bookID)
	return args.Error(0)
}

// --- SETUP ---

var testOrigins = []string{"http://localhost:3000"}

func setupRouter(store relational.Store) http.Handler {
	return server.NewRouter(store, server.Options{PopularLimit: 10, CORSOrigins: testOrigins})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// --- TESTS ---

func TestRoot(t *testing.T) {
	w := do(t, setupRouter(new(MockStore)), http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book Reading App API","status":"active"}`, w.Body.String())
}

func TestPopularBooks(t *testing.T) {
	books := []models.Book{{ID: 1, Title: "It", Author: models.BookAuthor{ID: 3, Name: "Stephen King"}, ReaderCount: 2}}

	t.Run("DefaultLimit", func(t *testing.T) {
		store := new(MockStore)
		store.On("PopularBooks", mock.Anything, 10).Return(books, nil)

		w := do(t, setupRouter(store), http.MethodGet, "/books/popular", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got []models.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, books, got)
		store.AssertExpectations(t)
	})

	t.Run("QueryLimit", func(t *testing.T) {
		store := new(MockStore)
		store.On("PopularBooks", mock.Anything, 3).Return([]models.Book{}, nil)

		w := do(t, setupRouter(store), http.MethodGet, "/books/popular?limit=3", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
		store.AssertExpectations(t)
	})

	t.Run("BadLimit", func(t *testing.T) {
		store := new(MockStore)
		w := do(t, setupRouter(store), http.MethodGet, "/books/popular?limit=abc", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		store.AssertNotCalled(t, "PopularBooks", mock.Anything, mock.Anything)
	})

	t.Run("StoreError", func(t *testing.T) {
		store := new(MockStore)
		store.On("PopularBooks", mock.Anything, 10).Return(nil, errors.New("db down"))

		w := do(t, setupRouter(store), http.MethodGet, "/books/popular", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDashboardStats(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := new(MockStore)
		store.On("DashboardStats", mock.Anything).Return(&models.DashboardStats{
			MostPopularAuthor: models.Author{ID: 1, Name: "J.K. Rowling", TotalReaders: 8},
			UserBooksRead:     4,
			UserTopAuthors:    []models.Author{},
		}, nil)

		w := do(t, setupRouter(store), http.MethodGet, "/dashboard/stats", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{
			"most_popular_author": {"id": 1, "name": "J.K. Rowling", "total_readers": 8},
			"user_books_read": 4,
			"user_top_authors": []
		}`, w.Body.String())
	})

	t.Run("NoUsers", func(t *testing.T) {
		store := new(MockStore)
		store.On("DashboardStats", mock.Anything).Return(nil, relational.ErrNoReaders)

		w := do(t, setupRouter(store), http.MethodGet, "/dashboard/stats", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"detail":"No users found"}`, w.Body.String())
	})
}

func TestCreateEndpoints(t *testing.T) {
	t.Run("AuthorValidation", func(t *testing.T) {
		store := new(MockStore)
		w := do(t, setupRouter(store), http.MethodPost, "/authors/", map[string]string{"bio": "no name"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		store.AssertNotCalled(t, "CreateAuthor", mock.Anything, mock.Anything)
	})

	t.Run("Author", func(t *testing.T) {
		store := new(MockStore)
		in := relational.NewAuthor{Name: "Octavia Butler"}
		store.On("CreateAuthor", mock.Anything, in).Return(relational.AuthorRecord{ID: 6, Name: in.Name}, nil)

		w := do(t, setupRouter(store), http.MethodPost, "/authors/", in)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":6,"name":"Octavia Butler"}`, w.Body.String())
	})

	t.Run("BookUnknownAuthor", func(t *testing.T) {
		store := new(MockStore)
		in := relational.NewBook{Title: "Kindred", AuthorID: 99}
		store.On("CreateBook", mock.Anything, in).Return(relational.BookRecord{}, relational.ErrAuthorNotFound)

		w := do(t, setupRouter(store), http.MethodPost, "/books/", in)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ReaderBadEmail", func(t *testing.T) {
		store := new(MockStore)
		w := do(t, setupRouter(store), http.MethodPost, "/readers/", map[string]string{"name": "X", "email": "nope"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("ReaderDuplicate", func(t *testing.T) {
		store := new(MockStore)
		in := relational.NewReader{Name: "X", Email: "x@example.com"}
		store.On("CreateReader", mock.Anything, in).Return(relational.ReaderRecord{}, relational.ErrEmailTaken)

		w := do(t, setupRouter(store), http.MethodPost, "/readers/", in)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("RecordReading", func(t *testing.T) {
		store := new(MockStore)
		store.On("RecordReading", mock.Anything, int64(1), int64(2)).Return(nil)
		store.On("RecordReading", mock.Anything, int64(1), int64(9)).Return(relational.ErrBookNotFound)

		r := setupRouter(store)
		assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/readers/1/books/2", nil).Code)
		assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/readers/1/books/9", nil).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, do(t, r, http.MethodPost, "/readers/x/books/2", nil).Code)
	})
}

func TestCORS(t *testing.T) {
	r := setupRouter(new(MockStore))

	req := httptest.NewRequest(http.MethodOptions, "/books/popular", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestID(t *testing.T) {
	r := setupRouter(new(MockStore))

	w := do(t, r, http.MethodGet, "/", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestRateLimit(t *testing.T) {
	r := server.NewRouter(new(MockStore), server.Options{RateLimit: 0.001, RateBurst: 2})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/", nil).Code)
	w := do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"Too many requests"}`, w.Body.String())
}

// The dashboard's fetch layer against the real server over a seeded database.
func TestDashboardFetchEndToEnd(t *testing.T) {
	client, err := relational.NewInMemoryDB()
	require.NoError(t, err)
	repo := relational.NewRepo(client.DB())
	t.Cleanup(func() { _ = repo.Close() })

	ctx := context.Background()
	require.NoError(t, repo.Migrate(ctx))
	_, err = repo.Seed(ctx)
	require.NoError(t, err)

	srv := httptest.NewServer(setupRouter(repo))
	defer srv.Close()

	snap, err := collector.Collect(ctx, api.NewClient(srv.URL))
	require.NoError(t, err)

	require.Len(t, snap.PopularBooks, 10)
	assert.Equal(t, 5, snap.PopularBooks[0].ReaderCount)
	assert.Equal(t, "J.K. Rowling", snap.DashboardStats.MostPopularAuthor.Name)
	assert.Equal(t, 4, snap.DashboardStats.UserBooksRead)
}
