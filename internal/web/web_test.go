package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/querycache"
	"github.com/shelfmate/shelfmate/internal/statestore"
)

func setupHealthTestStore(t *testing.T) *statestore.Store {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := statestore.New(statestore.Config{
		DatabasePath: filepath.Join(dir, "state.db"),
		KeyFilePath:  filepath.Join(dir, "state-key"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when the state store is open", func(t *testing.T) {
		store := setupHealthTestStore(t)

		controller := NewHealthController(store, "1.0.0")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["state_store"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("reports a missing state store", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		controller := NewHealthController(nil, "1.0.0")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response HealthResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)

		assert.Equal(t, "not configured", response.Checks["state_store"])
	})

	t.Run("returns unhealthy when the state store is closed", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		dir := t.TempDir()
		store, err := statestore.New(statestore.Config{
			DatabasePath: filepath.Join(dir, "state.db"),
			KeyFilePath:  filepath.Join(dir, "state-key"),
		})
		require.NoError(t, err)
		store.Close()

		controller := NewHealthController(store, "1.0.0")

		router := gin.New()
		router.GET("/health", controller.Status)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

type fakeCatalogAPI struct {
	libraries []api.Library
	books     []api.Book
	clubs     []api.BookClubSummary

	lastLibraryID string
	lastParams    api.ListBooksParams
}

func (f *fakeCatalogAPI) ListLibraries(ctx context.Context) ([]api.Library, error) {
	return f.libraries, nil
}

func (f *fakeCatalogAPI) ListBooks(ctx context.Context, libraryID string, params api.ListBooksParams) ([]api.Book, int, error) {
	f.lastLibraryID = libraryID
	f.lastParams = params
	return f.books, len(f.books), nil
}

func (f *fakeCatalogAPI) ListBookClubs(ctx context.Context) ([]api.BookClubSummary, error) {
	return f.clubs, nil
}

type memorySelection struct {
	current string
}

func (m *memorySelection) CurrentLibrary() (string, error) {
	return m.current, nil
}

func (m *memorySelection) SaveCurrentLibrary(libraryID string) error {
	m.current = libraryID
	return nil
}

func setupCatalogTest(t *testing.T, client *fakeCatalogAPI) (*CatalogController, *librarystate.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	libraries := librarystate.New(client, querycache.New(), &memorySelection{})
	return NewCatalogController(client, libraries), libraries
}

func TestCatalogController_Books(t *testing.T) {
	t.Run("serves the selected library's catalog", func(t *testing.T) {
		client := &fakeCatalogAPI{
			libraries: []api.Library{{ID: "lib-1", Name: "Home"}},
			books:     []api.Book{{ID: "lb-1", Title: "Solaris"}},
		}
		controller, libraries := setupCatalogTest(t, client)
		require.NoError(t, libraries.Refresh(context.Background()))

		router := gin.New()
		router.GET("/api/books", controller.Books)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "lib-1", client.lastLibraryID)
		assert.Contains(t, w.Body.String(), "Solaris")
		assert.Contains(t, w.Body.String(), "Home")
	})

	t.Run("applies filter, sort, and pagination from query params", func(t *testing.T) {
		client := &fakeCatalogAPI{
			libraries: []api.Library{{ID: "lib-1", Name: "Home"}},
			books: []api.Book{
				{ID: "lb-1", Title: "Solaris", Authors: []string{"Stanislaw Lem"}, ReadingStatus: "finished"},
				{ID: "lb-2", Title: "Fiasco", Authors: []string{"Stanislaw Lem"}, ReadingStatus: "unread"},
				{ID: "lb-3", Title: "Dune", Authors: []string{"Frank Herbert"}, ReadingStatus: "unread"},
			},
		}
		controller, libraries := setupCatalogTest(t, client)
		require.NoError(t, libraries.Refresh(context.Background()))

		router := gin.New()
		router.GET("/api/books", controller.Books)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?author=stanislaw+lem&sort=title&direction=desc", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Total int        `json:"total"`
			Books []api.Book `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Total)
		require.Len(t, response.Books, 2)
		assert.Equal(t, "Solaris", response.Books[0].Title)
		assert.Equal(t, "Fiasco", response.Books[1].Title)
	})

	t.Run("paginates the filtered collection", func(t *testing.T) {
		client := &fakeCatalogAPI{
			libraries: []api.Library{{ID: "lib-1", Name: "Home"}},
			books: []api.Book{
				{ID: "lb-1", Title: "Annihilation"},
				{ID: "lb-2", Title: "Borne"},
				{ID: "lb-3", Title: "Dead Astronauts"},
			},
		}
		controller, libraries := setupCatalogTest(t, client)
		require.NoError(t, libraries.Refresh(context.Background()))

		router := gin.New()
		router.GET("/api/books", controller.Books)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?page=2&per-page=2", nil)
		router.ServeHTTP(w, req)

		var response struct {
			Total int        `json:"total"`
			Books []api.Book `json:"books"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 3, response.Total)
		require.Len(t, response.Books, 1)
		assert.Equal(t, "Dead Astronauts", response.Books[0].Title)
	})

	t.Run("rejects an unknown sort key", func(t *testing.T) {
		client := &fakeCatalogAPI{libraries: []api.Library{{ID: "lib-1", Name: "Home"}}}
		controller, libraries := setupCatalogTest(t, client)
		require.NoError(t, libraries.Refresh(context.Background()))

		router := gin.New()
		router.GET("/api/books", controller.Books)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books?sort=colour", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict when no library is selected", func(t *testing.T) {
		controller, _ := setupCatalogTest(t, &fakeCatalogAPI{})

		router := gin.New()
		router.GET("/api/books", controller.Books)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/books", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCatalogController_Libraries(t *testing.T) {
	client := &fakeCatalogAPI{
		libraries: []api.Library{
			{ID: "lib-1", Name: "Home"},
			{ID: "lib-2", Name: "Office"},
		},
	}
	controller, _ := setupCatalogTest(t, client)

	router := gin.New()
	router.GET("/api/libraries", controller.Libraries)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/libraries", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Office")
	// First library becomes the selection on a fresh profile
	assert.Contains(t, w.Body.String(), `"current": "lib-1"`)
}
