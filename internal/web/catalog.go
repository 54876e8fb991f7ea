package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/catalog"
	"github.com/shelfmate/shelfmate/internal/librarystate"
)

// CatalogAPI is the slice of the API client the catalog endpoints use
type CatalogAPI interface {
	ListBooks(ctx context.Context, libraryID string, params api.ListBooksParams) ([]api.Book, int, error)
	ListBookClubs(ctx context.Context) ([]api.BookClubSummary, error)
}

// CatalogController serves the selected library's catalog read-only
type CatalogController struct {
	client    CatalogAPI
	libraries *librarystate.Store
}

func NewCatalogController(client CatalogAPI, libraries *librarystate.Store) *CatalogController {
	return &CatalogController{
		client:    client,
		libraries: libraries,
	}
}

func (cc *CatalogController) Libraries(c *gin.Context) {
	if err := cc.libraries.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	var currentID string
	if current := cc.libraries.Current(); current != nil {
		currentID = current.ID
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"libraries": cc.libraries.Libraries(),
		"current":   currentID,
	})
}

func (cc *CatalogController) Books(c *gin.Context) {
	current := cc.libraries.Current()
	if current == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no library selected"})
		return
	}

	sortKey := catalog.SortKey(c.DefaultQuery("sort", string(catalog.SortTitle)))
	switch sortKey {
	case catalog.SortTitle, catalog.SortAuthor, catalog.SortAdded, catalog.SortPublished, catalog.SortPages:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort key"})
		return
	}
	direction := catalog.Direction(c.DefaultQuery("direction", string(catalog.Ascending)))
	switch direction {
	case catalog.Ascending, catalog.Descending:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown sort direction"})
		return
	}

	books, _, err := cc.client.ListBooks(c.Request.Context(), current.ID, api.ListBooksParams{})
	if err != nil {
		respondError(c, err)
		return
	}

	filter := catalog.Filter{
		LoanStatus:    c.Query("loan-status"),
		Condition:     c.Query("condition"),
		ReadingStatus: c.Query("reading-status"),
		Series:        c.Query("series"),
		Language:      c.Query("language"),
		Author:        c.Query("author"),
		Search:        c.Query("search"),
	}
	matched := filter.Apply(books)
	sorted := catalog.Sort(matched, sortKey, direction)

	page := 1
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page = n
	}
	perPage := 20
	if n, err := strconv.Atoi(c.Query("per-page")); err == nil && n > 0 {
		perPage = n
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"library": current.Name,
		"total":   len(matched),
		"page":    page,
		"books":   catalog.Paginate(sorted, page, perPage),
	})
}

func (cc *CatalogController) Clubs(c *gin.Context) {
	clubs, err := cc.client.ListBookClubs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"clubs": clubs})
}
