package api

import (
	"context"
	"strconv"
	"time"
)

// Series publication statuses
const (
	SeriesInProgress = "in_progress"
	SeriesFinished   = "finished"
)

// Series groups a library's books under one name. The server also mints
// series records lazily from the names found on the library's books.
type Series struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	LibraryID         string    `json:"library_id"`
	Description       string    `json:"description"`
	PublicationStatus string    `json:"publication_status"`
	CoverBookID       string    `json:"cover_book_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SeriesBook is one catalog entry inside a series
type SeriesBook struct {
	LibraryBookID string `json:"library_book_id"`
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	CoverImageURL string `json:"cover_image_url"`
	IsSeriesCover bool   `json:"is_series_cover"`
}

// SeriesReadingStatus aggregates the caller's reading status across a
// series: not_started, reading, or completed.
type SeriesReadingStatus struct {
	SeriesID      int    `json:"series_id"`
	ReadingStatus string `json:"reading_status"`
	TotalBooks    int    `json:"total_books"`
	ReadBooks     int    `json:"read_books"`
}

// SeriesCreateRequest creates a series in a library
type SeriesCreateRequest struct {
	Name              string `json:"name"`
	LibraryID         string `json:"library_id"`
	Description       string `json:"description,omitempty"`
	PublicationStatus string `json:"publication_status,omitempty"`
}

// SeriesUpdateRequest patches a series
type SeriesUpdateRequest struct {
	Name              *string `json:"name,omitempty"`
	Description       *string `json:"description,omitempty"`
	PublicationStatus *string `json:"publication_status,omitempty"`
	CoverBookID       *string `json:"cover_book_id,omitempty"`
}

func seriesPath(libraryID string, seriesID int) string {
	return "/libraries/" + libraryID + "/series/" + strconv.Itoa(seriesID)
}

// ListSeries fetches a library's series, including ones derived from
// book records that have no explicit series entry yet.
func (c *Client) ListSeries(ctx context.Context, libraryID string) ([]Series, error) {
	var series []Series
	if err := c.get(ctx, "/libraries/"+libraryID+"/series", nil, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// GetSeries fetches one series by id
func (c *Client) GetSeries(ctx context.Context, libraryID string, seriesID int) (*Series, error) {
	var series Series
	if err := c.get(ctx, seriesPath(libraryID, seriesID), nil, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// SeriesBooks fetches the catalog entries belonging to a series
func (c *Client) SeriesBooks(ctx context.Context, libraryID string, seriesID int) ([]SeriesBook, error) {
	var books []SeriesBook
	if err := c.get(ctx, seriesPath(libraryID, seriesID)+"/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetSeriesReadingStatus fetches the caller's aggregate status for a series
func (c *Client) GetSeriesReadingStatus(ctx context.Context, libraryID string, seriesID int) (*SeriesReadingStatus, error) {
	var status SeriesReadingStatus
	if err := c.get(ctx, seriesPath(libraryID, seriesID)+"/reading-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CreateSeries creates a series; the name must be unique per library
func (c *Client) CreateSeries(ctx context.Context, libraryID string, req SeriesCreateRequest) (*Series, error) {
	req.LibraryID = libraryID
	var series Series
	if err := c.post(ctx, "/libraries/"+libraryID+"/series", req, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// UpdateSeries patches a series
func (c *Client) UpdateSeries(ctx context.Context, libraryID string, seriesID int, req SeriesUpdateRequest) (*Series, error) {
	var series Series
	if err := c.patch(ctx, seriesPath(libraryID, seriesID), req, &series); err != nil {
		return nil, err
	}
	return &series, nil
}

// DeleteSeries removes a series and clears the series name from the
// library's books.
func (c *Client) DeleteSeries(ctx context.Context, libraryID string, seriesID int) error {
	return c.delete(ctx, seriesPath(libraryID, seriesID))
}
