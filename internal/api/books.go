package api

import (
	"context"
	"net/url"
	"strconv"
)

// ListBooksParams narrows the initial catalog fetch. All further filtering
// and sorting happens client-side over the fetched collection.
type ListBooksParams struct {
	Query string
	Skip  int
	Limit int
}

type listBooksResponse struct {
	Items []libraryBookDetail `json:"items"`
	Total int                 `json:"total"`
}

// BookFormValues is the editable surface of a catalog entry. The server
// splits it across the shared record, the library copy, and personal data;
// the split happens here so callers work with one flat form.
type BookFormValues struct {
	Title           string
	Authors         []string
	Subjects        []string
	Description     string
	Publisher       string
	PublishDate     string
	ISBN            string
	Language        []string
	CoverURL        string
	MetadataStatus  string
	OwnershipStatus string
	Condition       string
	ShelfLocation   string
	BookType        string
	Series          string
	LibraryNotes    string
	LoanStatus      string
	ReadingStatus   string
	Grade           *int
	PersonalNotes   string
}

func (v BookFormValues) payload() map[string]interface{} {
	book := map[string]interface{}{
		"title":           v.Title,
		"metadata_status": v.MetadataStatus,
	}
	if len(v.Authors) > 0 {
		book["authors"] = v.Authors
	}
	if v.ISBN != "" {
		book["isbn"] = v.ISBN
	}
	if v.Publisher != "" {
		book["publisher"] = v.Publisher
	}
	if v.Description != "" {
		book["description"] = v.Description
	}
	if v.PublishDate != "" {
		book["publish_date"] = v.PublishDate
	}
	if len(v.Subjects) > 0 {
		book["subjects"] = v.Subjects
	}
	if len(v.Language) > 0 {
		book["language"] = v.Language
	}
	if v.CoverURL != "" {
		book["cover_url"] = v.CoverURL
	}

	libraryBook := map[string]interface{}{
		"ownership_status": v.OwnershipStatus,
		"loan_status":      v.LoanStatus,
	}
	if v.Condition != "" {
		libraryBook["condition"] = v.Condition
	}
	if v.ShelfLocation != "" {
		libraryBook["physical_location"] = v.ShelfLocation
	}
	if v.BookType != "" {
		libraryBook["book_type"] = v.BookType
	}
	if v.Series != "" {
		libraryBook["series"] = v.Series
	}
	if v.LibraryNotes != "" {
		libraryBook["library_notes"] = v.LibraryNotes
	}

	personal := map[string]interface{}{}
	if v.ReadingStatus != "" {
		personal["reading_status"] = v.ReadingStatus
	}
	if v.Grade != nil {
		personal["grade"] = *v.Grade
	}
	if v.PersonalNotes != "" {
		personal["personal_notes"] = v.PersonalNotes
	}

	return map[string]interface{}{
		"book":          book,
		"library_book":  libraryBook,
		"personal_data": personal,
	}
}

// ListBooks fetches a library's catalog, flattened for client-side use
func (c *Client) ListBooks(ctx context.Context, libraryID string, params ListBooksParams) ([]Book, int, error) {
	q := url.Values{}
	if params.Query != "" {
		q.Set("q", params.Query)
	}
	if params.Skip > 0 {
		q.Set("skip", strconv.Itoa(params.Skip))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var resp listBooksResponse
	if err := c.get(ctx, "/libraries/"+libraryID+"/books", q, &resp); err != nil {
		return nil, 0, err
	}

	books := make([]Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		books = append(books, toBook(item))
	}
	return books, resp.Total, nil
}

// CreateBook adds a catalog entry to a library
func (c *Client) CreateBook(ctx context.Context, libraryID string, values BookFormValues) (*Book, error) {
	var detail libraryBookDetail
	if err := c.post(ctx, "/libraries/"+libraryID+"/books", values.payload(), &detail); err != nil {
		return nil, err
	}
	book := toBook(detail)
	return &book, nil
}

// UpdateBook patches a catalog entry
func (c *Client) UpdateBook(ctx context.Context, libraryID, libraryBookID string, values BookFormValues) (*Book, error) {
	var detail libraryBookDetail
	if err := c.patch(ctx, "/libraries/"+libraryID+"/books/"+libraryBookID, values.payload(), &detail); err != nil {
		return nil, err
	}
	book := toBook(detail)
	return &book, nil
}

// DeleteBook removes a catalog entry from a library
func (c *Client) DeleteBook(ctx context.Context, libraryID, libraryBookID string) error {
	return c.delete(ctx, "/libraries/"+libraryID+"/books/"+libraryBookID)
}
