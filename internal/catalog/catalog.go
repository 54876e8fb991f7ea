// Package catalog filters, sorts, and pages a fetched book collection
// entirely client-side. The server is only asked for the initial
// collection; every refinement here operates on the in-memory slice.
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/shelfmate/shelfmate/internal/api"
)

// SortKey selects the attribute books are ordered by
type SortKey string

const (
	SortTitle     SortKey = "title"
	SortAuthor    SortKey = "author"
	SortAdded     SortKey = "added"
	SortPublished SortKey = "published"
	SortPages     SortKey = "pages"
)

// Direction is the sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Sort returns a new slice ordered by key and direction. The sort is
// stable: ties keep their original fetch order. Lexical keys compare
// case-insensitively; missing values order last regardless of direction.
func Sort(books []api.Book, key SortKey, dir Direction) []api.Book {
	sorted := make([]api.Book, len(books))
	copy(sorted, books)

	less := lessFunc(key)
	if less == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]

		// Missing values order last regardless of direction
		aMissing, bMissing := missingValue(key, a), missingValue(key, b)
		if aMissing || bMissing {
			return !aMissing && bMissing
		}

		if dir == Descending {
			a, b = b, a
		}
		return less(a, b)
	})
	return sorted
}

func missingValue(key SortKey, b *api.Book) bool {
	switch key {
	case SortAuthor:
		return len(b.Authors) == 0
	case SortPublished:
		return b.PublishDate == ""
	case SortPages:
		return b.PageCount == nil
	default:
		return false
	}
}

func lessFunc(key SortKey) func(a, b *api.Book) bool {
	switch key {
	case SortTitle:
		return func(a, b *api.Book) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortAuthor:
		return func(a, b *api.Book) bool {
			return firstAuthor(a) < firstAuthor(b)
		}
	case SortAdded:
		return func(a, b *api.Book) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	case SortPublished:
		// Publish dates are ISO-formatted strings, so lexical order is
		// chronological
		return func(a, b *api.Book) bool {
			return a.PublishDate < b.PublishDate
		}
	case SortPages:
		return func(a, b *api.Book) bool {
			return *a.PageCount < *b.PageCount
		}
	default:
		return nil
	}
}

func firstAuthor(b *api.Book) string {
	if len(b.Authors) == 0 {
		return ""
	}
	return strings.ToLower(b.Authors[0])
}

// Filter holds the active facets. Empty facets match everything; set
// facets combine with logical AND.
type Filter struct {
	LoanStatus    string
	Condition     string
	ReadingStatus string
	Series        string
	Language      string
	Author        string
	// Search is matched case-insensitively as a substring of the title,
	// any author, or any subject
	Search string
}

// Apply returns the books matching every set facet, preserving order.
// The result is always a subset of the input and applying the same filter
// twice yields the same set.
func (f Filter) Apply(books []api.Book) []api.Book {
	matched := make([]api.Book, 0, len(books))
	for _, book := range books {
		if f.matches(&book) {
			matched = append(matched, book)
		}
	}
	return matched
}

func (f Filter) matches(b *api.Book) bool {
	if f.LoanStatus != "" && b.LoanStatus != f.LoanStatus {
		return false
	}
	if f.Condition != "" && b.Condition != f.Condition {
		return false
	}
	if f.ReadingStatus != "" && !matchesReadingStatus(b, f.ReadingStatus) {
		return false
	}
	if f.Series != "" && b.Series != f.Series {
		return false
	}
	if f.Language != "" && !containsFold(b.Language, f.Language) {
		return false
	}
	if f.Author != "" && !containsFold(b.Authors, f.Author) {
		return false
	}
	if f.Search != "" && !f.matchesSearch(b) {
		return false
	}
	return true
}

// matchesReadingStatus treats a missing status as "unread"
func matchesReadingStatus(b *api.Book, want string) bool {
	if want == "unread" {
		return b.ReadingStatus == "" || b.ReadingStatus == "unread"
	}
	return b.ReadingStatus == want
}

func (f Filter) matchesSearch(b *api.Book) bool {
	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(b.Title), needle) {
		return true
	}
	for _, author := range b.Authors {
		if strings.Contains(strings.ToLower(author), needle) {
			return true
		}
	}
	for _, subject := range b.Subjects {
		if strings.Contains(strings.ToLower(subject), needle) {
			return true
		}
	}
	return false
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}

// Paginate returns the 1-based page of size perPage. Out-of-range pages
// return an empty slice.
func Paginate(books []api.Book, page, perPage int) []api.Book {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(books) {
		return nil
	}
	end := start + perPage
	if end > len(books) {
		end = len(books)
	}
	return books[start:end]
}

// SeriesNames returns the distinct series present, sorted, for facet menus
func SeriesNames(books []api.Book) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, b := range books {
		if b.Series == "" {
			continue
		}
		if _, ok := seen[b.Series]; ok {
			continue
		}
		seen[b.Series] = struct{}{}
		names = append(names, b.Series)
	}
	sort.Strings(names)
	return names
}

// Stats summarizes an unfiltered collection for the header line
type Stats struct {
	Total            int
	Loaned           int
	AddedThisMonth   int
	MetadataComplete int
}

// Summarize computes collection stats relative to now
func Summarize(books []api.Book, now time.Time) Stats {
	stats := Stats{Total: len(books)}
	for _, b := range books {
		if b.LoanStatus == "checked_out" {
			stats.Loaned++
		}
		if b.CreatedAt.Year() == now.Year() && b.CreatedAt.Month() == now.Month() {
			stats.AddedThisMonth++
		}
		if b.MetadataStatus == "complete" {
			stats.MetadataComplete++
		}
	}
	return stats
}
