package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/catalog"
	"github.com/shelfmate/shelfmate/internal/views"
)

// BooksCommand browses the current library's catalog with client-side
// filtering, sorting, and pagination.
type BooksCommand struct {
	Search        string
	Sort          string
	Direction     string
	Author        string
	Series        string
	ReadingStatus string
	LoanStatus    string
	Language      string
	Condition     string
	Page          int
	PerPage       int
	Stats         bool
	Delete        string

	Add       bool
	Edit      string
	Title     string
	ISBN      string
	Publisher string
	BookType  string
	Shelf     string
}

func NewBooksCommand() *BooksCommand {
	return &BooksCommand{}
}

func (cmd *BooksCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("books", flag.ExitOnError)

	fs.StringVar(&cmd.Search, "search", "", "Match titles, authors, and subjects")
	fs.StringVar(&cmd.Sort, "sort", "title", "Sort key: title, author, added, published, pages")
	fs.StringVar(&cmd.Direction, "direction", "asc", "Sort direction: asc or desc")
	fs.StringVar(&cmd.Author, "author", "", "Filter by author")
	fs.StringVar(&cmd.Series, "series", "", "Filter by series")
	fs.StringVar(&cmd.ReadingStatus, "reading-status", "", "Filter by reading status (unread, reading, finished)")
	fs.StringVar(&cmd.LoanStatus, "loan-status", "", "Filter by loan status")
	fs.StringVar(&cmd.Language, "language", "", "Filter by language")
	fs.StringVar(&cmd.Condition, "condition", "", "Filter by condition")
	fs.IntVar(&cmd.Page, "page", 1, "Page number")
	fs.IntVar(&cmd.PerPage, "per-page", 20, "Books per page")
	fs.BoolVar(&cmd.Stats, "stats", false, "Show collection statistics instead of a listing")
	fs.StringVar(&cmd.Delete, "delete", "", "Remove a book from the library by id")

	fs.BoolVar(&cmd.Add, "add", false, "Add a book to the library (needs -title)")
	fs.StringVar(&cmd.Edit, "edit", "", "Edit a book by id (needs -title; resubmits the whole form)")
	fs.StringVar(&cmd.Title, "title", "", "Title for -add and -edit")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN for -add and -edit")
	fs.StringVar(&cmd.Publisher, "publisher", "", "Publisher for -add and -edit")
	fs.StringVar(&cmd.BookType, "book-type", "", "Format for -add and -edit (paperback, hardcover, ebook, audiobook)")
	fs.StringVar(&cmd.Shelf, "shelf", "", "Shelf or storage location for -add and -edit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s books [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Browse the current library's catalog. Filtering and sorting happen\n")
		fmt.Fprintf(os.Stderr, "locally over the fetched collection.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s books -search earthsea -sort published\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s books -reading-status unread -sort pages -direction desc\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Add && cmd.Edit != "" {
		return fmt.Errorf("-add and -edit are mutually exclusive")
	}
	if (cmd.Add || cmd.Edit != "") && cmd.Title == "" {
		return fmt.Errorf("-title is required with -add and -edit")
	}

	switch catalog.SortKey(cmd.Sort) {
	case catalog.SortTitle, catalog.SortAuthor, catalog.SortAdded, catalog.SortPublished, catalog.SortPages:
	default:
		return fmt.Errorf("unknown sort key %q", cmd.Sort)
	}
	switch catalog.Direction(cmd.Direction) {
	case catalog.Ascending, catalog.Descending:
	default:
		return fmt.Errorf("unknown sort direction %q", cmd.Direction)
	}

	return nil
}

func (cmd *BooksCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/books"); err != nil {
		return err
	}
	libraryID, err := requireLibrary(ctx, a)
	if err != nil {
		return err
	}

	if cmd.Delete != "" {
		if err := a.Client.DeleteBook(ctx, libraryID, cmd.Delete); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Book removed.")
		return nil
	}

	if cmd.Add {
		book, err := a.Client.CreateBook(ctx, libraryID, cmd.formValues())
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Added %q (%s)\n", book.Title, book.ID)
		return nil
	}

	if cmd.Edit != "" {
		book, err := a.Client.UpdateBook(ctx, libraryID, cmd.Edit, cmd.formValues())
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated %q\n", book.Title)
		return nil
	}

	books, _, err := a.Client.ListBooks(ctx, libraryID, api.ListBooksParams{})
	if err != nil {
		return friendlyError(err)
	}

	if cmd.Stats {
		views.CatalogStats(os.Stdout, catalog.Summarize(books, time.Now()))
		return nil
	}

	filter := catalog.Filter{
		LoanStatus:    cmd.LoanStatus,
		Condition:     cmd.Condition,
		ReadingStatus: cmd.ReadingStatus,
		Series:        cmd.Series,
		Language:      cmd.Language,
		Author:        cmd.Author,
		Search:        cmd.Search,
	}
	matched := filter.Apply(books)
	sorted := catalog.Sort(matched, catalog.SortKey(cmd.Sort), catalog.Direction(cmd.Direction))
	page := catalog.Paginate(sorted, cmd.Page, cmd.PerPage)

	views.Books(os.Stdout, page, len(matched))
	return nil
}

// formValues turns the flat flag set into the book form. The filter flags
// double as form fields when adding or editing.
func (cmd *BooksCommand) formValues() api.BookFormValues {
	values := api.BookFormValues{
		Title:           cmd.Title,
		Authors:         splitList(cmd.Author),
		ISBN:            cmd.ISBN,
		Publisher:       cmd.Publisher,
		Language:        splitList(cmd.Language),
		BookType:        cmd.BookType,
		Series:          cmd.Series,
		Condition:       cmd.Condition,
		ShelfLocation:   cmd.Shelf,
		ReadingStatus:   cmd.ReadingStatus,
		MetadataStatus:  "pending",
		OwnershipStatus: "Owned",
		LoanStatus:      "available",
	}
	return values
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
