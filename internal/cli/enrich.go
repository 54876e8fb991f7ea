package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/shelfmate/shelfmate/internal/views"
)

// EnrichCommand looks up external book metadata through the server
type EnrichCommand struct {
	Query      string
	ISBN       string
	Preview    string
	MaxResults int
}

func NewEnrichCommand() *EnrichCommand {
	return &EnrichCommand{}
}

func (cmd *EnrichCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("enrich", flag.ExitOnError)

	fs.StringVar(&cmd.Query, "query", "", "Search external metadata by title/author")
	fs.StringVar(&cmd.ISBN, "isbn", "", "Search external metadata by ISBN")
	fs.StringVar(&cmd.Preview, "preview", "", "Preview full metadata for an identifier")
	fs.IntVar(&cmd.MaxResults, "max-results", 5, "Maximum number of search results")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s enrich [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Search external metadata sources for the current library.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s enrich -query \"left hand of darkness\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s enrich -isbn 9780441478125\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Query == "" && cmd.ISBN == "" && cmd.Preview == "" {
		return fmt.Errorf("one of -query, -isbn, or -preview is required")
	}

	return nil
}

func (cmd *EnrichCommand) Run() error {
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

	if cmd.Preview != "" {
		preview, err := a.Client.PreviewMetadata(ctx, libraryID, cmd.Preview)
		if err != nil {
			return friendlyError(err)
		}

		keys := make([]string, 0, len(preview))
		for k := range preview {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %v\n", k, preview[k])
		}
		return nil
	}

	query, searchType := cmd.Query, "query"
	if cmd.ISBN != "" {
		query, searchType = cmd.ISBN, "isbn"
	}

	results, err := a.Client.SearchMetadata(ctx, libraryID, query, searchType, cmd.MaxResults)
	if err != nil {
		return friendlyError(err)
	}

	views.EnrichmentResults(os.Stdout, results)
	return nil
}
