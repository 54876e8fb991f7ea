package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/views"
)

// SeriesCommand manages the current library's series: named groupings of
// books with a publication status and an aggregate reading status.
type SeriesCommand struct {
	Series      int
	Create      string
	Description string
	Rename      string
	Publication string
	CoverBook   string
	Delete      bool
}

func NewSeriesCommand() *SeriesCommand {
	return &SeriesCommand{}
}

func (cmd *SeriesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("series", flag.ExitOnError)

	fs.IntVar(&cmd.Series, "series", 0, "Series id to show or act on")
	fs.StringVar(&cmd.Create, "create", "", "Create a series with the given name")
	fs.StringVar(&cmd.Description, "description", "", "Description for -create and -rename")
	fs.StringVar(&cmd.Rename, "rename", "", "Rename the series")
	fs.StringVar(&cmd.Publication, "publication", "", "Set the publication status (in_progress or finished)")
	fs.StringVar(&cmd.CoverBook, "cover-book", "", "Set the book whose cover represents the series, by book id")
	fs.BoolVar(&cmd.Delete, "delete", false, "Delete the series and clear it from the library's books")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s series [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists the current library's series.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s series -create \"Earthsea\" -description \"Le Guin's cycle\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s series -series 3 -publication finished\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Publication {
	case "", api.SeriesInProgress, api.SeriesFinished:
	default:
		return fmt.Errorf("unknown publication status %q", cmd.Publication)
	}

	needsSeries := cmd.Rename != "" || cmd.Publication != "" || cmd.CoverBook != "" || cmd.Delete
	if needsSeries && cmd.Series == 0 {
		return fmt.Errorf("required flag -series not provided")
	}

	return nil
}

func (cmd *SeriesCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/series"); err != nil {
		return err
	}
	libraryID, err := requireLibrary(ctx, a)
	if err != nil {
		return err
	}

	if cmd.Create != "" {
		series, err := a.Client.CreateSeries(ctx, libraryID, api.SeriesCreateRequest{
			Name:        cmd.Create,
			Description: cmd.Description,
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created series %q (%d)\n", series.Name, series.ID)
		return nil
	}

	if cmd.Delete {
		if err := a.Client.DeleteSeries(ctx, libraryID, cmd.Series); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Series deleted.")
		return nil
	}

	if cmd.Rename != "" || cmd.Publication != "" || cmd.CoverBook != "" {
		req := api.SeriesUpdateRequest{}
		if cmd.Rename != "" {
			req.Name = &cmd.Rename
		}
		if cmd.Description != "" {
			req.Description = &cmd.Description
		}
		if cmd.Publication != "" {
			req.PublicationStatus = &cmd.Publication
		}
		if cmd.CoverBook != "" {
			req.CoverBookID = &cmd.CoverBook
		}
		series, err := a.Client.UpdateSeries(ctx, libraryID, cmd.Series, req)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated series %q\n", series.Name)
		return nil
	}

	if cmd.Series != 0 {
		series, err := a.Client.GetSeries(ctx, libraryID, cmd.Series)
		if err != nil {
			return friendlyError(err)
		}
		books, err := a.Client.SeriesBooks(ctx, libraryID, cmd.Series)
		if err != nil {
			return friendlyError(err)
		}
		status, err := a.Client.GetSeriesReadingStatus(ctx, libraryID, cmd.Series)
		if err != nil {
			return friendlyError(err)
		}
		views.SeriesDetail(os.Stdout, series, books, status)
		return nil
	}

	series, err := a.Client.ListSeries(ctx, libraryID)
	if err != nil {
		return friendlyError(err)
	}
	views.SeriesList(os.Stdout, series)
	return nil
}
