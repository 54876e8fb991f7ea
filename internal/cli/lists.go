package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/views"
)

// ListsCommand manages reading lists: themed book lists that live outside
// any library, shared with collaborators and viewers.
type ListsCommand struct {
	List         string
	Visibility   string
	Create       string
	Description  string
	Rename       string
	Delete       bool
	AddItem      string
	Author       string
	ISBN         string
	Notes        string
	BookID       string
	EditItem     string
	Title        string
	RemoveItem   string
	AddMember    string
	SetRole      string
	RemoveMember string
	Role         string
	Item         string
	Status       string
}

func NewListsCommand() *ListsCommand {
	return &ListsCommand{}
}

func (cmd *ListsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("lists", flag.ExitOnError)

	fs.StringVar(&cmd.List, "list", "", "List id to show or act on")
	fs.StringVar(&cmd.Visibility, "visibility", "", "Narrow the listing (private, shared, public), or set visibility for -create")
	fs.StringVar(&cmd.Create, "create", "", "Create a reading list with the given title")
	fs.StringVar(&cmd.Description, "description", "", "Description for -create and -rename")
	fs.StringVar(&cmd.Rename, "rename", "", "Rename the list")
	fs.BoolVar(&cmd.Delete, "delete", false, "Delete the list (owner only)")
	fs.StringVar(&cmd.AddItem, "add-item", "", "Add an entry with the given title")
	fs.StringVar(&cmd.Author, "author", "", "Author for -add-item")
	fs.StringVar(&cmd.ISBN, "isbn", "", "ISBN for -add-item")
	fs.StringVar(&cmd.Notes, "notes", "", "Notes for -add-item and -status")
	fs.StringVar(&cmd.BookID, "book-id", "", "Catalog book id for -add-item")
	fs.StringVar(&cmd.EditItem, "edit-item", "", "Edit an entry by item id (pairs with -title, -author, -isbn, -notes)")
	fs.StringVar(&cmd.Title, "title", "", "New title for -edit-item")
	fs.StringVar(&cmd.RemoveItem, "remove-item", "", "Remove an entry by item id")
	fs.StringVar(&cmd.AddMember, "add-member", "", "Add a user to the list by user id")
	fs.StringVar(&cmd.SetRole, "set-role", "", "Change a list member's role by user id")
	fs.StringVar(&cmd.RemoveMember, "remove-member", "", "Remove a member from the list by user id")
	fs.StringVar(&cmd.Role, "role", "viewer", "Role for -add-member and -set-role (collaborator or viewer)")
	fs.StringVar(&cmd.Item, "item", "", "Item id for -status")
	fs.StringVar(&cmd.Status, "status", "", "Record your status on -item (not_started, in_progress, completed)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s lists [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists your reading lists.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s lists -create \"Winter reading\" -visibility shared\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lists -list 9c41... -add-item \"The Dispossessed\" -author \"Ursula K. Le Guin\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s lists -list 9c41... -item 02be... -status completed\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd.Visibility {
	case "", api.ListPrivate, api.ListShared, api.ListPublic:
	default:
		return fmt.Errorf("unknown visibility %q", cmd.Visibility)
	}

	needsList := cmd.Rename != "" || cmd.Delete || cmd.AddItem != "" ||
		cmd.EditItem != "" || cmd.RemoveItem != "" || cmd.AddMember != "" ||
		cmd.SetRole != "" || cmd.RemoveMember != "" || cmd.Status != ""
	if needsList && cmd.List == "" {
		return fmt.Errorf("required flag -list not provided")
	}
	if cmd.Status != "" {
		if cmd.Item == "" {
			return fmt.Errorf("-status needs -item")
		}
		switch cmd.Status {
		case api.ListItemNotStarted, api.ListItemInProgress, api.ListItemCompleted:
		default:
			return fmt.Errorf("unknown status %q", cmd.Status)
		}
	}

	return nil
}

func (cmd *ListsCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/lists"); err != nil {
		return err
	}

	if cmd.Create != "" {
		list, err := a.Client.CreateReadingList(ctx, api.ReadingListCreateRequest{
			Title:       cmd.Create,
			Description: cmd.Description,
			Visibility:  cmd.Visibility,
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created list %q (%s)\n", list.Title, list.ID)
		return nil
	}

	if cmd.Rename != "" {
		req := api.ReadingListUpdateRequest{Title: &cmd.Rename}
		if cmd.Description != "" {
			req.Description = &cmd.Description
		}
		if cmd.Visibility != "" {
			req.Visibility = &cmd.Visibility
		}
		list, err := a.Client.UpdateReadingList(ctx, cmd.List, req)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("List is now %q\n", list.Title)
		return nil
	}

	if cmd.Delete {
		if err := a.Client.DeleteReadingList(ctx, cmd.List); err != nil {
			return friendlyError(err)
		}
		fmt.Println("List deleted.")
		return nil
	}

	if cmd.AddItem != "" {
		item, err := a.Client.AddListItem(ctx, cmd.List, api.ListItemCreateRequest{
			Title:  cmd.AddItem,
			Author: cmd.Author,
			ISBN:   cmd.ISBN,
			Notes:  cmd.Notes,
			BookID: cmd.BookID,
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Added %q (%s)\n", item.Title, item.ID)
		return nil
	}

	if cmd.EditItem != "" {
		req := api.ListItemUpdateRequest{}
		if cmd.Title != "" {
			req.Title = &cmd.Title
		}
		if cmd.Author != "" {
			req.Author = &cmd.Author
		}
		if cmd.ISBN != "" {
			req.ISBN = &cmd.ISBN
		}
		if cmd.Notes != "" {
			req.Notes = &cmd.Notes
		}
		item, err := a.Client.UpdateListItem(ctx, cmd.List, cmd.EditItem, req)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated %q\n", item.Title)
		return nil
	}

	if cmd.RemoveItem != "" {
		if err := a.Client.RemoveListItem(ctx, cmd.List, cmd.RemoveItem); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Item removed.")
		return nil
	}

	if cmd.AddMember != "" {
		member, err := a.Client.AddListMember(ctx, cmd.List, api.ListMemberInput{
			UserID: cmd.AddMember,
			Role:   cmd.Role,
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Added member as %s.\n", member.Role)
		return nil
	}

	if cmd.SetRole != "" {
		member, err := a.Client.UpdateListMember(ctx, cmd.List, cmd.SetRole, api.ListMemberUpdateRequest{Role: cmd.Role})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Member is now a %s.\n", member.Role)
		return nil
	}

	if cmd.RemoveMember != "" {
		if err := a.Client.RemoveListMember(ctx, cmd.List, cmd.RemoveMember); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Member removed from list.")
		return nil
	}

	if cmd.Status != "" {
		progress, err := a.Client.PutListProgress(ctx, cmd.List, cmd.Item, api.ListProgressInput{
			Status: cmd.Status,
			Notes:  cmd.Notes,
		})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Marked %s.\n", progress.Status)
		return nil
	}

	if cmd.List != "" {
		detail, err := a.Client.GetReadingList(ctx, cmd.List)
		if err != nil {
			return friendlyError(err)
		}
		views.ReadingListDetail(os.Stdout, detail)
		return nil
	}

	lists, err := a.Client.ListReadingLists(ctx, cmd.Visibility)
	if err != nil {
		return friendlyError(err)
	}
	views.ReadingLists(os.Stdout, lists)
	return nil
}
