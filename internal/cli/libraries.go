package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/views"
)

// LibrariesCommand lists libraries, switches the selection, edits library
// details, and manages members for libraries the user owns.
type LibrariesCommand struct {
	Select      string
	Create      string
	Show        string
	Rename      string
	Description string
	Delete      string
	Members     bool
	Invite      string
	AddMember   string
	SetRole     string
	Role        string
	Remove      string
	FindUser    string
}

func NewLibrariesCommand() *LibrariesCommand {
	return &LibrariesCommand{}
}

func (cmd *LibrariesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("libraries", flag.ExitOnError)

	fs.StringVar(&cmd.Select, "select", "", "Switch the current library by id")
	fs.StringVar(&cmd.Create, "create", "", "Create a library with the given name")
	fs.StringVar(&cmd.Show, "show", "", "Show one library's details by id")
	fs.StringVar(&cmd.Rename, "rename", "", "Rename the current library")
	fs.StringVar(&cmd.Description, "description", "", "Description for -create or -rename")
	fs.StringVar(&cmd.Delete, "delete", "", "Delete a library by id")
	fs.BoolVar(&cmd.Members, "members", false, "List members of the current library")
	fs.StringVar(&cmd.Invite, "invite", "", "Invite a user to the current library by username")
	fs.StringVar(&cmd.AddMember, "add-member", "", "Add a user to the current library directly by user id")
	fs.StringVar(&cmd.SetRole, "set-role", "", "Change a member's role in the current library by user id")
	fs.StringVar(&cmd.Role, "role", "member", "Role for -invite, -add-member, and -set-role (member or manager)")
	fs.StringVar(&cmd.Remove, "remove", "", "Remove a member from the current library by user id")
	fs.StringVar(&cmd.FindUser, "find-user", "", "Search registered users by username, for invitations")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s libraries [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists your libraries and marks the current one.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s libraries -select 2f1c...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s libraries -invite anna -role manager\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s libraries -rename \"Summer house\" -description \"Paperbacks only\"\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *LibrariesCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/libraries"); err != nil {
		return err
	}

	if cmd.FindUser != "" {
		users, err := a.Client.SearchUsers(ctx, cmd.FindUser)
		if err != nil {
			return friendlyError(err)
		}
		views.Users(os.Stdout, users)
		return nil
	}

	if cmd.Create != "" {
		library, err := a.Client.CreateLibrary(ctx, api.LibraryCreateRequest{
			Name:        cmd.Create,
			Description: cmd.Description,
		})
		if err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraries)
		fmt.Printf("Created library %q (%s)\n", library.Name, library.ID)
		return nil
	}

	if cmd.Show != "" {
		library, err := a.Client.GetLibrary(ctx, cmd.Show)
		if err != nil {
			return friendlyError(err)
		}
		views.LibraryDetail(os.Stdout, library)
		return nil
	}

	if cmd.Delete != "" {
		if err := a.Client.DeleteLibrary(ctx, cmd.Delete); err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraries, librarystate.TagLibraryMembers)
		fmt.Println("Library deleted.")
		return nil
	}

	if err := a.Libraries.Refresh(ctx); err != nil {
		return friendlyError(err)
	}

	if cmd.Select != "" {
		a.Libraries.Select(cmd.Select)
		current := a.Libraries.Current()
		if current == nil || current.ID != cmd.Select {
			return fmt.Errorf("no library with id %s", cmd.Select)
		}
		fmt.Printf("Now browsing %q\n", current.Name)
		return nil
	}

	if cmd.Rename != "" {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		req := api.LibraryUpdateRequest{Name: &cmd.Rename}
		if cmd.Description != "" {
			req.Description = &cmd.Description
		}
		library, err := a.Client.UpdateLibrary(ctx, libraryID, req)
		if err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraries)
		fmt.Printf("Library is now %q\n", library.Name)
		return nil
	}

	if cmd.Invite != "" {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		if _, err := a.Client.CreateInvitation(ctx, libraryID, api.InvitationCreateRequest{
			InviteeUsername: cmd.Invite,
			Role:            cmd.Role,
		}); err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Invited %s as %s.\n", cmd.Invite, cmd.Role)
		return nil
	}

	if cmd.AddMember != "" {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		member, err := a.Client.AddMember(ctx, libraryID, api.MemberCreateRequest{
			UserID: cmd.AddMember,
			Role:   cmd.Role,
		})
		if err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraryMembers)
		fmt.Printf("Added %s as %s.\n", member.Username, member.Role)
		return nil
	}

	if cmd.SetRole != "" {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		member, err := a.Client.UpdateMember(ctx, libraryID, cmd.SetRole, api.MemberUpdateRequest{Role: cmd.Role})
		if err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraryMembers)
		fmt.Printf("%s is now a %s.\n", member.Username, member.Role)
		return nil
	}

	if cmd.Remove != "" {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		if err := a.Client.RemoveMember(ctx, libraryID, cmd.Remove); err != nil {
			return friendlyError(err)
		}
		a.Cache.Invalidate(librarystate.TagLibraryMembers)
		fmt.Println("Member removed.")
		return nil
	}

	if cmd.Members {
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		members, err := a.Client.ListMembers(ctx, libraryID)
		if err != nil {
			return friendlyError(err)
		}
		views.Members(os.Stdout, members)
		return nil
	}

	var currentID string
	if current := a.Libraries.Current(); current != nil {
		currentID = current.ID
	}
	views.Libraries(os.Stdout, a.Libraries.Libraries(), currentID)
	return nil
}
