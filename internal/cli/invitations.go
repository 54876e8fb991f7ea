package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/views"
)

// InvitationsCommand lists and answers library invitations
type InvitationsCommand struct {
	Accept  string
	Decline string
	Cancel  string
	Sent    bool
}

func NewInvitationsCommand() *InvitationsCommand {
	return &InvitationsCommand{}
}

func (cmd *InvitationsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("invitations", flag.ExitOnError)

	fs.StringVar(&cmd.Accept, "accept", "", "Accept an invitation by id")
	fs.StringVar(&cmd.Decline, "decline", "", "Decline an invitation by id")
	fs.StringVar(&cmd.Cancel, "cancel", "", "Cancel an invitation you sent, by id")
	fs.BoolVar(&cmd.Sent, "sent", false, "List invitations sent for the current library")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s invitations [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists invitations awaiting your response.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := 0
	for _, v := range []string{cmd.Accept, cmd.Decline, cmd.Cancel} {
		if v != "" {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("use only one of -accept, -decline, -cancel")
	}

	return nil
}

func (cmd *InvitationsCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/invitations"); err != nil {
		return err
	}

	switch {
	case cmd.Accept != "":
		if err := a.Notifications.AcceptInvitation(ctx, cmd.Accept); err != nil {
			return friendlyError(err)
		}
		// Membership changed; show the updated library list
		if err := a.Libraries.Refresh(ctx); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Invitation accepted.")
		var currentID string
		if current := a.Libraries.Current(); current != nil {
			currentID = current.ID
		}
		views.Libraries(os.Stdout, a.Libraries.Libraries(), currentID)
		return nil

	case cmd.Decline != "":
		if err := a.Notifications.DeclineInvitation(ctx, cmd.Decline); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Invitation declined.")
		return nil

	case cmd.Cancel != "":
		if err := a.Client.CancelInvitation(ctx, cmd.Cancel); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Invitation cancelled.")
		return nil

	case cmd.Sent:
		libraryID, err := requireLibrary(ctx, a)
		if err != nil {
			return err
		}
		invitations, err := a.Client.ListLibraryInvitations(ctx, libraryID)
		if err != nil {
			return friendlyError(err)
		}
		views.LibraryInvitations(os.Stdout, invitations)
		return nil
	}

	pending, err := a.Notifications.PendingInvitations(ctx)
	if err != nil {
		return friendlyError(err)
	}
	views.PendingInvitations(os.Stdout, pending)
	return nil
}
