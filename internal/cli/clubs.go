package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/clubs"
	"github.com/shelfmate/shelfmate/internal/views"
)

// ClubsCommand lists book clubs, shows a club's progress and discussion,
// records reading progress, and posts comments.
type ClubsCommand struct {
	Club         string
	Progress     string
	PagesTotal   string
	Comment      string
	Page         string
	Create       string
	Rename       string
	SetBook      string
	Comments     bool
	AddMember    string
	SetRole      string
	RemoveMember string
	Role         string
}

func NewClubsCommand() *ClubsCommand {
	return &ClubsCommand{}
}

func (cmd *ClubsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("clubs", flag.ExitOnError)

	fs.StringVar(&cmd.Club, "club", "", "Club id to show or act on")
	fs.StringVar(&cmd.Progress, "progress", "", "Record your current page in the club's book")
	fs.StringVar(&cmd.PagesTotal, "pages-total", "", "Total pages of your edition, for -progress")
	fs.StringVar(&cmd.Comment, "comment", "", "Post a comment to the club's discussion")
	fs.StringVar(&cmd.Page, "page", "", "Page number the comment refers to")
	fs.StringVar(&cmd.Create, "create", "", "Create a club with the given name")
	fs.StringVar(&cmd.Rename, "rename", "", "Rename the club")
	fs.StringVar(&cmd.SetBook, "set-book", "", "Set the club's current book by book id")
	fs.BoolVar(&cmd.Comments, "comments", false, "Show only the club's discussion")
	fs.StringVar(&cmd.AddMember, "add-member", "", "Add a user to the club by user id")
	fs.StringVar(&cmd.SetRole, "set-role", "", "Change a club member's role by user id")
	fs.StringVar(&cmd.RemoveMember, "remove-member", "", "Remove a member from the club by user id")
	fs.StringVar(&cmd.Role, "role", "member", "Role for -add-member and -set-role (member or moderator)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s clubs [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists your book clubs.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s clubs -club 7a3e...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s clubs -club 7a3e... -progress 42 -pages-total 320\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s clubs -club 7a3e... -comment \"Loved this part\" -page 42\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	needsClub := cmd.Progress != "" || cmd.Comment != "" || cmd.Rename != "" ||
		cmd.SetBook != "" || cmd.Comments || cmd.AddMember != "" ||
		cmd.SetRole != "" || cmd.RemoveMember != ""
	if needsClub && cmd.Club == "" {
		return fmt.Errorf("required flag -club not provided")
	}

	return nil
}

func (cmd *ClubsCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/clubs"); err != nil {
		return err
	}

	if cmd.Create != "" {
		club, err := a.Client.CreateBookClub(ctx, api.BookClubCreateRequest{Name: cmd.Create})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Created club %q (%s)\n", club.Name, club.ID)
		return nil
	}

	if cmd.Rename != "" || cmd.SetBook != "" {
		req := api.BookClubUpdateRequest{}
		if cmd.Rename != "" {
			req.Name = &cmd.Rename
		}
		if cmd.SetBook != "" {
			req.CurrentBookID = &cmd.SetBook
		}
		club, err := a.Client.UpdateBookClub(ctx, cmd.Club, req)
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Updated club %q\n", club.Name)
		return nil
	}

	if cmd.AddMember != "" {
		member, err := a.Client.AddClubMember(ctx, cmd.Club, api.ClubMemberInput{
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
		member, err := a.Client.UpdateClubMember(ctx, cmd.Club, cmd.SetRole, api.ClubMemberUpdateRequest{Role: cmd.Role})
		if err != nil {
			return friendlyError(err)
		}
		fmt.Printf("Member is now a %s.\n", member.Role)
		return nil
	}

	if cmd.RemoveMember != "" {
		if err := a.Client.RemoveClubMember(ctx, cmd.Club, cmd.RemoveMember); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Member removed from club.")
		return nil
	}

	if cmd.Comments {
		comments, err := a.Client.ListComments(ctx, cmd.Club)
		if err != nil {
			return friendlyError(err)
		}
		views.Comments(os.Stdout, comments, clubUsernames(a.Session.User()))
		return nil
	}

	if cmd.Progress != "" {
		// Validation happens before any request goes out
		input, err := clubs.ProgressForm{
			CurrentPage: cmd.Progress,
			PagesTotal:  cmd.PagesTotal,
		}.Validate()
		if err != nil {
			return err
		}

		progress, err := a.Client.PutProgress(ctx, cmd.Club, input)
		if err != nil {
			return friendlyError(err)
		}

		detail, err := a.Client.GetBookClub(ctx, cmd.Club)
		if err != nil {
			return friendlyError(err)
		}
		position := clubs.FormatPosition(*progress, detail.Club)
		if pct, known := clubs.Percent(*progress, detail.Club); known {
			fmt.Printf("Recorded %s (%d%%)\n", position, clubs.DisplayPercent(pct))
		} else {
			fmt.Printf("Recorded %s\n", position)
		}
		return nil
	}

	if cmd.Comment != "" {
		input, err := clubs.CommentForm{PageNumber: cmd.Page, Body: cmd.Comment}.Validate()
		if err != nil {
			return err
		}
		if _, err := a.Client.CreateComment(ctx, cmd.Club, input); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Comment posted.")
		return nil
	}

	if cmd.Club != "" {
		detail, err := a.Client.GetBookClub(ctx, cmd.Club)
		if err != nil {
			return friendlyError(err)
		}
		views.ClubDetail(os.Stdout, detail, clubUsernames(a.Session.User()))
		return nil
	}

	summaries, err := a.Client.ListBookClubs(ctx)
	if err != nil {
		return friendlyError(err)
	}
	views.ClubsList(os.Stdout, summaries)
	return nil
}

// clubUsernames maps at least the signed-in user's id to their username;
// other members render by id until the server exposes usernames on the
// detail payload.
func clubUsernames(user *api.User) map[string]string {
	names := make(map[string]string)
	if user != nil {
		names[user.ID] = user.Username
	}
	return names
}
