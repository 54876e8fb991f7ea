package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/views"
)

// NotificationsCommand shows the notification panel and manages entries
type NotificationsCommand struct {
	MarkRead    string
	MarkAllRead bool
	Delete      string
	Limit       int
}

func NewNotificationsCommand() *NotificationsCommand {
	return &NotificationsCommand{}
}

func (cmd *NotificationsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("notifications", flag.ExitOnError)

	fs.StringVar(&cmd.MarkRead, "mark-read", "", "Mark one notification read by id")
	fs.BoolVar(&cmd.MarkAllRead, "mark-all-read", false, "Mark every notification read")
	fs.StringVar(&cmd.Delete, "delete", "", "Delete a notification by id")
	fs.IntVar(&cmd.Limit, "limit", 0, "Feed size (defaults to the configured limit)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s notifications [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, shows unread count and the recent feed.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *NotificationsCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/notifications"); err != nil {
		return err
	}

	if cmd.MarkRead != "" {
		if err := a.Notifications.MarkRead(ctx, cmd.MarkRead, true); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Marked read.")
		return nil
	}

	if cmd.MarkAllRead {
		if err := a.Notifications.MarkAllRead(ctx); err != nil {
			return friendlyError(err)
		}
		fmt.Println("All notifications marked read.")
		return nil
	}

	if cmd.Delete != "" {
		if err := a.Notifications.Delete(ctx, cmd.Delete); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Notification deleted.")
		return nil
	}

	// The feed only loads while the panel is open
	a.Notifications.OpenPanel()
	defer a.Notifications.ClosePanel()

	unread, err := a.Notifications.UnreadCount(ctx)
	if err != nil {
		return friendlyError(err)
	}
	feed, err := a.Notifications.Feed(ctx)
	if err != nil {
		return friendlyError(err)
	}

	views.Notifications(os.Stdout, feed, unread)
	return nil
}
