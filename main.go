package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shelfmate/shelfmate/internal/app"
	"github.com/shelfmate/shelfmate/internal/cli"
	"github.com/shelfmate/shelfmate/internal/config"
	"github.com/shelfmate/shelfmate/internal/web"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	name := os.Args[1]
	args := os.Args[2:]

	if name == "serve" {
		serve()
		return
	}

	commands := map[string]command{
		"login":         cli.NewLoginCommand(),
		"register":      cli.NewRegisterCommand(),
		"logout":        cli.NewLogoutCommand(),
		"whoami":        cli.NewWhoamiCommand(),
		"libraries":     cli.NewLibrariesCommand(),
		"books":         cli.NewBooksCommand(),
		"series":        cli.NewSeriesCommand(),
		"lists":         cli.NewListsCommand(),
		"clubs":         cli.NewClubsCommand(),
		"notifications": cli.NewNotificationsCommand(),
		"invitations":   cli.NewInvitationsCommand(),
		"admin":         cli.NewAdminCommand(),
		"enrich":        cli.NewEnrichCommand(),
	}

	switch name {
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		cmd, ok := commands[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
			printUsage()
			os.Exit(1)
		}
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// serve runs the local read-only dashboard with the notification poller
func serve() {
	cfg := config.NewConfig()

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := a.Session.Bootstrap(context.Background()); err != nil {
		log.Printf("Session restore failed: %v", err)
	}
	if a.Session.IsAuthenticated() {
		log.Printf("Signed in as %s", a.Session.User().Username)
		if err := a.Notifications.Start(); err != nil {
			log.Printf("Notification sync failed to start: %v", err)
		}
	} else {
		log.Printf("Not signed in; dashboard will serve session status only")
	}

	router := web.NewRouter(web.RouterConfig{
		Health:  web.NewHealthController(a.State, Version),
		Status:  web.NewStatusController(a.Session, a.Libraries, a.Notifications),
		Catalog: web.NewCatalogController(a.Client, a.Libraries),
	})

	web.Serve(router, cfg, func(ctx context.Context) {
		a.Close()
	})
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  login          Sign in and store the session token\n")
	fmt.Fprintf(os.Stderr, "  register       Create an account and sign in\n")
	fmt.Fprintf(os.Stderr, "  logout         Discard the stored session token\n")
	fmt.Fprintf(os.Stderr, "  whoami         Show the signed-in account\n")
	fmt.Fprintf(os.Stderr, "  libraries      List, select, and manage libraries\n")
	fmt.Fprintf(os.Stderr, "  books          Browse the current library's catalog\n")
	fmt.Fprintf(os.Stderr, "  series         Manage the current library's series\n")
	fmt.Fprintf(os.Stderr, "  lists          Reading lists: items, members, progress\n")
	fmt.Fprintf(os.Stderr, "  clubs          Book clubs: progress and discussion\n")
	fmt.Fprintf(os.Stderr, "  notifications  Unread count and the notification feed\n")
	fmt.Fprintf(os.Stderr, "  invitations    List and answer library invitations\n")
	fmt.Fprintf(os.Stderr, "  admin          User administration (admins only)\n")
	fmt.Fprintf(os.Stderr, "  enrich         Look up external book metadata\n")
	fmt.Fprintf(os.Stderr, "  serve          Run the local read-only dashboard\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
