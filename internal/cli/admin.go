package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/views"
)

// AdminCommand manages users; every operation requires an admin account
type AdminCommand struct {
	GrantAdmin    string
	RevokeAdmin   string
	SetPassword   string
	Library       string
	Role          string
	SetRole       string
	RemoveFromLib string
}

func NewAdminCommand() *AdminCommand {
	return &AdminCommand{}
}

func (cmd *AdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("admin", flag.ExitOnError)

	fs.StringVar(&cmd.GrantAdmin, "grant-admin", "", "Grant admin to a user by id")
	fs.StringVar(&cmd.RevokeAdmin, "revoke-admin", "", "Revoke admin from a user by id")
	fs.StringVar(&cmd.SetPassword, "set-password", "", "Reset a user's password by id (prompts for the password)")
	fs.StringVar(&cmd.SetRole, "set-role", "", "Change a user's library role by id (needs -library and -role)")
	fs.StringVar(&cmd.RemoveFromLib, "remove-from-library", "", "Remove a user from a library by id (needs -library)")
	fs.StringVar(&cmd.Library, "library", "", "Library id for -set-role and -remove-from-library")
	fs.StringVar(&cmd.Role, "role", "", "Role for -set-role")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s admin [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Without options, lists all users with their library roles.\n")
		fmt.Fprintf(os.Stderr, "All operations require an administrator account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.SetRole != "" && (cmd.Library == "" || cmd.Role == "") {
		return fmt.Errorf("-set-role needs both -library and -role")
	}
	if cmd.RemoveFromLib != "" && cmd.Library == "" {
		return fmt.Errorf("-remove-from-library needs -library")
	}

	return nil
}

func (cmd *AdminCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/admin"); err != nil {
		return err
	}

	switch {
	case cmd.GrantAdmin != "":
		if _, err := a.Client.SetAdminStatus(ctx, cmd.GrantAdmin, true); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Admin granted.")
		return nil

	case cmd.RevokeAdmin != "":
		if _, err := a.Client.SetAdminStatus(ctx, cmd.RevokeAdmin, false); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Admin revoked.")
		return nil

	case cmd.SetPassword != "":
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		if err := a.Client.SetUserPassword(ctx, cmd.SetPassword, password); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Password updated.")
		return nil

	case cmd.SetRole != "":
		if err := a.Client.SetLibraryRole(ctx, cmd.SetRole, cmd.Library, cmd.Role); err != nil {
			return friendlyError(err)
		}
		fmt.Println("Role updated.")
		return nil

	case cmd.RemoveFromLib != "":
		if err := a.Client.RemoveUserFromLibrary(ctx, cmd.RemoveFromLib, cmd.Library); err != nil {
			return friendlyError(err)
		}
		fmt.Println("User removed from library.")
		return nil
	}

	users, err := a.Client.ListUsers(ctx)
	if err != nil {
		return friendlyError(err)
	}
	views.AdminUsers(os.Stdout, users)
	return nil
}
