package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shelfmate/shelfmate/internal/session"
	"github.com/shelfmate/shelfmate/internal/views"
)

// LoginCommand signs in and persists the session token
type LoginCommand struct {
	Email    string
	Password string
}

func NewLoginCommand() *LoginCommand {
	return &LoginCommand{}
}

func (cmd *LoginCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Account email (required)")
	fs.StringVar(&cmd.Password, "password", "", "Account password (prompted if omitted)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s login -email <address> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Sign in to the library service. The session token is stored\n")
		fmt.Fprintf(os.Stderr, "encrypted and reused by later commands until you log out.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}

	return nil
}

func (cmd *LoginCommand) Run() error {
	if cmd.Password == "" {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		cmd.Password = password
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.Session.Login(ctx, cmd.Email, cmd.Password); err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return friendlyError(err)
	}

	views.Whoami(os.Stdout, a.Session.User())
	return nil
}

// RegisterCommand creates an account and signs in
type RegisterCommand struct {
	Username string
	Email    string
	FullName string
	Password string
}

func NewRegisterCommand() *RegisterCommand {
	return &RegisterCommand{}
}

func (cmd *RegisterCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)

	fs.StringVar(&cmd.Username, "username", "", "Username (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.FullName, "name", "", "Full name")
	fs.StringVar(&cmd.Password, "password", "", "Password (prompted if omitted)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s register -username <name> -email <address> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account. On success you are signed in immediately.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Username == "" {
		return fmt.Errorf("required flag -username not provided")
	}
	if cmd.Email == "" {
		return fmt.Errorf("required flag -email not provided")
	}

	return nil
}

func (cmd *RegisterCommand) Run() error {
	if cmd.Password == "" {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}
		cmd.Password = password
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.Session.Register(ctx, cmd.Username, cmd.Email, cmd.FullName, cmd.Password); err != nil {
		return friendlyError(err)
	}

	fmt.Println("Account created.")
	views.Whoami(os.Stdout, a.Session.User())
	return nil
}

// LogoutCommand discards the stored session token
type LogoutCommand struct{}

func NewLogoutCommand() *LogoutCommand {
	return &LogoutCommand{}
}

func (cmd *LogoutCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s logout\n\nDiscard the stored session token.\n", os.Args[0])
	}
	return fs.Parse(args)
}

func (cmd *LogoutCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Session.Logout(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

// WhoamiCommand shows the signed-in account
type WhoamiCommand struct{}

func NewWhoamiCommand() *WhoamiCommand {
	return &WhoamiCommand{}
}

func (cmd *WhoamiCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s whoami\n\nShow the signed-in account.\n", os.Args[0])
	}
	return fs.Parse(args)
}

func (cmd *WhoamiCommand) Run() error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	if err := requireRoute(ctx, a, "/profile"); err != nil {
		return err
	}

	views.Whoami(os.Stdout, a.Session.User())
	return nil
}
