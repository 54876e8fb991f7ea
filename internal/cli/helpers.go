// Package cli implements the terminal commands. Each command is a struct
// with ParseFlags and Run; main dispatches on the first argument.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/app"
	"github.com/shelfmate/shelfmate/internal/config"
	"github.com/shelfmate/shelfmate/internal/nav"
)

// ErrNotSignedIn is returned by commands that need a session when the
// stored token is missing or was rejected.
var ErrNotSignedIn = errors.New("not signed in; run 'shelfmate login' first")

// ErrAdminOnly is returned when a guarded route needs an administrator
// account and the session is not one.
var ErrAdminOnly = errors.New("this command requires an administrator account")

// ErrNoLibrary is returned when a command needs a library context but the
// user belongs to none.
var ErrNoLibrary = errors.New("no library selected; create or join one first")

// loadApp assembles the client from the environment configuration
func loadApp() (*app.App, error) {
	return app.New(config.NewConfig())
}

// requireRoute bootstraps the session and applies the registered guard
// for path. Commands do not check the session themselves; access rules
// live on the routes.
func requireRoute(ctx context.Context, a *app.App, path string) error {
	if err := a.Session.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	return guardError(a.Nav.Navigate(path), path)
}

// guardError translates a guard result into a terminal error. A redirect
// to the login route means the session is missing; any other redirect
// means the account lacks the route's required role.
func guardError(result nav.Result, path string) error {
	switch result.Decision {
	case nav.Allowed:
		return nil
	case nav.Pending:
		return errors.New("session is still loading; try again")
	case nav.NotFound:
		return fmt.Errorf("no route registered for %s", path)
	}
	if result.To == nav.LoginRoute {
		return ErrNotSignedIn
	}
	return ErrAdminOnly
}

// requireLibrary loads libraries and ensures a current selection exists
func requireLibrary(ctx context.Context, a *app.App) (string, error) {
	if err := a.Libraries.Refresh(ctx); err != nil {
		return "", fmt.Errorf("failed to load libraries: %w", err)
	}
	current := a.Libraries.Current()
	if current == nil {
		return "", ErrNoLibrary
	}
	return current.ID, nil
}

// promptPassword reads a password without echoing it
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// friendlyError rewrites typed API errors into messages fit for the terminal
func friendlyError(err error) error {
	var ve *api.ValidationError
	switch {
	case errors.As(err, &ve):
		return fmt.Errorf("%s", ve.Detail)
	case errors.Is(err, api.ErrUnauthorized):
		return ErrNotSignedIn
	case errors.Is(err, api.ErrForbidden):
		return errors.New("you do not have permission to do that")
	case errors.Is(err, api.ErrNotFound):
		return errors.New("not found")
	default:
		return err
	}
}
