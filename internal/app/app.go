// Package app wires the client together: persisted state, the API client,
// the query cache, and the stores layered on top of them.
package app

import (
	"fmt"
	"log"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/config"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/nav"
	"github.com/shelfmate/shelfmate/internal/notifications"
	"github.com/shelfmate/shelfmate/internal/querycache"
	"github.com/shelfmate/shelfmate/internal/session"
	"github.com/shelfmate/shelfmate/internal/statestore"
)

// App is the assembled client. Everything hangs off the state store and
// the API client; the stores share one query cache so tag invalidations
// propagate across features.
type App struct {
	Config        *config.Config
	State         *statestore.Store
	Client        *api.Client
	Cache         *querycache.Cache
	Session       *session.Store
	Libraries     *librarystate.Store
	Notifications *notifications.Syncer
	Nav           *nav.Router
}

func New(cfg *config.Config) (*App, error) {
	state, err := statestore.New(statestore.Config{
		DatabasePath:  cfg.State.DatabasePath,
		EncryptionKey: cfg.State.EncryptionKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, state)
	cache := querycache.New()
	sess := session.New(client, state)

	a := &App{
		Config:        cfg,
		State:         state,
		Client:        client,
		Cache:         cache,
		Session:       sess,
		Libraries:     librarystate.New(client, cache, state),
		Notifications: notifications.New(client, cache, cfg.Notifications.PollSchedule, cfg.Notifications.FeedLimit),
		Nav:           nav.NewRouter(sess),
	}
	a.registerRoutes()
	return a, nil
}

func (a *App) registerRoutes() {
	a.Nav.Register("/login", nav.Public)
	a.Nav.Register("/register", nav.Public)
	a.Nav.Register("/books", nav.RequireAuth)
	a.Nav.Register("/series", nav.RequireAuth)
	a.Nav.Register("/lists", nav.RequireAuth)
	a.Nav.Register("/libraries", nav.RequireAuth)
	a.Nav.Register("/clubs", nav.RequireAuth)
	a.Nav.Register("/notifications", nav.RequireAuth)
	a.Nav.Register("/invitations", nav.RequireAuth)
	a.Nav.Register("/profile", nav.RequireAuth)
	a.Nav.Register("/admin", nav.RequireAdmin)
}

// Close stops background work and releases the state database
func (a *App) Close() {
	a.Notifications.Stop()
	if err := a.State.Close(); err != nil {
		log.Printf("Failed to close state store: %v", err)
	}
}
