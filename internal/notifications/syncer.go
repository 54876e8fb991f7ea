// Package notifications keeps the unread badge and the notification feed in
// sync with the server. The unread count is polled on a fixed schedule; the
// feed is fetched lazily, only while the panel is open. Mutations invalidate
// the affected cache tags so dependent views refetch.
package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/querycache"
)

// Cache tags owned by this package
const (
	TagNotifications = "notifications"
	TagUnreadCount   = "unread-count"
)

const (
	keyUnreadCount = "notifications:unread-count"
	keyFeed        = "notifications:feed"
	keyPending     = "invitations:pending"

	// DefaultFeedLimit bounds the lazy feed fetch
	DefaultFeedLimit = 10
	// MaxFeedLimit is the server-side page cap
	MaxFeedLimit = 50
)

// API is the slice of the API client the syncer uses
type API interface {
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]api.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id string, read bool) (*api.Notification, error)
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id string) error
	ListPendingInvitations(ctx context.Context) ([]api.Invitation, error)
	AcceptInvitation(ctx context.Context, id string) error
	DeclineInvitation(ctx context.Context, id string) error
}

// Syncer manages notification freshness and invitation responses
type Syncer struct {
	client    API
	cache     *querycache.Cache
	schedule  string
	feedLimit int

	cron    *cron.Cron
	entryID cron.EntryID

	mu         sync.Mutex
	isRunning  bool
	panelOpen  bool
	responding map[string]struct{} // invitation ids with an accept/decline in flight
}

// New creates a syncer polling on the given cron schedule (e.g. "@every 30s")
func New(client API, cache *querycache.Cache, schedule string, feedLimit int) *Syncer {
	if feedLimit <= 0 {
		feedLimit = DefaultFeedLimit
	}
	if feedLimit > MaxFeedLimit {
		feedLimit = MaxFeedLimit
	}
	return &Syncer{
		client:     client,
		cache:      cache,
		schedule:   schedule,
		feedLimit:  feedLimit,
		cron:       cron.New(),
		responding: make(map[string]struct{}),
	}
}

// Start begins the unread-count poll. The poll runs on its schedule
// regardless of whether the panel is open, so the badge stays current.
func (s *Syncer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.pollUnreadCount)
	if err != nil {
		return fmt.Errorf("failed to schedule unread poll '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Notification sync: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the poll and waits for a running poll to finish
func (s *Syncer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Notification sync: stopped")
}

// IsRunning reports whether the poll is active
func (s *Syncer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

func (s *Syncer) pollUnreadCount() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.client.UnreadCount(ctx)
	if err != nil {
		log.Printf("Notification sync: unread count poll failed: %v", err)
		return
	}
	s.cache.Set(keyUnreadCount, count, TagNotifications, TagUnreadCount)
}

// UnreadCount returns the unread badge value, fetching it when not cached
func (s *Syncer) UnreadCount(ctx context.Context) (int, error) {
	value, err := s.cache.Fetch(ctx, keyUnreadCount, []string{TagNotifications, TagUnreadCount}, func(ctx context.Context) (interface{}, error) {
		return s.client.UnreadCount(ctx)
	})
	if err != nil {
		return 0, err
	}
	return value.(int), nil
}

// OpenPanel marks the notification panel visible, enabling feed fetches
func (s *Syncer) OpenPanel() {
	s.mu.Lock()
	s.panelOpen = true
	s.mu.Unlock()
}

// ClosePanel marks the panel hidden; subsequent Feed calls skip the network
func (s *Syncer) ClosePanel() {
	s.mu.Lock()
	s.panelOpen = false
	s.mu.Unlock()
}

// Feed returns the notification feed. While the panel is closed it returns
// nil without issuing a request; the feed is an explicit lazy load.
func (s *Syncer) Feed(ctx context.Context) ([]api.Notification, error) {
	s.mu.Lock()
	open := s.panelOpen
	s.mu.Unlock()
	if !open {
		return nil, nil
	}

	value, err := s.cache.Fetch(ctx, keyFeed, []string{TagNotifications}, func(ctx context.Context) (interface{}, error) {
		return s.client.ListNotifications(ctx, false, s.feedLimit)
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Notification), nil
}

// PendingInvitations returns invitations awaiting the user's response
func (s *Syncer) PendingInvitations(ctx context.Context) ([]api.Invitation, error) {
	value, err := s.cache.Fetch(ctx, keyPending, []string{TagNotifications}, func(ctx context.Context) (interface{}, error) {
		return s.client.ListPendingInvitations(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Invitation), nil
}

// MarkRead flips one notification's read flag, keeping badge and feed consistent
func (s *Syncer) MarkRead(ctx context.Context, id string, read bool) error {
	if _, err := s.client.MarkNotificationRead(ctx, id, read); err != nil {
		return err
	}
	s.cache.Invalidate(TagNotifications)
	return nil
}

// MarkAllRead marks the whole feed read
func (s *Syncer) MarkAllRead(ctx context.Context) error {
	if err := s.client.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	s.cache.Invalidate(TagNotifications)
	return nil
}

// Delete removes a notification
func (s *Syncer) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteNotification(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(TagNotifications)
	return nil
}

// AcceptInvitation joins the inviting library. Joining changes library
// membership, so the libraries and library-members caches are invalidated
// along with the notification caches. While a response for the same
// invitation is in flight the call is a no-op; a duplicate that still
// reaches the server is rejected there as already responded.
func (s *Syncer) AcceptInvitation(ctx context.Context, id string) error {
	release, ok := s.beginResponse(id)
	if !ok {
		return nil
	}
	defer release()

	if err := s.client.AcceptInvitation(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(TagNotifications, librarystate.TagLibraries, librarystate.TagLibraryMembers)
	return nil
}

// DeclineInvitation declines a pending invitation. Accept and decline on
// the same invitation are mutually exclusive while either is in flight.
func (s *Syncer) DeclineInvitation(ctx context.Context, id string) error {
	release, ok := s.beginResponse(id)
	if !ok {
		return nil
	}
	defer release()

	if err := s.client.DeclineInvitation(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(TagNotifications)
	return nil
}

func (s *Syncer) beginResponse(id string) (func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, inFlight := s.responding[id]; inFlight {
		return nil, false
	}
	s.responding[id] = struct{}{}
	return func() {
		s.mu.Lock()
		delete(s.responding, id)
		s.mu.Unlock()
	}, true
}
