package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/querycache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationAPI struct {
	mu sync.Mutex

	unread      int
	feed        []api.Notification
	pending     []api.Invitation
	acceptDelay time.Duration
	acceptErr   error

	unreadCalls  int
	feedCalls    int
	acceptCalls  int
	declineCalls int
}

func (f *fakeNotificationAPI) UnreadCount(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unreadCalls++
	return f.unread, nil
}

func (f *fakeNotificationAPI) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]api.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedCalls++
	if limit < len(f.feed) {
		return f.feed[:limit], nil
	}
	return f.feed, nil
}

func (f *fakeNotificationAPI) MarkNotificationRead(ctx context.Context, id string, read bool) (*api.Notification, error) {
	return &api.Notification{ID: id, Read: read}, nil
}

func (f *fakeNotificationAPI) MarkAllNotificationsRead(ctx context.Context) error { return nil }

func (f *fakeNotificationAPI) DeleteNotification(ctx context.Context, id string) error { return nil }

func (f *fakeNotificationAPI) ListPendingInvitations(ctx context.Context) ([]api.Invitation, error) {
	return f.pending, nil
}

func (f *fakeNotificationAPI) AcceptInvitation(ctx context.Context, id string) error {
	f.mu.Lock()
	f.acceptCalls++
	delay := f.acceptDelay
	err := f.acceptErr
	f.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	return err
}

func (f *fakeNotificationAPI) DeclineInvitation(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.declineCalls++
	return nil
}

func newTestSyncer(client *fakeNotificationAPI) (*Syncer, *querycache.Cache) {
	cache := querycache.New()
	return New(client, cache, "@every 30s", DefaultFeedLimit), cache
}

func TestUnreadCountCached(t *testing.T) {
	client := &fakeNotificationAPI{unread: 3}
	syncer, _ := newTestSyncer(client)

	count, err := syncer.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = syncer.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, client.unreadCalls)
}

func TestFeedLazyLoadGate(t *testing.T) {
	client := &fakeNotificationAPI{feed: []api.Notification{{ID: "n-1"}}}
	syncer, _ := newTestSyncer(client)

	// Panel closed: no fetch happens
	feed, err := syncer.Feed(context.Background())
	require.NoError(t, err)
	assert.Nil(t, feed)
	assert.Equal(t, 0, client.feedCalls)

	syncer.OpenPanel()
	feed, err = syncer.Feed(context.Background())
	require.NoError(t, err)
	assert.Len(t, feed, 1)
	assert.Equal(t, 1, client.feedCalls)

	syncer.ClosePanel()
	feed, err = syncer.Feed(context.Background())
	require.NoError(t, err)
	assert.Nil(t, feed)
	assert.Equal(t, 1, client.feedCalls)
}

func TestFeedLimitBounded(t *testing.T) {
	syncer := New(&fakeNotificationAPI{}, querycache.New(), "@every 30s", 500)
	assert.Equal(t, MaxFeedLimit, syncer.feedLimit)

	syncer = New(&fakeNotificationAPI{}, querycache.New(), "@every 30s", 0)
	assert.Equal(t, DefaultFeedLimit, syncer.feedLimit)
}

func TestMarkReadInvalidatesBadgeAndFeed(t *testing.T) {
	client := &fakeNotificationAPI{unread: 2, feed: []api.Notification{{ID: "n-1"}}}
	syncer, _ := newTestSyncer(client)
	syncer.OpenPanel()

	_, err := syncer.UnreadCount(context.Background())
	require.NoError(t, err)
	_, err = syncer.Feed(context.Background())
	require.NoError(t, err)

	require.NoError(t, syncer.MarkRead(context.Background(), "n-1", true))

	// Both unread count and feed refetch after the mutation
	client.unread = 1
	count, err := syncer.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, client.unreadCalls)

	_, err = syncer.Feed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, client.feedCalls)
}

func TestAcceptInvitationInvalidatesLibraryCaches(t *testing.T) {
	client := &fakeNotificationAPI{}
	syncer, cache := newTestSyncer(client)

	cache.Set("notifications:unread-count", 1, TagNotifications, TagUnreadCount)
	cache.Set("notifications:feed", "feed", TagNotifications)
	cache.Set("libraries", "libs", librarystate.TagLibraries)
	cache.Set("members:lib-1", "members", librarystate.TagLibraryMembers)
	cache.Set("book-clubs", "clubs", "book-clubs")

	require.NoError(t, syncer.AcceptInvitation(context.Background(), "inv-1"))

	for _, key := range []string{"notifications:unread-count", "notifications:feed", "libraries", "members:lib-1"} {
		_, ok := cache.Get(key)
		assert.False(t, ok, "expected %s to be invalidated", key)
	}

	// Unrelated entries survive
	_, ok := cache.Get("book-clubs")
	assert.True(t, ok)
}

func TestDeclineInvitationLeavesLibrariesCached(t *testing.T) {
	client := &fakeNotificationAPI{}
	syncer, cache := newTestSyncer(client)

	cache.Set("notifications:feed", "feed", TagNotifications)
	cache.Set("libraries", "libs", librarystate.TagLibraries)

	require.NoError(t, syncer.DeclineInvitation(context.Background(), "inv-1"))

	_, ok := cache.Get("notifications:feed")
	assert.False(t, ok)
	_, ok = cache.Get("libraries")
	assert.True(t, ok, "declining does not change library membership")
}

func TestDoubleAcceptIsSingleRequest(t *testing.T) {
	client := &fakeNotificationAPI{acceptDelay: 50 * time.Millisecond}
	syncer, _ := newTestSyncer(client)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = syncer.AcceptInvitation(context.Background(), "inv-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, client.acceptCalls, "second submit while in flight must be a no-op")
}

func TestAcceptThenDeclineMutuallyExclusive(t *testing.T) {
	client := &fakeNotificationAPI{acceptDelay: 50 * time.Millisecond}
	syncer, _ := newTestSyncer(client)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = syncer.AcceptInvitation(context.Background(), "inv-1")
	}()
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		_ = syncer.DeclineInvitation(context.Background(), "inv-1")
	}()
	wg.Wait()

	assert.Equal(t, 1, client.acceptCalls+client.declineCalls)
}

func TestResponsesToDifferentInvitationsDoNotBlock(t *testing.T) {
	client := &fakeNotificationAPI{}
	syncer, _ := newTestSyncer(client)

	require.NoError(t, syncer.AcceptInvitation(context.Background(), "inv-1"))
	require.NoError(t, syncer.AcceptInvitation(context.Background(), "inv-2"))
	assert.Equal(t, 2, client.acceptCalls)
}

func TestStartStop(t *testing.T) {
	client := &fakeNotificationAPI{}
	syncer, _ := newTestSyncer(client)

	require.NoError(t, syncer.Start())
	assert.True(t, syncer.IsRunning())

	// Starting twice is safe
	require.NoError(t, syncer.Start())

	syncer.Stop()
	assert.False(t, syncer.IsRunning())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	syncer := New(&fakeNotificationAPI{}, querycache.New(), "not-a-schedule", 10)
	assert.Error(t, syncer.Start())
}
