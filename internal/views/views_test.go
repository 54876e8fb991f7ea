package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/shelfmate/shelfmate/internal/api"
)

func intPtr(n int) *int {
	return &n
}

func TestBooks(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, []api.Book{
		{
			Title:         "A Wizard of Earthsea",
			Authors:       []string{"Ursula K. Le Guin"},
			Series:        "Earthsea",
			ReadingStatus: "finished",
			LoanStatus:    "available",
			PageCount:     intPtr(183),
		},
		{
			Title: "Solaris",
		},
	}, 12)

	out := buf.String()
	assert.Contains(t, out, "A Wizard of Earthsea")
	assert.Contains(t, out, "Ursula K. Le Guin")
	assert.Contains(t, out, "183")
	assert.Contains(t, out, "unread", "missing personal data renders as unread")
	assert.Contains(t, out, "(unknown author)")
	assert.Contains(t, out, "Showing 2 of 12 books")
}

func TestBooksEmpty(t *testing.T) {
	var buf bytes.Buffer
	Books(&buf, nil, 0)
	assert.Equal(t, "No books found.\n", buf.String())
}

func TestLibrariesMarksCurrent(t *testing.T) {
	var buf bytes.Buffer
	Libraries(&buf, []api.Library{
		{ID: "lib-1", Name: "Home", UserRole: "owner"},
		{ID: "lib-2", Name: "Office", UserRole: "member"},
	}, "lib-2")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var homeLine, officeLine string
	for _, line := range lines {
		if strings.Contains(line, "Home") {
			homeLine = line
		}
		if strings.Contains(line, "Office") {
			officeLine = line
		}
	}
	assert.False(t, strings.HasPrefix(homeLine, "*"))
	assert.True(t, strings.HasPrefix(officeLine, "*"))
}

func TestLibraryDetail(t *testing.T) {
	var buf bytes.Buffer
	LibraryDetail(&buf, &api.Library{
		ID:          "lib-1",
		Name:        "Summer house",
		Description: "Paperbacks only",
		UserRole:    "owner",
		CreatedAt:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	})

	out := buf.String()
	assert.Contains(t, out, "Summer house")
	assert.Contains(t, out, "Paperbacks only")
	assert.Contains(t, out, "Your role: owner")
	assert.Contains(t, out, "2025-03-14")
}

func TestUsers(t *testing.T) {
	var buf bytes.Buffer
	Users(&buf, []api.User{
		{ID: "u-1", Username: "anna", FullName: "Anna Kowalska"},
		{ID: "u-2", Username: "marek"},
	})

	out := buf.String()
	assert.Contains(t, out, "anna")
	assert.Contains(t, out, "Anna Kowalska")
	assert.Contains(t, out, "marek")
}

func TestUsersEmpty(t *testing.T) {
	var buf bytes.Buffer
	Users(&buf, nil)
	assert.Equal(t, "No matching users.\n", buf.String())
}

func TestComments(t *testing.T) {
	var buf bytes.Buffer
	Comments(&buf, []api.Comment{
		{UserID: "u-2", PageNumber: 80, Body: "Called it", CreatedAt: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)},
		{UserID: "u-1", PageNumber: 17, Body: "Slow start", CreatedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}, map[string]string{"u-1": "anna"})

	out := buf.String()
	// Oldest comment first, known user by name, unknown by id
	first := strings.Index(out, "p.17 anna")
	second := strings.Index(out, "p.80 u-2")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
}

func TestCommentsEmpty(t *testing.T) {
	var buf bytes.Buffer
	Comments(&buf, nil, nil)
	assert.Equal(t, "No comments yet.\n", buf.String())
}

func TestNotifications(t *testing.T) {
	var buf bytes.Buffer
	Notifications(&buf, []api.Notification{
		{Title: "Invitation to Home", Message: "anna invited you", Read: false, CreatedAt: time.Now()},
		{Title: "Loan due soon", Read: true, CreatedAt: time.Now()},
	}, 1)

	out := buf.String()
	assert.Contains(t, out, "You have 1 unread notifications.")
	assert.Contains(t, out, "* [", "unread entries carry a marker")
	assert.Contains(t, out, "anna invited you")
	assert.Contains(t, out, "Loan due soon")
}

func TestNotificationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	Notifications(&buf, nil, 0)
	assert.Equal(t, "No notifications.\n", buf.String())
}

func TestClubDetail(t *testing.T) {
	total := 320
	detail := &api.BookClubDetail{
		Club: api.BookClub{Name: "Dune Readers", Description: "Slow and steady"},
		Members: []api.ClubMember{
			{UserID: "u-1"},
			{UserID: "u-2"},
		},
		Progress: []api.Progress{
			{UserID: "u-1", CurrentPage: 42, PagesTotal: &total},
		},
		Comments: []api.Comment{
			{UserID: "u-1", PageNumber: 17, Body: "The spice must flow", CreatedAt: time.Now()},
		},
	}

	var buf bytes.Buffer
	ClubDetail(&buf, detail, map[string]string{"u-1": "anna", "u-2": "brett"})

	out := buf.String()
	assert.Contains(t, out, "Dune Readers")
	assert.Contains(t, out, "Page 42 of 320")
	assert.Contains(t, out, "13%")
	assert.Contains(t, out, "brett")
	assert.Contains(t, out, "no progress reported")
	assert.Contains(t, out, "p.17 anna")
	assert.Contains(t, out, "The spice must flow")
}

func TestProgressBarClamped(t *testing.T) {
	assert.Equal(t, "[####################]", progressBar(100))
	assert.Equal(t, "[....................]", progressBar(0))
	assert.Equal(t, "[##..................]", progressBar(13))
}

func TestPendingInvitations(t *testing.T) {
	var buf bytes.Buffer
	PendingInvitations(&buf, []api.Invitation{
		{
			ID:              "inv-1",
			LibraryName:     "Home",
			InviterUsername: "anna",
			InviterFullName: "Anna K",
			Role:            "member",
			ExpiresAt:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		},
	})

	out := buf.String()
	assert.Contains(t, out, "inv-1")
	assert.Contains(t, out, "Anna K (anna)")
	assert.Contains(t, out, "2026-09-10")
}

func TestReadingLists(t *testing.T) {
	var buf bytes.Buffer
	ReadingLists(&buf, []api.ReadingListSummary{
		{ID: "rl-1", Title: "Winter reading", Visibility: "shared", ItemCount: 4, MemberCount: 2, Role: "owner"},
		{ID: "rl-2", Title: "Sci-fi classics", Visibility: "public", ItemCount: 9, MemberCount: 1},
	})

	out := buf.String()
	assert.Contains(t, out, "Winter reading")
	assert.Contains(t, out, "owner")
	assert.Contains(t, out, "Sci-fi classics")
	assert.Contains(t, out, "-", "missing role renders as a dash")
}

func TestReadingListDetail(t *testing.T) {
	var buf bytes.Buffer
	ReadingListDetail(&buf, &api.ReadingListDetail{
		List: api.ReadingList{Title: "Winter reading", Visibility: "shared"},
		Items: []api.ReadingListItem{
			{ID: "it-1", Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
			{ID: "it-2", Title: "Roadside Picnic", Notes: "translated edition"},
		},
		Members: []api.ReadingListMember{{UserID: "u-1"}, {UserID: "u-2"}},
		Progress: []api.ReadingListProgress{
			{ListItemID: "it-1", Status: api.ListItemCompleted},
			{ListItemID: "it-2", Status: api.ListItemInProgress},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Members: 2")
	assert.Contains(t, out, "[x] The Left Hand of Darkness (Ursula K. Le Guin)")
	assert.Contains(t, out, "[~] Roadside Picnic")
	assert.Contains(t, out, "translated edition")
}

func TestReadingListDetailEmpty(t *testing.T) {
	var buf bytes.Buffer
	ReadingListDetail(&buf, &api.ReadingListDetail{
		List: api.ReadingList{Title: "Empty", Visibility: "private"},
	})
	assert.Contains(t, buf.String(), "No items yet.")
}

func TestSeriesList(t *testing.T) {
	var buf bytes.Buffer
	SeriesList(&buf, []api.Series{
		{ID: 3, Name: "Earthsea", PublicationStatus: "finished", Description: "Le Guin's cycle"},
		{ID: 4, Name: "Hainish Cycle", PublicationStatus: "in_progress"},
	})

	out := buf.String()
	assert.Contains(t, out, "Earthsea")
	assert.Contains(t, out, "finished")
	assert.Contains(t, out, "Hainish Cycle")
}

func TestSeriesDetail(t *testing.T) {
	var buf bytes.Buffer
	SeriesDetail(&buf,
		&api.Series{Name: "Earthsea", PublicationStatus: "finished"},
		[]api.SeriesBook{
			{LibraryBookID: "lb-1", Title: "A Wizard of Earthsea", IsSeriesCover: true},
			{LibraryBookID: "lb-2", Title: "The Tombs of Atuan"},
		},
		&api.SeriesReadingStatus{ReadBooks: 1, TotalBooks: 2, ReadingStatus: "reading"},
	)

	out := buf.String()
	assert.Contains(t, out, "Read 1 of 2 (reading)")
	assert.Contains(t, out, "* A Wizard of Earthsea")
	assert.Contains(t, out, "  The Tombs of Atuan")
}

func TestAdminUsers(t *testing.T) {
	var buf bytes.Buffer
	AdminUsers(&buf, []api.AdminUser{
		{
			User: api.User{Username: "anna", Email: "anna@example.com", IsAdmin: true},
			Libraries: []api.AdminUserLibrary{
				{LibraryName: "Home", Role: "owner"},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "anna@example.com")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "Home (owner)")
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-72 * time.Hour), "Aug 28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relativeTime(tt.at, now))
		})
	}
}
