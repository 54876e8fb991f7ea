// Package views renders catalog data as plain text for the terminal.
// Renderers write to an io.Writer and never talk to the network; callers
// fetch first and hand over the result.
package views

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/catalog"
	"github.com/shelfmate/shelfmate/internal/clubs"
)

const progressBarWidth = 20

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinAuthors(authors []string) string {
	if len(authors) == 0 {
		return "(unknown author)"
	}
	return strings.Join(authors, ", ")
}

// Books renders a catalog page as a table followed by a count line
func Books(w io.Writer, books []api.Book, total int) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books found.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tAUTHORS\tSERIES\tSTATUS\tLOAN\tPAGES")
	for _, b := range books {
		pages := "-"
		if b.PageCount != nil {
			pages = fmt.Sprintf("%d", *b.PageCount)
		}
		status := b.ReadingStatus
		if status == "" {
			status = "unread"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.Title, joinAuthors(b.Authors), orDash(b.Series), status, orDash(b.LoanStatus), pages)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nShowing %d of %d books\n", len(books), total)
}

// CatalogStats renders the summary line above a catalog listing
func CatalogStats(w io.Writer, stats catalog.Stats) {
	fmt.Fprintf(w, "Total: %d  On loan: %d  Added this month: %d  Metadata complete: %d\n",
		stats.Total, stats.Loaned, stats.AddedThisMonth, stats.MetadataComplete)
}

// Libraries renders the user's libraries, marking the selected one
func Libraries(w io.Writer, libraries []api.Library, currentID string) {
	if len(libraries) == 0 {
		fmt.Fprintln(w, "You are not a member of any library yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, " \tNAME\tROLE\tID")
	for _, lib := range libraries {
		marker := " "
		if lib.ID == currentID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, lib.Name, lib.UserRole, lib.ID)
	}
	tw.Flush()
}

// Members renders a library's member roster
func Members(w io.Writer, members []api.LibraryMember) {
	if len(members) == 0 {
		fmt.Fprintln(w, "No members.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "USERNAME\tNAME\tROLE\tJOINED")
	for _, m := range members {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			m.Username, orDash(m.FullName), m.Role, m.JoinedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

// LibraryDetail renders one library's full record
func LibraryDetail(w io.Writer, library *api.Library) {
	fmt.Fprintln(w, library.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(library.Name)))
	if library.Description != "" {
		fmt.Fprintln(w, library.Description)
	}
	fmt.Fprintf(w, "ID: %s\n", library.ID)
	fmt.Fprintf(w, "Your role: %s\n", orDash(library.UserRole))
	fmt.Fprintf(w, "Created %s\n", library.CreatedAt.Format("2006-01-02"))
}

// Users renders a user search result
func Users(w io.Writer, users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No matching users.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "USERNAME\tNAME\tID")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", u.Username, orDash(u.FullName), u.ID)
	}
	tw.Flush()
}

// PendingInvitations renders the invitations awaiting the user's response
func PendingInvitations(w io.Writer, invitations []api.Invitation) {
	if len(invitations) == 0 {
		fmt.Fprintln(w, "No pending invitations.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tLIBRARY\tFROM\tROLE\tEXPIRES")
	for _, inv := range invitations {
		from := inv.InviterUsername
		if inv.InviterFullName != "" {
			from = fmt.Sprintf("%s (%s)", inv.InviterFullName, inv.InviterUsername)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inv.ID, orDash(inv.LibraryName), orDash(from), inv.Role, inv.ExpiresAt.Format("2006-01-02"))
	}
	tw.Flush()
}

// LibraryInvitations renders outgoing invitations for library managers
func LibraryInvitations(w io.Writer, invitations []api.Invitation) {
	if len(invitations) == 0 {
		fmt.Fprintln(w, "No invitations sent.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tINVITEE\tROLE\tSTATUS\tSENT")
	for _, inv := range invitations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inv.ID, inv.InviteeUsername, inv.Role, inv.Status, inv.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

// Notifications renders the notification panel: badge line, then the feed
func Notifications(w io.Writer, notifications []api.Notification, unread int) {
	if unread > 0 {
		fmt.Fprintf(w, "You have %d unread notifications.\n\n", unread)
	}
	if len(notifications) == 0 {
		fmt.Fprintln(w, "No notifications.")
		return
	}

	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(w, "%s [%s] %s\n", marker, relativeTime(n.CreatedAt, time.Now()), n.Title)
		if n.Message != "" {
			fmt.Fprintf(w, "    %s\n", n.Message)
		}
	}
}

// ClubsList renders the user's book clubs
func ClubsList(w io.Writer, summaries []api.BookClubSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "You are not in any book clubs yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tMEMBERS\tROLE\tID")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", s.Name, s.MemberCount, orDash(s.MembershipRole), s.ID)
	}
	tw.Flush()
}

// progressBar renders a fixed-width bar for a clamped percentage
func progressBar(pct int) string {
	filled := pct * progressBarWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarWidth-filled) + "]"
}

// ClubDetail renders a club page: members with progress, then the discussion
func ClubDetail(w io.Writer, detail *api.BookClubDetail, usernames map[string]string) {
	fmt.Fprintln(w, detail.Club.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(detail.Club.Name)))
	if detail.Club.Description != "" {
		fmt.Fprintln(w, detail.Club.Description)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Progress:")
	for _, mp := range clubs.JoinProgress(detail) {
		name := usernames[mp.Member.UserID]
		if name == "" {
			name = mp.Member.UserID
		}
		if mp.Progress == nil {
			fmt.Fprintf(w, "  %-20s no progress reported\n", name)
			continue
		}

		position := clubs.FormatPosition(*mp.Progress, detail.Club)
		if pct, known := clubs.Percent(*mp.Progress, detail.Club); known {
			shown := clubs.DisplayPercent(pct)
			fmt.Fprintf(w, "  %-20s %s %3d%%  %s\n", name, progressBar(shown), pct, position)
		} else {
			fmt.Fprintf(w, "  %-20s %s\n", name, position)
		}
	}

	comments := clubs.SortComments(detail.Comments)
	if len(comments) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Discussion:")
	for _, c := range comments {
		name := usernames[c.UserID]
		if name == "" {
			name = c.UserID
		}
		fmt.Fprintf(w, "  p.%d %s (%s): %s\n",
			c.PageNumber, name, c.CreatedAt.Format("Jan 2"), c.Body)
	}
}

// Comments renders a club's discussion on its own, oldest first
func Comments(w io.Writer, comments []api.Comment, usernames map[string]string) {
	sorted := clubs.SortComments(comments)
	if len(sorted) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}

	for _, c := range sorted {
		name := usernames[c.UserID]
		if name == "" {
			name = c.UserID
		}
		fmt.Fprintf(w, "p.%d %s (%s): %s\n",
			c.PageNumber, name, c.CreatedAt.Format("Jan 2"), c.Body)
	}
}

// ReadingLists renders the lists visible to the user
func ReadingLists(w io.Writer, lists []api.ReadingListSummary) {
	if len(lists) == 0 {
		fmt.Fprintln(w, "No reading lists.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TITLE\tVISIBILITY\tITEMS\tMEMBERS\tROLE\tID")
	for _, l := range lists {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			l.Title, l.Visibility, l.ItemCount, l.MemberCount, orDash(l.Role), l.ID)
	}
	tw.Flush()
}

func itemMarker(status string) string {
	switch status {
	case api.ListItemCompleted:
		return "[x]"
	case api.ListItemInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// ReadingListDetail renders a list's items in order with the user's own
// progress markers
func ReadingListDetail(w io.Writer, detail *api.ReadingListDetail) {
	fmt.Fprintln(w, detail.List.Title)
	fmt.Fprintln(w, strings.Repeat("=", len(detail.List.Title)))
	if detail.List.Description != "" {
		fmt.Fprintln(w, detail.List.Description)
	}
	fmt.Fprintf(w, "Visibility: %s  Members: %d\n", detail.List.Visibility, len(detail.Members))

	if len(detail.Items) == 0 {
		fmt.Fprintln(w, "\nNo items yet.")
		return
	}

	status := make(map[string]string, len(detail.Progress))
	for _, p := range detail.Progress {
		status[p.ListItemID] = p.Status
	}

	fmt.Fprintln(w)
	for i, item := range detail.Items {
		line := item.Title
		if item.Author != "" {
			line = fmt.Sprintf("%s (%s)", item.Title, item.Author)
		}
		fmt.Fprintf(w, "%3d. %s %s\n", i+1, itemMarker(status[item.ID]), line)
		if item.Notes != "" {
			fmt.Fprintf(w, "        %s\n", item.Notes)
		}
	}
}

// SeriesList renders a library's series
func SeriesList(w io.Writer, series []api.Series) {
	if len(series) == 0 {
		fmt.Fprintln(w, "No series in this library.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tDESCRIPTION")
	for _, s := range series {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			s.ID, s.Name, s.PublicationStatus, orDash(s.Description))
	}
	tw.Flush()
}

// SeriesDetail renders one series with its books and the user's overall
// reading status
func SeriesDetail(w io.Writer, series *api.Series, books []api.SeriesBook, status *api.SeriesReadingStatus) {
	fmt.Fprintln(w, series.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(series.Name)))
	if series.Description != "" {
		fmt.Fprintln(w, series.Description)
	}
	fmt.Fprintf(w, "Publication: %s\n", series.PublicationStatus)
	if status != nil {
		fmt.Fprintf(w, "Read %d of %d (%s)\n", status.ReadBooks, status.TotalBooks, status.ReadingStatus)
	}

	if len(books) == 0 {
		fmt.Fprintln(w, "\nNo books in this series.")
		return
	}

	fmt.Fprintln(w)
	for _, b := range books {
		marker := " "
		if b.IsSeriesCover {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %s (%s)\n", marker, b.Title, b.LibraryBookID)
	}
}

// AdminUsers renders the admin user listing with library roles
func AdminUsers(w io.Writer, users []api.AdminUser) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "USERNAME\tEMAIL\tADMIN\tLIBRARIES")
	for _, u := range users {
		admin := ""
		if u.IsAdmin {
			admin = "yes"
		}
		roles := make([]string, 0, len(u.Libraries))
		for _, lib := range u.Libraries {
			roles = append(roles, fmt.Sprintf("%s (%s)", lib.LibraryName, lib.Role))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Username, u.Email, admin, strings.Join(roles, ", "))
	}
	tw.Flush()
}

// EnrichmentResults renders external metadata candidates for a lookup
func EnrichmentResults(w io.Writer, results []api.EnrichmentResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches found.")
		return
	}

	for i, r := range results {
		fmt.Fprintf(w, "%d. %s by %s\n", i+1, r.Title, joinAuthors(r.Authors))
		if r.ISBN != "" {
			fmt.Fprintf(w, "   ISBN: %s\n", r.ISBN)
		}
		if r.Publisher != "" || r.PublishedDate != "" {
			fmt.Fprintf(w, "   %s %s\n", orDash(r.Publisher), r.PublishedDate)
		}
		if r.PageCount != nil {
			fmt.Fprintf(w, "   %d pages\n", *r.PageCount)
		}
	}
}

// Whoami renders the signed-in account
func Whoami(w io.Writer, user *api.User) {
	fmt.Fprintf(w, "Signed in as %s (%s)\n", user.Username, user.Email)
	if user.FullName != "" {
		fmt.Fprintf(w, "Name: %s\n", user.FullName)
	}
	if user.IsAdmin {
		fmt.Fprintln(w, "Role: administrator")
	}
	fmt.Fprintf(w, "Member since %s\n", user.CreatedAt.Format("January 2006"))
}

// relativeTime is kept simple; exact timestamps matter less than recency
func relativeTime(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}
