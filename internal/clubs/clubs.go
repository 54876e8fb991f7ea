// Package clubs holds the client-side view logic for book clubs: progress
// percentages, the progress submission form, and detail assembly.
package clubs

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shelfmate/shelfmate/internal/api"
)

var (
	// ErrCurrentPageRequired rejects a progress submission with no page.
	// The rejection happens client-side, before any network call.
	ErrCurrentPageRequired = errors.New("current page is required")

	// ErrInvalidPage rejects a non-numeric or negative page
	ErrInvalidPage = errors.New("page must be a non-negative number")
)

// Percent returns the rounded completion percentage for a progress record,
// falling back to the club's pages_total_override when the record carries
// no total. The second return is false when no total is known.
func Percent(progress api.Progress, club api.BookClub) (int, bool) {
	total := progress.PagesTotal
	if total == nil {
		total = club.PagesTotalOverride
	}
	if total == nil || *total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(progress.CurrentPage) / float64(*total) * 100)), true
}

// DisplayPercent clamps a percentage to 100 for rendering; a reader past
// the recorded total stays at a full bar.
func DisplayPercent(pct int) int {
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatPosition renders a progress record as "Page N" or "Page N of M"
func FormatPosition(progress api.Progress, club api.BookClub) string {
	total := progress.PagesTotal
	if total == nil {
		total = club.PagesTotalOverride
	}
	if total == nil {
		return fmt.Sprintf("Page %d", progress.CurrentPage)
	}
	return fmt.Sprintf("Page %d of %d", progress.CurrentPage, *total)
}

// ProgressForm is the raw progress submission before validation
type ProgressForm struct {
	CurrentPage string
	PagesTotal  string
}

// Validate parses the form into a progress upsert. An empty current page
// is rejected, mirroring the disabled submit in the form.
func (f ProgressForm) Validate() (api.ProgressInput, error) {
	raw := strings.TrimSpace(f.CurrentPage)
	if raw == "" {
		return api.ProgressInput{}, ErrCurrentPageRequired
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return api.ProgressInput{}, ErrInvalidPage
	}

	input := api.ProgressInput{CurrentPage: page}
	if total := strings.TrimSpace(f.PagesTotal); total != "" {
		n, err := strconv.Atoi(total)
		if err != nil || n <= 0 {
			return api.ProgressInput{}, ErrInvalidPage
		}
		input.PagesTotal = &n
	}
	return input, nil
}

// MemberProgress joins one member with their progress record, if any
type MemberProgress struct {
	Member   api.ClubMember
	Progress *api.Progress
}

// JoinProgress pairs each member with their progress, preserving member
// order. Members who have not reported progress pair with nil.
func JoinProgress(detail *api.BookClubDetail) []MemberProgress {
	byUser := make(map[string]*api.Progress, len(detail.Progress))
	for i := range detail.Progress {
		byUser[detail.Progress[i].UserID] = &detail.Progress[i]
	}

	joined := make([]MemberProgress, 0, len(detail.Members))
	for _, member := range detail.Members {
		joined = append(joined, MemberProgress{
			Member:   member,
			Progress: byUser[member.UserID],
		})
	}
	return joined
}

// SortComments orders a discussion by creation time, oldest first
func SortComments(comments []api.Comment) []api.Comment {
	sorted := make([]api.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	return sorted
}

// CommentForm is the raw comment submission before validation
type CommentForm struct {
	PageNumber string
	Body       string
}

// Validate parses the form into a comment input
func (f CommentForm) Validate() (api.CommentInput, error) {
	body := strings.TrimSpace(f.Body)
	if body == "" {
		return api.CommentInput{}, errors.New("comment body is required")
	}

	input := api.CommentInput{Body: body}
	if raw := strings.TrimSpace(f.PageNumber); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return api.CommentInput{}, ErrInvalidPage
		}
		input.PageNumber = page
	}
	return input, nil
}
