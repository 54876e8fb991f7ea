package clubs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmate/shelfmate/internal/api"
)

func intPtr(n int) *int {
	return &n
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		progress api.Progress
		club     api.BookClub
		want     int
		known    bool
	}{
		{
			name:     "rounds to nearest integer",
			progress: api.Progress{CurrentPage: 42, PagesTotal: intPtr(320)},
			want:     13,
			known:    true,
		},
		{
			name:     "rounds half up",
			progress: api.Progress{CurrentPage: 100, PagesTotal: intPtr(160)},
			want:     63,
			known:    true,
		},
		{
			name:     "falls back to club override",
			progress: api.Progress{CurrentPage: 50},
			club:     api.BookClub{PagesTotalOverride: intPtr(200)},
			want:     25,
			known:    true,
		},
		{
			name:     "record total wins over override",
			progress: api.Progress{CurrentPage: 50, PagesTotal: intPtr(100)},
			club:     api.BookClub{PagesTotalOverride: intPtr(200)},
			want:     50,
			known:    true,
		},
		{
			name:     "no total anywhere",
			progress: api.Progress{CurrentPage: 50},
			known:    false,
		},
		{
			name:     "zero total treated as unknown",
			progress: api.Progress{CurrentPage: 50, PagesTotal: intPtr(0)},
			known:    false,
		},
		{
			name:     "past the end exceeds 100",
			progress: api.Progress{CurrentPage: 350, PagesTotal: intPtr(320)},
			want:     109,
			known:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pct, known := Percent(tt.progress, tt.club)
			assert.Equal(t, tt.known, known)
			if tt.known {
				assert.Equal(t, tt.want, pct)
			}
		})
	}
}

func TestDisplayPercentClampsAt100(t *testing.T) {
	assert.Equal(t, 100, DisplayPercent(109))
	assert.Equal(t, 100, DisplayPercent(100))
	assert.Equal(t, 13, DisplayPercent(13))
}

func TestFormatPosition(t *testing.T) {
	withTotal := api.Progress{CurrentPage: 42, PagesTotal: intPtr(320)}
	assert.Equal(t, "Page 42 of 320", FormatPosition(withTotal, api.BookClub{}))

	noTotal := api.Progress{CurrentPage: 42}
	assert.Equal(t, "Page 42", FormatPosition(noTotal, api.BookClub{}))

	override := api.BookClub{PagesTotalOverride: intPtr(500)}
	assert.Equal(t, "Page 42 of 500", FormatPosition(noTotal, override))
}

func TestProgressFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    ProgressForm
		want    api.ProgressInput
		wantErr error
	}{
		{
			name: "page only",
			form: ProgressForm{CurrentPage: "42"},
			want: api.ProgressInput{CurrentPage: 42},
		},
		{
			name: "page and total",
			form: ProgressForm{CurrentPage: "42", PagesTotal: "320"},
			want: api.ProgressInput{CurrentPage: 42, PagesTotal: intPtr(320)},
		},
		{
			name: "whitespace trimmed",
			form: ProgressForm{CurrentPage: " 42 "},
			want: api.ProgressInput{CurrentPage: 42},
		},
		{
			name:    "empty page rejected",
			form:    ProgressForm{},
			wantErr: ErrCurrentPageRequired,
		},
		{
			name:    "blank page rejected",
			form:    ProgressForm{CurrentPage: "   "},
			wantErr: ErrCurrentPageRequired,
		},
		{
			name:    "non-numeric page rejected",
			form:    ProgressForm{CurrentPage: "forty-two"},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "negative page rejected",
			form:    ProgressForm{CurrentPage: "-1"},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "zero total rejected",
			form:    ProgressForm{CurrentPage: "42", PagesTotal: "0"},
			wantErr: ErrInvalidPage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := tt.form.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

func TestJoinProgress(t *testing.T) {
	detail := &api.BookClubDetail{
		Members: []api.ClubMember{
			{UserID: "u-1"},
			{UserID: "u-2"},
			{UserID: "u-3"},
		},
		Progress: []api.Progress{
			{UserID: "u-2", CurrentPage: 42},
			{UserID: "u-1", CurrentPage: 10},
		},
	}

	joined := JoinProgress(detail)
	require.Len(t, joined, 3)

	assert.Equal(t, "u-1", joined[0].Member.UserID)
	require.NotNil(t, joined[0].Progress)
	assert.Equal(t, 10, joined[0].Progress.CurrentPage)

	require.NotNil(t, joined[1].Progress)
	assert.Equal(t, 42, joined[1].Progress.CurrentPage)

	assert.Nil(t, joined[2].Progress, "member without a report pairs with nil")
}

func TestSortComments(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	comments := []api.Comment{
		{ID: "c-2", CreatedAt: base.Add(time.Hour)},
		{ID: "c-1", CreatedAt: base},
		{ID: "c-3", CreatedAt: base.Add(2 * time.Hour)},
	}

	sorted := SortComments(comments)
	require.Len(t, sorted, 3)
	assert.Equal(t, "c-1", sorted[0].ID)
	assert.Equal(t, "c-2", sorted[1].ID)
	assert.Equal(t, "c-3", sorted[2].ID)

	assert.Equal(t, "c-2", comments[0].ID, "input order untouched")
}

func TestCommentFormValidate(t *testing.T) {
	input, err := CommentForm{PageNumber: "17", Body: "Loved this chapter"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, 17, input.PageNumber)
	assert.Equal(t, "Loved this chapter", input.Body)

	_, err = CommentForm{PageNumber: "17"}.Validate()
	assert.Error(t, err)

	_, err = CommentForm{PageNumber: "x", Body: "hello"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidPage)
}
