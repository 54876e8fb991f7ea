package api

import "time"

// User represents an account as returned by /auth/me and the admin endpoints
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenResponse is the result of a successful credential exchange
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest creates a new account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Library is a shared catalog the user owns or belongs to
type Library struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	UserRole    string    `json:"user_role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LibraryCreateRequest creates a library
type LibraryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// LibraryUpdateRequest patches a library
type LibraryUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// LibraryMember is a user's membership record in a library
type LibraryMember struct {
	ID        string    `json:"id"`
	LibraryID string    `json:"library_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
}

// MemberCreateRequest adds a user to a library
type MemberCreateRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// MemberUpdateRequest changes a member's role
type MemberUpdateRequest struct {
	Role string `json:"role"`
}

// Invitation statuses; an invitation transitions out of pending exactly once.
const (
	InvitationPending   = "pending"
	InvitationAccepted  = "accepted"
	InvitationDeclined  = "declined"
	InvitationCancelled = "cancelled"
	InvitationExpired   = "expired"
)

// Invitation is a pending request for a user to join a library
type Invitation struct {
	ID              string     `json:"id"`
	LibraryID       string     `json:"library_id"`
	InviterID       string     `json:"inviter_id"`
	InviteeUsername string     `json:"invitee_username"`
	InviteeID       string     `json:"invitee_id"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	RespondedAt     *time.Time `json:"responded_at"`

	// Populated on /invitations/pending responses
	LibraryName     string `json:"library_name,omitempty"`
	InviterUsername string `json:"inviter_username,omitempty"`
	InviterFullName string `json:"inviter_full_name,omitempty"`
}

// InvitationCreateRequest invites a user to a library by username
type InvitationCreateRequest struct {
	InviteeUsername string `json:"invitee_username"`
	Role            string `json:"role"`
}

// Notification is a server-created message for the current user
type Notification struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

// BookClub is a reading group with a current book and per-member progress
type BookClub struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"owner_id"`
	Name               string    `json:"name"`
	Description        string    `json:"description"`
	Slug               string    `json:"slug"`
	CurrentBookID      string    `json:"current_book_id"`
	PagesTotalOverride *int      `json:"pages_total_override"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BookClubSummary is the list representation of a club
type BookClubSummary struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	OwnerID            string `json:"owner_id"`
	CurrentBookID      string `json:"current_book_id"`
	PagesTotalOverride *int   `json:"pages_total_override"`
	MemberCount        int    `json:"member_count"`
	MembershipRole     string `json:"membership_role"`
	Slug               string `json:"slug"`
}

// BookClubCreateRequest creates a club
type BookClubCreateRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	CurrentBookID      string `json:"current_book_id,omitempty"`
	Slug               string `json:"slug,omitempty"`
	PagesTotalOverride *int   `json:"pages_total_override,omitempty"`
}

// BookClubUpdateRequest patches a club
type BookClubUpdateRequest struct {
	Name               *string `json:"name,omitempty"`
	Description        *string `json:"description,omitempty"`
	CurrentBookID      *string `json:"current_book_id,omitempty"`
	Slug               *string `json:"slug,omitempty"`
	PagesTotalOverride *int    `json:"pages_total_override,omitempty"`
}

// ClubMember is a user's membership record in a club
type ClubMember struct {
	ID           string     `json:"id"`
	ClubID       string     `json:"club_id"`
	UserID       string     `json:"user_id"`
	Role         string     `json:"role"`
	JoinedAt     time.Time  `json:"joined_at"`
	LastActiveAt *time.Time `json:"last_active_at"`
	LeftAt       *time.Time `json:"left_at"`
	RemovedBy    string     `json:"removed_by"`
}

// ClubMemberInput adds a member to a club
type ClubMemberInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// ClubMemberUpdateRequest changes a club member's role
type ClubMemberUpdateRequest struct {
	Role string `json:"role"`
}

// Progress is one member's position in the club's current book.
// At most one record exists per (club, user); PUT upserts it.
type Progress struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	UserID      string    `json:"user_id"`
	CurrentPage int       `json:"current_page"`
	PagesTotal  *int      `json:"pages_total"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgressInput upserts the caller's progress record
type ProgressInput struct {
	CurrentPage int  `json:"current_page"`
	PagesTotal  *int `json:"pages_total,omitempty"`
}

// Comment is a page-anchored discussion entry; immutable once posted
type Comment struct {
	ID         string    `json:"id"`
	ClubID     string    `json:"club_id"`
	UserID     string    `json:"user_id"`
	PageNumber int       `json:"page_number"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CommentInput posts a new comment
type CommentInput struct {
	PageNumber int    `json:"page_number"`
	Body       string `json:"body"`
}

// ClubBook is a history entry of books the club has read
type ClubBook struct {
	ID          string     `json:"id"`
	ClubID      string     `json:"club_id"`
	BookID      string     `json:"book_id"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// BookClubDetail is the full club view: members, progress, discussion, history
type BookClubDetail struct {
	Club     BookClub     `json:"club"`
	Members  []ClubMember `json:"members"`
	Progress []Progress   `json:"progress"`
	Comments []Comment    `json:"comments"`
	History  []ClubBook   `json:"history"`
}

// bookRecord mirrors the server's shared bibliographic record
type bookRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	ISBN           string   `json:"isbn"`
	Publisher      string   `json:"publisher"`
	Description    string   `json:"description"`
	PublishDate    string   `json:"publish_date"`
	Subjects       []string `json:"subjects"`
	Language       []string `json:"language"`
	PageCount      *int     `json:"page_count"`
	CoverURL       string   `json:"cover_url"`
	MetadataStatus string   `json:"metadata_status"`
}

// libraryBook mirrors the server's per-library copy record
type libraryBook struct {
	ID               string     `json:"id"`
	BookID           string     `json:"book_id"`
	LibraryID        string     `json:"library_id"`
	OwnershipStatus  string     `json:"ownership_status"`
	Condition        string     `json:"condition"`
	PhysicalLocation string     `json:"physical_location"`
	BookType         string     `json:"book_type"`
	Series           string     `json:"series"`
	LibraryNotes     string     `json:"library_notes"`
	LoanStatus       string     `json:"loan_status"`
	DueDate          *time.Time `json:"due_date"`
	CoverImagePath   string     `json:"cover_image_path"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// userBookData mirrors the caller's personal reading state for a copy
type userBookData struct {
	ReadingStatus   string   `json:"reading_status"`
	ProgressPages   *int     `json:"progress_pages"`
	ProgressPercent *float64 `json:"progress_percent"`
	Grade           *int     `json:"grade"`
	PersonalNotes   string   `json:"personal_notes"`
	IsFavorite      bool     `json:"is_favorite"`
}

// libraryBookDetail is the wire shape of one catalog entry
type libraryBookDetail struct {
	Book         bookRecord    `json:"book"`
	LibraryBook  libraryBook   `json:"library_book"`
	PersonalData *userBookData `json:"personal_data"`
}

// Book is the flattened catalog entry the rest of the client works with
type Book struct {
	ID              string
	BookID          string
	LibraryID       string
	Title           string
	Authors         []string
	Subjects        []string
	Description     string
	Publisher       string
	PublishDate     string
	ISBN            string
	Language        []string
	PageCount       *int
	OwnershipStatus string
	Condition       string
	ShelfLocation   string
	BookType        string
	Series          string
	LibraryNotes    string
	LoanStatus      string
	LoanDueDate     *time.Time
	CoverURL        string
	MetadataStatus  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ReadingStatus   string
	ProgressPages   *int
	ProgressPercent *float64
	Grade           *int
	PersonalNotes   string
	IsFavorite      bool
}

func toBook(d libraryBookDetail) Book {
	b := Book{
		ID:              d.LibraryBook.ID,
		BookID:          d.Book.ID,
		LibraryID:       d.LibraryBook.LibraryID,
		Title:           d.Book.Title,
		Authors:         d.Book.Authors,
		Subjects:        d.Book.Subjects,
		Description:     d.Book.Description,
		Publisher:       d.Book.Publisher,
		PublishDate:     d.Book.PublishDate,
		ISBN:            d.Book.ISBN,
		Language:        d.Book.Language,
		PageCount:       d.Book.PageCount,
		OwnershipStatus: d.LibraryBook.OwnershipStatus,
		Condition:       d.LibraryBook.Condition,
		ShelfLocation:   d.LibraryBook.PhysicalLocation,
		BookType:        d.LibraryBook.BookType,
		Series:          d.LibraryBook.Series,
		LibraryNotes:    d.LibraryBook.LibraryNotes,
		LoanStatus:      d.LibraryBook.LoanStatus,
		LoanDueDate:     d.LibraryBook.DueDate,
		CoverURL:        d.Book.CoverURL,
		MetadataStatus:  d.Book.MetadataStatus,
		CreatedAt:       d.LibraryBook.CreatedAt,
		UpdatedAt:       d.LibraryBook.UpdatedAt,
	}
	if p := d.PersonalData; p != nil {
		b.ReadingStatus = p.ReadingStatus
		b.ProgressPages = p.ProgressPages
		b.ProgressPercent = p.ProgressPercent
		b.Grade = p.Grade
		b.PersonalNotes = p.PersonalNotes
		b.IsFavorite = p.IsFavorite
	}
	return b
}

// AdminUser is the admin listing shape, a user plus their library roles
type AdminUser struct {
	User
	Libraries []AdminUserLibrary `json:"libraries"`
}

// AdminUserLibrary is one library role entry on an admin user row
type AdminUserLibrary struct {
	LibraryID   string `json:"library_id"`
	LibraryName string `json:"library_name"`
	Role        string `json:"role"`
}

// EnrichmentResult is one external metadata lookup candidate
type EnrichmentResult struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	ISBN          string   `json:"isbn"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
	Description   string   `json:"description"`
	CoverURL      string   `json:"coverUrl"`
	PageCount     *int     `json:"pageCount"`
}
