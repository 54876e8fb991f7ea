package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfmate/shelfmate/internal/api"
	"github.com/shelfmate/shelfmate/internal/librarystate"
	"github.com/shelfmate/shelfmate/internal/notifications"
	"github.com/shelfmate/shelfmate/internal/session"
)

type StatusResponse struct {
	Authenticated  bool   `json:"authenticated"`
	Username       string `json:"username,omitempty"`
	IsAdmin        bool   `json:"is_admin,omitempty"`
	CurrentLibrary string `json:"current_library,omitempty"`
	UnreadCount    int    `json:"unread_count"`
}

// StatusController reports the session and notification badge state
type StatusController struct {
	session   *session.Store
	libraries *librarystate.Store
	syncer    *notifications.Syncer
}

func NewStatusController(sess *session.Store, libraries *librarystate.Store, syncer *notifications.Syncer) *StatusController {
	return &StatusController{
		session:   sess,
		libraries: libraries,
		syncer:    syncer,
	}
}

func (s *StatusController) Get(c *gin.Context) {
	resp := StatusResponse{
		Authenticated: s.session.IsAuthenticated(),
	}

	if user := s.session.User(); user != nil {
		resp.Username = user.Username
		resp.IsAdmin = user.IsAdmin
	}
	if current := s.libraries.Current(); current != nil {
		resp.CurrentLibrary = current.Name
	}
	if count, err := s.syncer.UnreadCount(c.Request.Context()); err == nil {
		resp.UnreadCount = count
	}

	c.IndentedJSON(http.StatusOK, resp)
}

// Notifications serves the feed the way the panel sees it: opening the
// panel triggers the lazy fetch, closing it again on the way out.
func (s *StatusController) Notifications(c *gin.Context) {
	s.syncer.OpenPanel()
	defer s.syncer.ClosePanel()

	feed, err := s.syncer.Feed(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"notifications": feed})
}

// respondError maps typed API errors onto dashboard status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
	case errors.Is(err, api.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, api.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
