package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfmate/shelfmate/internal/statestore"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	state   *statestore.Store
	version string
}

func NewHealthController(state *statestore.Store, version string) *HealthController {
	return &HealthController{
		state:   state,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.state != nil {
		if err := h.state.Ping(); err != nil {
			checks["state_store"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["state_store"] = "ok"
		}
	} else {
		checks["state_store"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
