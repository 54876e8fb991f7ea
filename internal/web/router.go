// Package web serves a read-only local dashboard over the client's state.
// It exposes the signed-in session, the selected library and its catalog,
// and the notification badge as JSON for widgets and status bars.
package web

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig receives all controller dependencies
type RouterConfig struct {
	Health  *HealthController
	Status  *StatusController
	Catalog *CatalogController
}

// NewRouter creates and configures the dashboard router. Every endpoint
// is a GET; the dashboard never mutates server state.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	router.GET("/api/status", cfg.Status.Get)
	router.GET("/api/libraries", cfg.Catalog.Libraries)
	router.GET("/api/books", cfg.Catalog.Books)
	router.GET("/api/clubs", cfg.Catalog.Clubs)
	router.GET("/api/notifications", cfg.Status.Notifications)

	return router
}
