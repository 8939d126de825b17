// README: HTTP transport; registers routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinera/internal/http/middleware"
	"itinera/internal/modules/itinerary"
	"itinera/internal/modules/suggestion"
)

type ServerDeps struct {
	Itinerary  *itinerary.Service
	Suggestion *suggestion.Service
	// QuotaEnabled makes the suggestion endpoint require an X-User-ID
	// header, so every caller spends from their own token bucket.
	QuotaEnabled bool
}

type Server struct {
	itins        *itinerary.Service
	suggest      *suggestion.Service
	quotaEnabled bool
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		itins:        deps.Itinerary,
		suggest:      deps.Suggestion,
		quotaEnabled: deps.QuotaEnabled,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	api := r.Group("/api")
	api.POST("/trips", s.handleCreateTrip)
	api.POST("/itineraries", s.handleCreateItinerary)
	api.GET("/itineraries/:id", s.handleGetItinerary)
	api.GET("/itineraries/:id/budget", s.handleRemainingBudget)
	api.POST("/itineraries/:id/events", s.handleAddEvent)
	api.PUT("/itineraries/:id/events/:eventID", s.handleUpdateEvent)
	api.POST("/itineraries/:id/events/:eventID/approval", s.handleSetApproval)
	api.POST("/itineraries/:id/finalize", s.handleFinalize)
	api.POST("/itineraries/:id/suggestions", s.handleSuggest)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
