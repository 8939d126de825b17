// README: Handlers for trips, itineraries, events, and suggestions.
package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"itinera/internal/modules/itinerary"
	"itinera/internal/modules/suggestion"
	"itinera/internal/types"
)

type createTripReq struct {
	Destination string    `json:"destination"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	GroupSize   int       `json:"group_size"`
}

func (s *Server) handleCreateTrip(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Destination == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}
	trip := s.itins.NewTrip(req.Destination, req.Start, req.End, req.GroupSize)
	c.JSON(http.StatusCreated, toTripView(trip))
}

type createItineraryReq struct {
	TripID string  `json:"trip_id"`
	Budget float64 `json:"budget"`
}

func (s *Server) handleCreateItinerary(c *gin.Context) {
	var req createItineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	trip, ok := s.itins.GetTrip(types.ID(req.TripID))
	if !ok {
		writeError(c, http.StatusNotFound, "trip not found")
		return
	}
	itin, err := s.itins.CreateItinerary(trip, req.Budget)
	if err != nil {
		writeItineraryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toItineraryView(s.itins.Snapshot(itin)))
}

func (s *Server) handleGetItinerary(c *gin.Context) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	c.JSON(http.StatusOK, toItineraryView(s.itins.Snapshot(itin)))
}

func (s *Server) handleRemainingBudget(c *gin.Context) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"budget":    itin.Budget,
		"remaining": s.itins.RemainingBudget(itin),
	})
}

type addEventReq struct {
	Name     string    `json:"name"`
	Cost     float64   `json:"cost"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func (s *Server) handleAddEvent(c *gin.Context) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	var req addEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(c, http.StatusBadRequest, "missing event name")
		return
	}
	ev := s.itins.AddEvent(itin, req.Name, req.Cost, req.Location, req.Start, req.End)
	c.JSON(http.StatusCreated, toEventView(s.itins.EventSnapshot(itin, ev)))
}

type updateEventReq struct {
	Name  string    `json:"name"`
	Cost  float64   `json:"cost"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s *Server) handleUpdateEvent(c *gin.Context) {
	itin, ev, ok := s.lookupEvent(c)
	if !ok {
		return
	}
	var req updateEventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s.itins.UpdateEvent(itin, ev, req.Name, req.Cost, req.Start, req.End)
	c.JSON(http.StatusOK, toEventView(s.itins.EventSnapshot(itin, ev)))
}

type setApprovalReq struct {
	Approved bool `json:"approved"`
}

func (s *Server) handleSetApproval(c *gin.Context) {
	itin, ev, ok := s.lookupEvent(c)
	if !ok {
		return
	}
	var req setApprovalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s.itins.SetEventApproval(itin, ev, req.Approved)
	c.JSON(http.StatusOK, toEventView(s.itins.EventSnapshot(itin, ev)))
}

type finalizeReq struct {
	Finalized bool `json:"finalized"`
}

func (s *Server) handleFinalize(c *gin.Context) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	var req finalizeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	s.itins.Finalize(itin, req.Finalized)
	c.JSON(http.StatusOK, toItineraryView(s.itins.Snapshot(itin)))
}

// handleSuggest always answers 200: a failed pipeline is an empty list, not
// an error, so suggestion trouble can never break the planning flow.
func (s *Server) handleSuggest(c *gin.Context) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return
	}
	uid := c.GetHeader("X-User-ID")
	if uid == "" {
		// With quota enforcement on, an anonymous fallback would pool every
		// unidentified caller into one monthly token bucket.
		if s.quotaEnabled {
			writeError(c, http.StatusBadRequest, "missing X-User-ID header")
			return
		}
		uid = "anonymous"
	}
	suggestions := s.suggest.Suggest(c.Request.Context(), uid, itin)
	if suggestions == nil {
		suggestions = []suggestion.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) lookupEvent(c *gin.Context) (*itinerary.Itinerary, *itinerary.Event, bool) {
	itin, ok := s.itins.GetItinerary(types.ID(c.Param("id")))
	if !ok {
		writeError(c, http.StatusNotFound, "itinerary not found")
		return nil, nil, false
	}
	ev, ok := s.itins.FindEvent(itin, types.ID(c.Param("eventID")))
	if !ok {
		writeError(c, http.StatusNotFound, "event not found")
		return nil, nil, false
	}
	return itin, ev, true
}
