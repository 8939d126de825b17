// README: HTTP helper utilities for JSON views and error mapping.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"itinera/internal/modules/itinerary"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

func writeItineraryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, itinerary.ErrDuplicateTrip):
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

type tripView struct {
	ID          string    `json:"trip_id"`
	Destination string    `json:"destination"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	GroupSize   int       `json:"group_size"`
}

type eventView struct {
	ID       string    `json:"event_id"`
	Name     string    `json:"name"`
	Cost     float64   `json:"cost"`
	Location string    `json:"location"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Pending  bool      `json:"pending"`
	Approved bool      `json:"approved"`
}

type itineraryView struct {
	ID        string      `json:"itinerary_id"`
	Trip      tripView    `json:"trip"`
	Events    []eventView `json:"events"`
	Finalized bool        `json:"finalized"`
	Budget    float64     `json:"budget"`
}

func toTripView(t *itinerary.Trip) tripView {
	return tripView{
		ID:          string(t.ID),
		Destination: t.Destination,
		Start:       t.Start,
		End:         t.End,
		GroupSize:   t.GroupSize,
	}
}

func toEventView(ev itinerary.Event) eventView {
	return eventView{
		ID:       string(ev.ID),
		Name:     ev.Name,
		Cost:     ev.Cost,
		Location: ev.Location,
		Start:    ev.Start,
		End:      ev.End,
		Pending:  ev.Pending,
		Approved: ev.Approved,
	}
}

// toItineraryView renders a Snapshot; callers must not pass a live itinerary.
func toItineraryView(itin *itinerary.Itinerary) itineraryView {
	events := make([]eventView, 0, len(itin.Events))
	for _, ev := range itin.Events {
		events = append(events, toEventView(*ev))
	}
	return itineraryView{
		ID:        string(itin.ID),
		Trip:      toTripView(itin.Trip),
		Events:    events,
		Finalized: itin.Finalized,
		Budget:    itin.Budget,
	}
}
