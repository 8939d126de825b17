// README: Itinerary aggregate: trip, events, budget, finalized flag.
package itinerary

import (
	"sync"
	"time"

	"itinera/internal/types"
)

// Trip describes one journey. Identity is the *Trip pointer, not the field
// values: two trips with identical fields are distinct trips.
type Trip struct {
	ID          types.ID
	Destination string
	Start       time.Time
	End         time.Time
	GroupSize   int
}

// Event is a single proposed or approved activity inside one itinerary.
// Pending and Approved are not independent: deciding approval always clears
// Pending, so an event is either pending-undecided or decided. Events are
// never deleted; a rejected event stays with Approved=false, Pending=false
// so it still participates in duplicate checks.
type Event struct {
	ID       types.ID
	Name     string
	Cost     float64
	Location string
	Start    time.Time
	End      time.Time
	Pending  bool
	Approved bool
}

// Itinerary owns its events in insertion order. Order matters for display
// only, never for logic. The event collection is shared state once the HTTP
// layer serves concurrent requests: mu guards Events, Finalized, and every
// event's fields. All access goes through Service methods, which hold it;
// readers outside the package work on a Snapshot.
type Itinerary struct {
	ID        types.ID
	Trip      *Trip
	Events    []*Event
	Finalized bool
	Budget    float64

	mu sync.Mutex
}
