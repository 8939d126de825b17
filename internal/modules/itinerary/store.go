// README: In-memory itinerary registry; enforces one itinerary per trip.
package itinerary

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"itinera/internal/types"
)

var ErrDuplicateTrip = errors.New("trip already has an itinerary")

// Store registers trips and their itineraries for the lifetime of the
// process. It is constructed explicitly and injected, never a package
// global. The keyed-by-pointer map is what makes trip identity reference
// identity. The mutex only guards the registry maps; each itinerary carries
// its own lock for its event collection.
type Store struct {
	mu          sync.Mutex
	trips       map[types.ID]*Trip
	byTrip      map[*Trip]*Itinerary
	itineraries map[types.ID]*Itinerary
}

func NewStore() *Store {
	return &Store{
		trips:       make(map[types.ID]*Trip),
		byTrip:      make(map[*Trip]*Itinerary),
		itineraries: make(map[types.ID]*Itinerary),
	}
}

// NewTrip allocates and registers a new trip. Every call yields a distinct
// trip, even with field values identical to an existing one.
func (s *Store) NewTrip(destination string, start, end time.Time, groupSize int) *Trip {
	t := &Trip{
		ID:          newID(),
		Destination: destination,
		Start:       start,
		End:         end,
		GroupSize:   groupSize,
	}
	s.mu.Lock()
	s.trips[t.ID] = t
	s.mu.Unlock()
	return t
}

// Create registers an itinerary for trip, failing with ErrDuplicateTrip if
// that exact trip already has one.
func (s *Store) Create(trip *Trip, budget float64) (*Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byTrip[trip]; exists {
		return nil, ErrDuplicateTrip
	}
	itin := &Itinerary{
		ID:     newID(),
		Trip:   trip,
		Budget: budget,
	}
	s.byTrip[trip] = itin
	s.itineraries[itin.ID] = itin
	return itin, nil
}

func (s *Store) GetTrip(id types.ID) (*Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trips[id]
	return t, ok
}

func (s *Store) Get(id types.ID) (*Itinerary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	itin, ok := s.itineraries[id]
	return itin, ok
}

func newID() types.ID {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return types.ID(hex.EncodeToString(b[:]))
}
