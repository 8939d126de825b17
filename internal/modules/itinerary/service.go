// README: Itinerary service: event lifecycle and budget arithmetic.
package itinerary

import (
	"time"

	"itinera/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) NewTrip(destination string, start, end time.Time, groupSize int) *Trip {
	return s.store.NewTrip(destination, start, end, groupSize)
}

// CreateItinerary registers an itinerary for trip with the given budget
// ceiling. Returns ErrDuplicateTrip if this exact trip already has one; the
// caller must handle that, it is never swallowed.
func (s *Service) CreateItinerary(trip *Trip, budget float64) (*Itinerary, error) {
	return s.store.Create(trip, budget)
}

func (s *Service) GetTrip(id types.ID) (*Trip, bool) {
	return s.store.GetTrip(id)
}

func (s *Service) GetItinerary(id types.ID) (*Itinerary, bool) {
	return s.store.Get(id)
}

// AddEvent appends a new pending event to the itinerary. It always succeeds:
// cost sign, time ordering, and overlap are deliberately not validated here.
func (s *Service) AddEvent(itin *Itinerary, name string, cost float64, location string, start, end time.Time) *Event {
	ev := &Event{
		ID:       newID(),
		Name:     name,
		Cost:     cost,
		Location: location,
		Start:    start,
		End:      end,
		Pending:  true,
		Approved: false,
	}
	itin.mu.Lock()
	itin.Events = append(itin.Events, ev)
	itin.mu.Unlock()
	return ev
}

// UpdateEvent overwrites the four mutable fields in place. Approval state is
// untouched: editing an approved event does not revert it to pending.
func (s *Service) UpdateEvent(itin *Itinerary, ev *Event, name string, cost float64, start, end time.Time) {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	ev.Name = name
	ev.Cost = cost
	ev.Start = start
	ev.End = end
}

// SetEventApproval records the approval decision and unconditionally clears
// Pending. This is the only path that clears Pending.
func (s *Service) SetEventApproval(itin *Itinerary, ev *Event, approved bool) {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	ev.Approved = approved
	ev.Pending = false
}

// Finalize sets the flag only; events need not be decided first.
func (s *Service) Finalize(itin *Itinerary, finalized bool) {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	itin.Finalized = finalized
}

// RemainingBudget is the budget ceiling minus the cost of approved events.
// Pending and rejected events never count. A negative result is a signal for
// downstream consumers, not an error.
func (s *Service) RemainingBudget(itin *Itinerary) float64 {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	remaining := itin.Budget
	for _, ev := range itin.Events {
		if ev.Approved {
			remaining -= ev.Cost
		}
	}
	return remaining
}

// FindEvent looks an event up by ID within a single itinerary.
func (s *Service) FindEvent(itin *Itinerary, id types.ID) (*Event, bool) {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	for _, ev := range itin.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return nil, false
}

// Snapshot returns a consistent copy of the itinerary's mutable state. The
// copy shares the Trip pointer (trips are immutable after creation) but owns
// its event values, so callers may iterate it freely while live requests
// keep mutating the original.
func (s *Service) Snapshot(itin *Itinerary) *Itinerary {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	events := make([]*Event, len(itin.Events))
	for i, ev := range itin.Events {
		cp := *ev
		events[i] = &cp
	}
	return &Itinerary{
		ID:        itin.ID,
		Trip:      itin.Trip,
		Events:    events,
		Finalized: itin.Finalized,
		Budget:    itin.Budget,
	}
}

// EventSnapshot returns a copy of one event's current state, taken under the
// itinerary lock, for rendering outside it.
func (s *Service) EventSnapshot(itin *Itinerary, ev *Event) Event {
	itin.mu.Lock()
	defer itin.mu.Unlock()
	return *ev
}
