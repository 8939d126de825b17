// README: Itinerary service tests (identity, approval lifecycle, budget).
package itinerary

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func newTestService() *Service {
	return NewService(NewStore())
}

func testTrip(svc *Service, destination string) *Trip {
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	return svc.NewTrip(destination, start, start.AddDate(0, 0, 5), 2)
}

// TestCreateItineraryDuplicateTrip verifies that one trip gets at most one
// itinerary, while two distinct trips with identical field values each get
// their own.
func TestCreateItineraryDuplicateTrip(t *testing.T) {
	svc := newTestService()
	trip := testTrip(svc, "Rome, Italy")

	if _, err := svc.CreateItinerary(trip, 1000); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateItinerary(trip, 2000); !errors.Is(err, ErrDuplicateTrip) {
		t.Fatalf("second create for same trip: expected ErrDuplicateTrip, got %v", err)
	}

	// Same field values, different identity.
	twin := testTrip(svc, "Rome, Italy")
	if _, err := svc.CreateItinerary(twin, 1000); err != nil {
		t.Fatalf("create for field-identical twin trip: %v", err)
	}
}

// TestAddEventInitialState verifies every added event starts pending and
// unapproved, in insertion order.
func TestAddEventInitialState(t *testing.T) {
	svc := newTestService()
	itin, err := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	names := []string{"Colosseum Tour", "Vatican Museums", "Trastevere Food Walk"}
	for _, name := range names {
		ev := svc.AddEvent(itin, name, 50, "Rome, Italy", time.Time{}, time.Time{})
		if !ev.Pending || ev.Approved {
			t.Errorf("event %q: got pending=%v approved=%v, want pending=true approved=false", name, ev.Pending, ev.Approved)
		}
	}
	if len(itin.Events) != len(names) {
		t.Fatalf("expected %d events, got %d", len(names), len(itin.Events))
	}
	for i, ev := range itin.Events {
		if ev.Name != names[i] {
			t.Errorf("event %d: got %q, want %q (insertion order)", i, ev.Name, names[i])
		}
	}
}

// TestSetEventApproval verifies approval always clears pending, for both
// decisions and regardless of prior state, and that it is idempotent.
func TestSetEventApproval(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)

	cases := []struct {
		name     string
		approved bool
	}{
		{"approve", true},
		{"reject", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := svc.AddEvent(itin, tc.name, 10, "Rome", time.Time{}, time.Time{})
			svc.SetEventApproval(itin, ev, tc.approved)
			if ev.Approved != tc.approved || ev.Pending {
				t.Fatalf("got approved=%v pending=%v, want approved=%v pending=false", ev.Approved, ev.Pending, tc.approved)
			}
			// Second call leaves the same final state.
			svc.SetEventApproval(itin, ev, tc.approved)
			if ev.Approved != tc.approved || ev.Pending {
				t.Fatalf("after repeat: got approved=%v pending=%v", ev.Approved, ev.Pending)
			}
		})
	}

	// Re-deciding flips approval and keeps pending cleared.
	ev := svc.AddEvent(itin, "flip", 10, "Rome", time.Time{}, time.Time{})
	svc.SetEventApproval(itin, ev, true)
	svc.SetEventApproval(itin, ev, false)
	if ev.Approved || ev.Pending {
		t.Fatalf("after approve-then-reject: got approved=%v pending=%v", ev.Approved, ev.Pending)
	}
}

// TestUpdateEventPreservesApproval verifies content edits never touch the
// approval state.
func TestUpdateEventPreservesApproval(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)

	ev := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome, Italy", time.Time{}, time.Time{})
	svc.SetEventApproval(itin, ev, true)

	newStart := time.Date(2026, 4, 11, 9, 0, 0, 0, time.UTC)
	svc.UpdateEvent(itin, ev, "Colosseum Night Tour", 175, newStart, newStart.Add(3*time.Hour))

	if ev.Name != "Colosseum Night Tour" || ev.Cost != 175 || !ev.Start.Equal(newStart) {
		t.Fatalf("update did not overwrite fields: %+v", ev)
	}
	if !ev.Approved || ev.Pending {
		t.Fatalf("update changed approval state: approved=%v pending=%v", ev.Approved, ev.Pending)
	}
}

// TestRemainingBudget verifies only approved events count against budget and
// that overspend yields a negative remainder rather than an error.
func TestRemainingBudget(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)

	if got := svc.RemainingBudget(itin); got != 1000 {
		t.Fatalf("empty itinerary: remaining = %v, want 1000", got)
	}

	approved := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome", time.Time{}, time.Time{})
	svc.SetEventApproval(itin, approved, true)
	if got := svc.RemainingBudget(itin); got != 850 {
		t.Fatalf("after approving 150: remaining = %v, want 850", got)
	}

	// A pending event, however expensive, does not move the remainder.
	svc.AddEvent(itin, "Private Jet", 9999, "Rome", time.Time{}, time.Time{})
	if got := svc.RemainingBudget(itin); got != 850 {
		t.Fatalf("pending event counted: remaining = %v, want 850", got)
	}

	// Neither does a rejected one.
	rejected := svc.AddEvent(itin, "Opera Night", 500, "Rome", time.Time{}, time.Time{})
	svc.SetEventApproval(itin, rejected, false)
	if got := svc.RemainingBudget(itin); got != 850 {
		t.Fatalf("rejected event counted: remaining = %v, want 850", got)
	}

	// Approved overspend goes negative.
	splurge := svc.AddEvent(itin, "Helicopter Ride", 2000, "Rome", time.Time{}, time.Time{})
	svc.SetEventApproval(itin, splurge, true)
	if got := svc.RemainingBudget(itin); got != -1150 {
		t.Fatalf("overspend: remaining = %v, want -1150", got)
	}
}

// TestFinalize verifies the flag flips with no side effects on events.
func TestFinalize(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)
	ev := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome", time.Time{}, time.Time{})

	svc.Finalize(itin, true)
	if !itin.Finalized {
		t.Fatal("expected finalized=true")
	}
	if !ev.Pending {
		t.Fatal("finalize must not decide events")
	}
	svc.Finalize(itin, false)
	if itin.Finalized {
		t.Fatal("expected finalized=false")
	}
}

// TestConcurrentEventMutation verifies one itinerary tolerates simultaneous
// writers and readers: concurrent adds, approvals, budget reads, and
// snapshots must neither race nor lose events.
func TestConcurrentEventMutation(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)

	const workers = 4
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ev := svc.AddEvent(itin, "Walk", 10, "Rome", time.Time{}, time.Time{})
				svc.SetEventApproval(itin, ev, true)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < workers*perWorker; i++ {
			_ = svc.RemainingBudget(itin)
			_ = svc.Snapshot(itin)
		}
	}()
	wg.Wait()

	snap := svc.Snapshot(itin)
	if len(snap.Events) != workers*perWorker {
		t.Fatalf("expected %d events, got %d", workers*perWorker, len(snap.Events))
	}
	if got := svc.RemainingBudget(itin); got != 1000-float64(workers*perWorker)*10 {
		t.Fatalf("remaining = %v after concurrent approvals", got)
	}
}

// TestSnapshotIsolation verifies a snapshot is detached: later mutation of
// the live itinerary never shows through it.
func TestSnapshotIsolation(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)
	ev := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome", time.Time{}, time.Time{})

	snap := svc.Snapshot(itin)
	svc.SetEventApproval(itin, ev, true)
	svc.AddEvent(itin, "Forum Walk", 20, "Rome", time.Time{}, time.Time{})

	if len(snap.Events) != 1 {
		t.Fatalf("snapshot grew: %d events", len(snap.Events))
	}
	if !snap.Events[0].Pending || snap.Events[0].Approved {
		t.Fatal("snapshot event state changed by live mutation")
	}
	if snap.Trip != itin.Trip {
		t.Fatal("snapshot must share the trip pointer")
	}
}

// TestFindEvent verifies lookup within a single itinerary.
func TestFindEvent(t *testing.T) {
	svc := newTestService()
	itin, _ := svc.CreateItinerary(testTrip(svc, "Rome"), 1000)
	ev := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome", time.Time{}, time.Time{})

	got, ok := svc.FindEvent(itin, ev.ID)
	if !ok || got != ev {
		t.Fatalf("FindEvent(%s) = %v, %v", ev.ID, got, ok)
	}
	if _, ok := svc.FindEvent(itin, "missing"); ok {
		t.Fatal("expected miss for unknown event id")
	}
}
