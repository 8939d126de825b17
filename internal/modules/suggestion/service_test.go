// README: Service tests (fail-soft orchestration with a stub gateway).
package suggestion

import (
	"context"
	"errors"
	"testing"
	"time"

	"itinera/internal/modules/itinerary"
)

// stubProvider scripts the gateway: a fixed reply, a fixed error, and a call
// count so tests can assert whether the gateway was reached at all.
type stubProvider struct {
	reply string
	err   error
	calls int
}

func (p *stubProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type stubQuota struct {
	err error
}

func (q *stubQuota) UseToken(ctx context.Context, uid string) error { return q.err }

type memoryCache struct {
	entries map[string][]Suggestion
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]Suggestion)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]Suggestion, bool) {
	v, ok := c.entries[key]
	return v, ok
}

func (c *memoryCache) Put(ctx context.Context, key string, suggestions []Suggestion) {
	c.entries[key] = suggestions
}

func serviceItinerary(t *testing.T) (*itinerary.Service, *itinerary.Itinerary) {
	t.Helper()
	svc := itinerary.NewService(itinerary.NewStore())
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	trip := svc.NewTrip("Rome, Italy", start, start.AddDate(0, 0, 5), 2)
	itin, err := svc.CreateItinerary(trip, 1000)
	if err != nil {
		t.Fatalf("create itinerary: %v", err)
	}
	ev := svc.AddEvent(itin, "Colosseum Tour", 150, "Rome, Italy", start, start.Add(3*time.Hour))
	svc.SetEventApproval(itin, ev, true)
	return svc, itin
}

// TestSuggestHappyPath verifies a well-formed reply survives parsing and
// validation end to end.
func TestSuggestHappyPath(t *testing.T) {
	itins, itin := serviceItinerary(t)
	provider := &stubProvider{reply: `Here you go:
[
  {"name":"Trastevere Food Walk","cost":45,"category":"food","location":"Trastevere, Rome, Italy","durationHours":3},
  {"name":"Louvre Visit","cost":20,"category":"art","location":"Paris, France","durationHours":2}
]`}
	svc := NewService(provider, itins, nil, nil, nil)

	got := svc.Suggest(context.Background(), "u1", itin)
	if len(got) != 1 || got[0].Name != "Trastevere Food Walk" {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
	if provider.calls != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", provider.calls)
	}
}

// TestSuggestFailSoft verifies every pipeline failure degrades to an empty
// list instead of an error reaching the caller.
func TestSuggestFailSoft(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{"transport error", &stubProvider{err: errors.New("connection reset")}},
		{"no array in reply", &stubProvider{reply: "I cannot produce suggestions right now."}},
		{"explicit error object", &stubProvider{reply: `{"error": "Destination is ambiguous and no events are approved."}`}},
		{"non-array JSON", &stubProvider{reply: `{"name":"Pantheon"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itins, itin := serviceItinerary(t)
			svc := NewService(tt.provider, itins, nil, nil, nil)
			got := svc.Suggest(context.Background(), "u1", itin)
			if got == nil {
				t.Fatal("expected non-nil empty slice")
			}
			if len(got) != 0 {
				t.Fatalf("expected empty list, got %+v", got)
			}
		})
	}
}

// TestSuggestQuotaDenied verifies quota exhaustion short-circuits before the
// gateway is called and still fails soft.
func TestSuggestQuotaDenied(t *testing.T) {
	itins, itin := serviceItinerary(t)
	provider := &stubProvider{reply: `[]`}
	svc := NewService(provider, itins, nil, &stubQuota{err: errors.New("insufficient tokens")}, nil)

	got := svc.Suggest(context.Background(), "u1", itin)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
	if provider.calls != 0 {
		t.Fatalf("gateway called %d times despite quota denial", provider.calls)
	}
}

// TestSuggestCache verifies a cache hit skips the gateway and that validated
// results are stored after a live call.
func TestSuggestCache(t *testing.T) {
	itins, itin := serviceItinerary(t)
	provider := &stubProvider{reply: `[{"name":"Trevi Fountain Visit","cost":0,"category":"sightseeing","location":"Rome, Italy","durationHours":1}]`}
	cache := newMemoryCache()
	svc := NewService(provider, itins, cache, nil, nil)
	ctx := context.Background()

	first := svc.Suggest(ctx, "u1", itin)
	if len(first) != 1 {
		t.Fatalf("first call: %+v", first)
	}
	second := svc.Suggest(ctx, "u1", itin)
	if len(second) != 1 {
		t.Fatalf("second call: %+v", second)
	}
	if provider.calls != 1 {
		t.Fatalf("expected cache hit on second call, gateway called %d times", provider.calls)
	}

	// Any itinerary change invalidates the fingerprint.
	ev := itins.AddEvent(itin, "Vatican Museums", 60, "Vatican City", time.Time{}, time.Time{})
	itins.SetEventApproval(itin, ev, true)
	_ = svc.Suggest(ctx, "u1", itin)
	if provider.calls != 2 {
		t.Fatalf("expected fresh gateway call after itinerary change, got %d calls", provider.calls)
	}
}

// TestFingerprintSensitivity verifies an approval flip alone changes the
// cache key.
func TestFingerprintSensitivity(t *testing.T) {
	itins, itin := serviceItinerary(t)
	before := Fingerprint(itin, itins.RemainingBudget(itin))

	ev := itins.AddEvent(itin, "Vatican Museums", 60, "Vatican City", time.Time{}, time.Time{})
	mid := Fingerprint(itin, itins.RemainingBudget(itin))
	if before == mid {
		t.Fatal("adding an event did not change the fingerprint")
	}

	itins.SetEventApproval(itin, ev, true)
	after := Fingerprint(itin, itins.RemainingBudget(itin))
	if mid == after {
		t.Fatal("approving an event did not change the fingerprint")
	}
}

// TestSuggestAmbiguousDestinationNoApprovals verifies the end-to-end
// property: with an ambiguous destination and nothing approved, no returned
// suggestion can have an unjustifiable location, whether the model declines
// with its error object or hallucinates locations that validation rejects.
func TestSuggestAmbiguousDestinationNoApprovals(t *testing.T) {
	itins := itinerary.NewService(itinerary.NewStore())
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	trip := itins.NewTrip("Spring Break", start, start.AddDate(0, 0, 7), 6)
	itin, err := itins.CreateItinerary(trip, 2000)
	if err != nil {
		t.Fatalf("create itinerary: %v", err)
	}

	replies := []string{
		`{"error": "Destination is ambiguous and there are no approved events."}`,
		`[{"name":"Beach Bar Crawl","cost":80,"category":"nightlife","location":"Cancun, Mexico","durationHours":4}]`,
	}
	for _, reply := range replies {
		svc := NewService(&stubProvider{reply: reply}, itins, nil, nil, nil)
		got := svc.Suggest(context.Background(), "u1", itin)
		if len(got) != 0 {
			t.Fatalf("reply %q: got unjustifiable suggestions %+v", reply, got)
		}
	}
}
