// README: Redis-backed cache for validated suggestion results.
package suggestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"itinera/internal/modules/itinerary"
)

// Store caches validated suggestion lists under an itinerary fingerprint so
// an unchanged itinerary does not burn another gateway call. The cache is
// strictly fail-open: any redis error degrades to a live request.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) ([]Suggestion, bool) {
	data, err := s.rdb.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var out []Suggestion
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *Store) Put(ctx context.Context, key string, suggestions []Suggestion) {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	_ = s.rdb.Set(ctx, cacheKey(key), data, s.ttl).Err()
}

func cacheKey(fingerprint string) string {
	return "suggestions:" + fingerprint
}

// Fingerprint derives a cache key from everything the prompt depends on, so
// any itinerary change (including an approval, which moves the remaining
// budget) yields a different key.
func Fingerprint(itin *itinerary.Itinerary, remaining float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%s|%d|%.2f|%.2f",
		itin.Trip.Destination,
		itin.Trip.Start.UTC().Format("2006-01-02"),
		itin.Trip.End.UTC().Format("2006-01-02"),
		itin.Trip.GroupSize,
		itin.Budget,
		remaining,
	)
	for _, ev := range itin.Events {
		fmt.Fprintf(&b, "|%s@%s:%.2f:%t:%t", ev.Name, ev.Location, ev.Cost, ev.Pending, ev.Approved)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
