// README: Suggestion service: fail-soft orchestration around the gateway.
package suggestion

import (
	"context"
	"log"
	"strings"

	"itinera/internal/ai"
	"itinera/internal/modules/itinerary"
)

// Quota gates gateway calls per user. aiquota.Service implements it.
type Quota interface {
	UseToken(ctx context.Context, uid string) error
}

// Resolver canonicalizes a free-text destination. maps.Resolver implements
// it. A failed or absent lookup just leaves the ambiguity rules to the
// model.
type Resolver interface {
	Resolve(ctx context.Context, query string) (string, bool)
}

// Cache stores validated results keyed by itinerary fingerprint. *Store
// implements it over redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]Suggestion, bool)
	Put(ctx context.Context, key string, suggestions []Suggestion)
}

// Service wraps the gateway call with prompt construction, response parsing,
// and validation. Suggestions are best-effort: past the itinerary lookup,
// every failure degrades to an empty list with a logged diagnostic and never
// aborts the surrounding itinerary flow.
type Service struct {
	provider ai.LLMProvider
	itins    *itinerary.Service
	cache    Cache
	quota    Quota
	resolver Resolver
}

// NewService wires the requester. cache, quota, and resolver may each be nil
// (no caching, unlimited calls, no Places lookup).
func NewService(provider ai.LLMProvider, itins *itinerary.Service, cache Cache, quota Quota, resolver Resolver) *Service {
	return &Service{
		provider: provider,
		itins:    itins,
		cache:    cache,
		quota:    quota,
		resolver: resolver,
	}
}

// Suggest runs one suggestion cycle for the itinerary and returns the
// validated subset, in the model's order. The returned slice is empty, never
// nil-dereferencing the caller, on any pipeline failure: transport error,
// malformed reply, the model's explicit error object, or quota exhaustion.
func (s *Service) Suggest(ctx context.Context, uid string, itin *itinerary.Itinerary) []Suggestion {
	// One consistent view for the whole cycle: the prompt, fingerprint, and
	// validation must not see an itinerary mid-mutation from another request.
	snap := s.itins.Snapshot(itin)
	remaining := s.itins.RemainingBudget(snap)
	fp := Fingerprint(snap, remaining)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, fp); ok {
			return cached
		}
	}

	if s.quota != nil {
		if err := s.quota.UseToken(ctx, uid); err != nil {
			log.Printf("suggestion: quota denied for %s: %v", uid, err)
			return []Suggestion{}
		}
	}

	resolved := ""
	if s.resolver != nil {
		if name, ok := s.resolver.Resolve(ctx, snap.Trip.Destination); ok {
			resolved = name
		}
	}

	prompt := BuildPrompt(snap, remaining, resolved)

	reply, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		log.Printf("suggestion: gateway failure: %v", err)
		return []Suggestion{}
	}

	parsed, err := ExtractArray(reply)
	if err != nil {
		if msg, ok := ErrorMessage(reply); ok {
			// The model declined per its rules. Not surfaced to the caller,
			// only logged; the caller just sees zero suggestions.
			log.Printf("suggestion: gateway declined: %s", msg)
		} else {
			log.Printf("suggestion: %v", err)
		}
		return []Suggestion{}
	}

	accepted, decisions := Validate(snap, remaining, parsed)
	for _, d := range decisions {
		if !d.Accepted {
			log.Printf("suggestion: rejected %q: %s", d.Suggestion.Name, strings.Join(d.Reasons, "; "))
		}
	}

	if s.cache != nil {
		s.cache.Put(ctx, fp, accepted)
	}
	return accepted
}
