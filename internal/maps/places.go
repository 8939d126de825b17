// README: Destination resolution via Google Places text search.
package maps

import (
	"context"
	"fmt"
	"log"

	"googlemaps.github.io/maps"
)

// Resolver canonicalizes free-text trip destinations. The result only
// annotates the suggestion prompt: when a lookup fails or finds nothing the
// model falls back to its own ambiguity handling, so the resolver is safe to
// leave out entirely.
type Resolver struct {
	client *maps.Client
}

// NewResolver creates a Resolver with the given API key.
func NewResolver(apiKey string) (*Resolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &Resolver{client: client}, nil
}

// Resolve returns the canonical name and address of the best Places match
// for query, or false when the query does not resolve to a real place.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, bool) {
	if query == "" {
		return "", false
	}

	resp, err := r.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		log.Printf("places lookup for %q failed: %v", query, err)
		return "", false
	}
	if len(resp.Results) == 0 {
		return "", false
	}

	best := resp.Results[0]
	if best.FormattedAddress == "" {
		return best.Name, best.Name != ""
	}
	if best.Name == "" || best.Name == best.FormattedAddress {
		return best.FormattedAddress, true
	}
	return fmt.Sprintf("%s (%s)", best.Name, best.FormattedAddress), true
}
