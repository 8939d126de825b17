// README: Multi-stage validation of untrusted LLM suggestions.
package suggestion

import (
	"strings"
	"unicode"

	"itinera/internal/modules/itinerary"
)

// Decision records the full accept/reject outcome for one candidate. Every
// failed check contributes a reason; checks are independent, so a rejected
// candidate can carry several.
type Decision struct {
	Suggestion Suggestion
	Accepted   bool
	Reasons    []string
}

const (
	reasonMissingName   = "Missing suggestion name"
	reasonLocation      = "Location matches neither the trip destination nor any itinerary event location"
	reasonOverBudget    = "Exceeds remaining budget"
	reasonDuplicateName = "Duplicates an existing event name"
)

// Validate filters candidates against the itinerary. A candidate survives
// only if it passes the destination, budget, and duplicate checks; survivors
// keep their original order. A malformed candidate is a rejection, never an
// abort of the remaining ones.
func Validate(itin *itinerary.Itinerary, remaining float64, candidates []Suggestion) ([]Suggestion, []Decision) {
	accepted := make([]Suggestion, 0, len(candidates))
	decisions := make([]Decision, 0, len(candidates))

	for _, cand := range candidates {
		var reasons []string
		if strings.TrimSpace(cand.Name) == "" {
			reasons = append(reasons, reasonMissingName)
		}
		if !locationMatches(itin, cand.Location) {
			reasons = append(reasons, reasonLocation)
		}
		if cand.Cost > remaining {
			reasons = append(reasons, reasonOverBudget)
		}
		if duplicatesEventName(itin, cand.Name) {
			reasons = append(reasons, reasonDuplicateName)
		}

		d := Decision{Suggestion: cand, Accepted: len(reasons) == 0, Reasons: reasons}
		decisions = append(decisions, d)
		if d.Accepted {
			accepted = append(accepted, cand)
		}
	}
	return accepted, decisions
}

// locationMatches applies the deliberately loose substring heuristic: the
// normalized suggestion location must contain the normalized destination, or
// the normalized location of any event already on the itinerary (approved or
// not). "Trastevere, Rome, Italy" therefore matches destination "Rome".
func locationMatches(itin *itinerary.Itinerary, location string) bool {
	loc := normalize(location)
	if loc == "" {
		return false
	}
	if dest := normalize(itin.Trip.Destination); dest != "" && strings.Contains(loc, dest) {
		return true
	}
	for _, ev := range itin.Events {
		if evLoc := normalize(ev.Location); evLoc != "" && strings.Contains(loc, evLoc) {
			return true
		}
	}
	return false
}

// duplicatesEventName is a case-insensitive exact match against existing
// event names. No punctuation normalization here: "Colosseum Tour" and
// "colosseum tour" collide, "Colosseum-Tour" does not.
func duplicatesEventName(itin *itinerary.Itinerary, name string) bool {
	for _, ev := range itin.Events {
		if strings.EqualFold(ev.Name, name) {
			return true
		}
	}
	return false
}

// normalize lowercases and strips everything that is not a letter or digit.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
