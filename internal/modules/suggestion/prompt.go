// README: Deterministic prompt construction for the suggestion gateway.
package suggestion

import (
	"fmt"
	"strings"

	"itinera/internal/modules/itinerary"
)

// MaxSuggestions is the per-request cap the model is instructed to honour.
const MaxSuggestions = 5

// BuildPrompt turns itinerary state into the single prompt sent to the
// gateway. The prompt is deterministic for a given itinerary state and
// carries the decision rules as instructions for the model to apply itself:
// destination confinement, inference from approved events when the
// destination is ambiguous, the explicit error object when neither is
// available, and the budget / specificity / duration constraints.
//
// resolvedDestination is the canonical place name from the Places lookup,
// or "" when the lookup is unavailable or found nothing; the model is told
// either way so it can apply the ambiguity rules.
func BuildPrompt(itin *itinerary.Itinerary, remaining float64, resolvedDestination string) string {
	var b strings.Builder

	b.WriteString(`Role: You are the activity-suggestion engine for "Itinera", a trip-planning app.

Trip:
`)
	fmt.Fprintf(&b, "- Destination (free text, possibly ambiguous): %q\n", itin.Trip.Destination)
	if resolvedDestination != "" {
		fmt.Fprintf(&b, "- Destination resolved by Places lookup: %q\n", resolvedDestination)
	} else {
		b.WriteString("- Destination resolved by Places lookup: UNRESOLVED\n")
	}
	fmt.Fprintf(&b, "- Dates: %s to %s\n", itin.Trip.Start.UTC().Format("2006-01-02"), itin.Trip.End.UTC().Format("2006-01-02"))
	fmt.Fprintf(&b, "- Group size: %d\n", itin.Trip.GroupSize)
	fmt.Fprintf(&b, "- Total budget: %.2f\n", itin.Budget)
	fmt.Fprintf(&b, "- Remaining budget (approved spend already deducted): %.2f\n", remaining)

	b.WriteString("\nItinerary events:\n")
	if len(itin.Events) == 0 {
		b.WriteString("- (none)\n")
	}
	for _, ev := range itin.Events {
		fmt.Fprintf(&b, "- [%s] %q at %q, cost %.2f, %s to %s\n",
			eventState(ev), ev.Name, ev.Location, ev.Cost,
			ev.Start.UTC().Format("2006-01-02 15:04"), ev.End.UTC().Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(&b, `
RULES:
1. If the destination above unambiguously names a real place, every suggestion MUST be located in that place.
2. If the destination is ambiguous or not a geographic place, infer the destination from the locations of APPROVED events only.
3. If the destination is ambiguous AND there are no approved events, do NOT guess a location. Respond with exactly one JSON object of the form {"error": "<short explanation>"} and nothing else.
4. Every suggestion must cost no more than the remaining budget. Suggest specific named venues or activities, never generic categories like "museum" or "restaurant". If the existing events already fill most of the trip days, prefer short-duration activities.
5. Return at most %d suggestions as a JSON array. Each element must have exactly these fields: "name" (string), "cost" (number), "category" (string), "location" (string), "durationHours" (number). Return ONLY the JSON array, with no surrounding text.
`, MaxSuggestions)

	return b.String()
}

func eventState(ev *itinerary.Event) string {
	switch {
	case ev.Pending:
		return "pending"
	case ev.Approved:
		return "approved"
	default:
		return "rejected"
	}
}
