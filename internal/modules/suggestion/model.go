// README: Suggestion record and decode boundary for LLM output.
package suggestion

import "errors"

// ErrMalformedResponse covers every way a gateway reply can fail to yield a
// suggestion array: no bracketed span, invalid JSON, or JSON that is not an
// array. The model replying with its {"error": ...} object lands here too,
// since no array is present.
var ErrMalformedResponse = errors.New("malformed gateway response")

// Suggestion is an LLM-proposed candidate activity. It is transient: it
// lives for one request/response cycle and never becomes an Event on its
// own.
type Suggestion struct {
	Name          string  `json:"name"`
	Cost          float64 `json:"cost"`
	Category      string  `json:"category"`
	Location      string  `json:"location"`
	DurationHours float64 `json:"durationHours"`
}

// rawSuggestion is the untrusted wire shape. Optional-field defaults are
// applied here, at the parse boundary, so the validators downstream never
// have to reason about missing fields (a missing cost becomes 0, which
// trivially passes the budget check).
type rawSuggestion struct {
	Name          string   `json:"name"`
	Cost          *float64 `json:"cost"`
	Category      string   `json:"category"`
	Location      string   `json:"location"`
	DurationHours *float64 `json:"durationHours"`
}

func (r rawSuggestion) toSuggestion() Suggestion {
	s := Suggestion{
		Name:     r.Name,
		Category: r.Category,
		Location: r.Location,
	}
	if r.Cost != nil {
		s.Cost = *r.Cost
	}
	if r.DurationHours != nil {
		s.DurationHours = *r.DurationHours
	}
	return s
}
