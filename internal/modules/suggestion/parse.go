// README: Extracts the first balanced JSON array from free-text LLM replies.
package suggestion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractArray locates the first balanced top-level [...] span in text and
// decodes it as a suggestion array. The scan is string-literal aware, so
// brackets inside JSON strings do not unbalance it. Failures wrap
// ErrMalformedResponse; the caller decides whether to degrade.
//
// Individual elements that fail to decode are dropped rather than aborting
// the whole array: one bad entry is a rejection, not a pipeline error.
func ExtractArray(text string) ([]Suggestion, error) {
	span, ok := firstArraySpan(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON array in reply", ErrMalformedResponse)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(span), &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make([]Suggestion, 0, len(elems))
	for _, e := range elems {
		var raw rawSuggestion
		if err := json.Unmarshal(e, &raw); err != nil {
			continue
		}
		out = append(out, raw.toSuggestion())
	}
	return out, nil
}

// ErrorMessage reports the model's explicit {"error": "..."} reply, if that
// is what text contains. Diagnostic only: the suggestion flow still treats
// such a reply as "no suggestions".
func ErrorMessage(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	var obj struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return "", false
	}
	return obj.Error, obj.Error != ""
}

// firstArraySpan scans for the earliest '[' that opens a balanced span. A
// '[' that never closes (stray bracket in prose) is skipped and the scan
// resumes at the next one.
func firstArraySpan(text string) (string, bool) {
	for start := strings.IndexByte(text, '['); start >= 0; {
		if end, ok := scanBalanced(text, start); ok {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], '[')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

func scanBalanced(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				if c == ']' {
					return i, true
				}
				return 0, false
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}
