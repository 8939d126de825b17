// README: Gateway contract for the external LLM text-completion service.
package ai

import (
	"context"
)

// LLMProvider is the whole surface the suggestion pipeline needs from an AI
// backend: submit one text prompt, receive one text completion, or fail with
// a transport error. Implementations exist for Gemini and OpenAI.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
