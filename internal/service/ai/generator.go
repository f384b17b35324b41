package ai

import (
	"context"

	"google.golang.org/genai"
)

// GenerateRequest carries everything one structured generation call needs:
// instruction text, user prompt, output schema, and decoding settings.
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *genai.Schema
	Temperature       float32
	MaxOutputTokens   int
}

// Generator is the capability boundary around the external generation
// service. One Generate call performs exactly one outbound request, no
// retries, no caching, no rate limiting. Implementations fail with
// errors.EmptyResponseError when the service returns no text and
// errors.TransportError (wrapping the cause) when the call itself errors.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Provider() string
	Model() string
}
