// Package llm hides the remote text-generation vendor behind one interface.
// The conversion service only ever asks for "text from a prompt"; Gemini and
// Ollama adapters translate that into their own wire formats.
package llm

import "context"

// LLMProvider is the model-agnostic interface for text generation.
type LLMProvider interface {
	// ChatCompletion performs a single non-streaming completion.
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// ModelInfo returns static metadata about the provider/model.
	ModelInfo() ModelMeta

	// HealthCheck returns nil if the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
