// Package model owns the lifecycle of the single local model instance: the
// shared handle every request reads, the background loader that populates it
// exactly once, and the llama.cpp-backed generation capability.
package model

import "context"

// Generator is the text-generation capability backing the service.
// Implementations are expected to be expensive to construct and are shared
// across all requests for the process lifetime.
type Generator interface {
	// Generate produces a completion for the given prompt. Implementations
	// should stop early when ctx is canceled where the backend allows it.
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Params captures sampling parameters passed to the backend.
type Params struct {
	MaxTokens     int
	Temperature   float64
	TopK          int
	TopP          float64
	RepeatPenalty float64
}
