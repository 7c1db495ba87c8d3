package service

import "context"

// TextGenerator is the capability boundary to the language model. Intent
// interpretation and response narration both go through this single method
// with different prompts, so tests can swap in a deterministic stub.
type TextGenerator interface {
	// Generate sends one prompt and returns the model's text reply.
	Generate(ctx context.Context, prompt string) (string, error)

	// IsEnabled reports whether the generator is configured and ready.
	IsEnabled() bool
}
