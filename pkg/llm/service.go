package llm

import "context"

// Service is the external text-generation collaborator. Both calls are
// synchronous, single-attempt, and may fail or return unusable text; callers
// degrade locally instead of retrying.
type Service interface {
	// Classify submits a classification prompt and returns the raw result,
	// expected to be a short code-like string.
	Classify(ctx context.Context, prompt string) (string, error)

	// Complete submits a composed conversation prompt and returns natural
	// language text. Empty or near-empty output is a legitimate result that
	// callers must reject themselves.
	Complete(ctx context.Context, prompt string) (string, error)

	Name() string
}
