package gemini

import "context"

// Model is the generative-text capability consumed by the note-generation
// and translation stages. Implementations make exactly one logical attempt
// per call; key rotation on quota errors is a credential concern, not a
// retry of failed generation.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
