package translator

import "context"

// Translator rewrites a styled notes artifact into the target language,
// leaving the markup skeleton untouched.
type Translator interface {
	Translate(ctx context.Context, inputPath, outputPath string) error
}

// Engine is the external translation capability. It must return exactly
// one translated segment per input segment, in order.
type Engine interface {
	TranslateBatch(ctx context.Context, segments []string) ([]string, error)
}
