package preprocess

import "context"

// Preprocessor trims silent stretches out of a recording so transcription
// works from a denser input.
type Preprocessor interface {
	Process(ctx context.Context, inputPath, outputPath string) error
}
