package comparison

import "context"

// Renderer combines an original and a translated notes artifact into one
// side-by-side review document.
type Renderer interface {
	Render(ctx context.Context, originalPath, translatedPath, outputPath string) error
}
