package notes

import "context"

// Artifacts holds the three renderings written by one note-generation run.
type Artifacts struct {
	MarkdownPath string
	HTMLPath     string
	DocxPath     string
}

// Generator reads a transcript artifact and produces structured study
// notes in markdown, styled HTML and DOCX form.
type Generator interface {
	Generate(ctx context.Context, transcriptBase string) (Artifacts, error)
}
