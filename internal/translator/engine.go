package translator

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/gemini"
)

// Segments travel to the model joined by an explicit marker, and literal
// newlines inside a segment are masked so the count survives the round trip.
const (
	segmentSeparator = "\n<<<SEG>>>\n"
	inlineBreak      = "<<BR>>"
)

const translatePromptTemplate = `Translate the following text segments to %s.
IMPORTANT:
- The segments are separated by the marker <<<SEG>>> on its own line
- Return EXACTLY the same number of segments, separated by the same marker, in the same order
- Translate ONLY the text; never add, drop, merge or reorder segments
- Keep special characters, numbers and punctuation unchanged
- Use simple, conversational wording; keep complex technical terms in English and add a short explanation in %s in parentheses the first time they appear

Segments:
%s`

type geminiEngine struct {
	model    gemini.Model
	target   language.Tag
	langName string
}

// NewGeminiEngine creates an Engine that translates through the
// generative model.
func NewGeminiEngine(model gemini.Model, target language.Tag) Engine {
	return &geminiEngine{
		model:    model,
		target:   target,
		langName: display.English.Languages().Name(target),
	}
}

func (e *geminiEngine) TranslateBatch(ctx context.Context, segments []string) ([]string, error) {
	masked := make([]string, len(segments))
	for i, s := range segments {
		masked[i] = strings.ReplaceAll(s, "\n", inlineBreak)
	}

	prompt := fmt.Sprintf(translatePromptTemplate,
		e.langName, e.langName, strings.Join(masked, segmentSeparator))

	response, err := e.model.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimSpace(response), strings.TrimSpace(segmentSeparator))
	out := make([]string, len(parts))
	for i, p := range parts {
		p = strings.TrimFunc(p, func(r rune) bool { return r == '\n' || r == '\r' })
		out[i] = strings.ReplaceAll(p, inlineBreak, "\n")
	}
	return out, nil
}
