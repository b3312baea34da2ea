package translator

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/abadojack/whatlanggo"
	"golang.org/x/net/html"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

// Translate parses the styled notes artifact, translates only its text
// nodes and writes a structurally identical document. Any segment failure
// fails the whole run; a mixed-language artifact is worse than none.
func (t *implTranslator) Translate(ctx context.Context, inputPath, outputPath string) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &pipeline.InputNotFoundError{Stage: "translator", Path: inputPath}
		}
		return fmt.Errorf("read input: %w", err)
	}

	doc, err := parseDocument(bytes.NewReader(data))
	if err != nil {
		return &pipeline.MarkupParseError{Path: inputPath, Err: err}
	}

	textNodes := collectTextNodes(doc)
	if len(textNodes) == 0 {
		t.logger.Warn(ctx, "No translatable text in %s, copying as-is", inputPath)
		return pipeline.WriteFileAtomic(outputPath, data)
	}

	if t.alreadyInTarget(textNodes) {
		t.logger.Info(ctx, "%s is already in %s, copying without translation", inputPath, t.target)
		return pipeline.WriteFileAtomic(outputPath, data)
	}

	wantSig := elementSignature(doc)

	segments := make([]string, len(textNodes))
	for i, n := range textNodes {
		segments[i] = n.Data
	}

	t.logger.Info(ctx, "Translating %d text segments to %s", len(segments), t.target)

	translated, err := t.translateAll(ctx, segments)
	if err != nil {
		return err
	}

	for i, n := range textNodes {
		n.Data = translated[i]
	}
	setDocumentLang(doc, t.target.String())

	out, err := renderDocument(doc)
	if err != nil {
		return &pipeline.TranslationError{Reason: "serialize output", Err: err}
	}

	// Structural parity is the contract the comparison view relies on.
	gotDoc, err := parseDocument(bytes.NewReader(out))
	if err != nil {
		return &pipeline.TranslationError{Reason: "reparse output", Err: err}
	}
	if !signaturesEqual(wantSig, elementSignature(gotDoc)) {
		return &pipeline.TranslationError{Reason: "output markup structure differs from input"}
	}

	if err := pipeline.WriteFileAtomic(outputPath, out); err != nil {
		return fmt.Errorf("write translated artifact: %w", err)
	}

	t.logger.Info(ctx, "Translated artifact written: %s", outputPath)
	return nil
}

func (t *implTranslator) translateAll(ctx context.Context, segments []string) ([]string, error) {
	out := make([]string, 0, len(segments))

	for start := 0; start < len(segments); start += t.batchSize {
		end := min(start+t.batchSize, len(segments))
		batch := segments[start:end]

		translated, err := t.engine.TranslateBatch(ctx, batch)
		if err != nil {
			return nil, &pipeline.TranslationError{
				Reason: fmt.Sprintf("segments %d-%d", start+1, end),
				Err:    err,
			}
		}
		if len(translated) != len(batch) {
			return nil, &pipeline.TranslationError{
				Reason: fmt.Sprintf("segments %d-%d: got %d translations for %d segments",
					start+1, end, len(translated), len(batch)),
			}
		}
		out = append(out, translated...)
	}

	return out, nil
}

// alreadyInTarget detects the dominant language of the document text so a
// re-run against an already translated artifact costs no capability calls.
func (t *implTranslator) alreadyInTarget(textNodes []*html.Node) bool {
	counts := make(map[string]int)
	for _, n := range textNodes {
		lang := whatlanggo.DetectLang(n.Data).Iso6391()
		counts[lang]++
	}

	var topLang string
	var topCount int
	for lang, count := range counts {
		if count > topCount {
			topLang, topCount = lang, count
		}
	}

	base, _ := t.target.Base()
	return topLang != "" && topLang == base.String()
}
