package translator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

const notesDoc = `<!DOCTYPE html>
<html lang="en">
<head><title>Study Notes</title><style>p { margin: 0; }</style></head>
<body>
<div class="container">
<h1>Machine Translation</h1>
<p>Statistical models came <strong>first</strong>.</p>
<ul><li>alignment</li><li>decoding</li></ul>
</div>
</body>
</html>`

// fakeEngine uppercases segments so translations are distinguishable.
type fakeEngine struct {
	err     error
	short   bool
	batches [][]string
}

func (f *fakeEngine) TranslateBatch(ctx context.Context, segments []string) ([]string, error) {
	f.batches = append(f.batches, segments)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]string, len(segments))
	for i, s := range segments {
		out[i] = strings.ToUpper(s)
	}
	if f.short {
		out = out[:len(out)-1]
	}
	return out, nil
}

func newTestTranslator(e Engine, batchSize int) Translator {
	return New(language.MustParse("si"), batchSize, e, logger.NewWithWriter("error", io.Discard))
}

func writeInput(t *testing.T, content string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.html")
	if err := os.WriteFile(in, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return in, filepath.Join(dir, "notes_sinhala.html")
}

func TestTranslatePreservesStructure(t *testing.T) {
	in, out := writeInput(t, notesDoc)
	engine := &fakeEngine{}

	if err := newTestTranslator(engine, 50).Translate(context.Background(), in, out); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	inDoc, _ := parseDocument(strings.NewReader(notesDoc))
	outDoc, err := parseDocument(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if !signaturesEqual(elementSignature(inDoc), elementSignature(outDoc)) {
		t.Error("output element signature differs from input")
	}

	s := string(data)
	if !strings.Contains(s, "MACHINE TRANSLATION") {
		t.Errorf("heading text not translated: %s", s)
	}
	if !strings.Contains(s, `lang="si"`) {
		t.Errorf("document lang not rewritten: %s", s)
	}
	// Style rules are machinery, not prose.
	if !strings.Contains(s, "p { margin: 0; }") {
		t.Errorf("style content was altered: %s", s)
	}
}

func TestTranslateBatching(t *testing.T) {
	in, out := writeInput(t, notesDoc)
	engine := &fakeEngine{}

	if err := newTestTranslator(engine, 2).Translate(context.Background(), in, out); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	// 5 text segments (title is skipped): h1, p text, strong, two li = 5?
	var total int
	for _, b := range engine.batches {
		if len(b) > 2 {
			t.Errorf("batch size exceeded: %d", len(b))
		}
		total += len(b)
	}
	if total < 4 {
		t.Errorf("segments sent = %d, want all text nodes", total)
	}
}

func TestTranslateInputMissing(t *testing.T) {
	dir := t.TempDir()
	err := newTestTranslator(&fakeEngine{}, 50).Translate(context.Background(),
		filepath.Join(dir, "missing.html"), filepath.Join(dir, "out.html"))

	var notFound *pipeline.InputNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *pipeline.InputNotFoundError", err)
	}
}

func TestTranslateAllOrNothing(t *testing.T) {
	tests := []struct {
		name   string
		engine *fakeEngine
	}{
		{"engine failure", &fakeEngine{err: fmt.Errorf("capability down")}},
		{"segment count mismatch", &fakeEngine{short: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := writeInput(t, notesDoc)

			err := newTestTranslator(tt.engine, 50).Translate(context.Background(), in, out)

			var trErr *pipeline.TranslationError
			if !errors.As(err, &trErr) {
				t.Fatalf("error = %v, want *pipeline.TranslationError", err)
			}
			if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
				t.Error("output exists after failed translation")
			}
			entries, _ := os.ReadDir(filepath.Dir(out))
			for _, e := range entries {
				if strings.Contains(e.Name(), ".tmp") {
					t.Errorf("leftover temp file %s", e.Name())
				}
			}
		})
	}
}

func TestTranslateSkipsWhenAlreadyTarget(t *testing.T) {
	doc := `<html lang="en"><body><p>Hello world, this is clearly English text about lectures.</p></body></html>`
	in, out := writeInput(t, doc)
	engine := &fakeEngine{}

	// Target English: detector sees English, so zero capability calls.
	tr := New(language.English, 50, engine, logger.NewWithWriter("error", io.Discard))
	if err := tr.Translate(context.Background(), in, out); err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if len(engine.batches) != 0 {
		t.Errorf("engine called %d times, want 0", len(engine.batches))
	}
	got, _ := os.ReadFile(out)
	if string(got) != doc {
		t.Error("skip path should copy the input byte-for-byte")
	}
}

func TestCollectTextNodesSkipsMachinery(t *testing.T) {
	doc, err := parseDocument(strings.NewReader(notesDoc))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range collectTextNodes(doc) {
		if strings.Contains(n.Data, "margin") {
			t.Error("style text collected as prose")
		}
		if strings.Contains(n.Data, "Study Notes") {
			t.Error("title text collected as prose")
		}
	}
}
