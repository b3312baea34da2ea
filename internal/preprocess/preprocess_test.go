package preprocess

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

// fakeExecutor simulates jumpcutter by creating the file named after -o.
type fakeExecutor struct {
	err  error
	args []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.args = args
	if f.err != nil {
		return "", f.err
	}
	for i, a := range args {
		if a == "-o" {
			return "", os.WriteFile(args[i+1], []byte("cut"), 0o644)
		}
	}
	return "", fmt.Errorf("no -o flag in %v", args)
}

func newTestPreprocessor(exec *fakeExecutor) Preprocessor {
	cfg := &config.PreprocessConfig{BinaryPath: "jumpcutter"}
	return New(cfg, exec, logger.NewWithWriter("error", io.Discard))
}

func writeRecording(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lec_01.mp4")
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcess(t *testing.T) {
	input := writeRecording(t)
	output := filepath.Join(t.TempDir(), "cleaned", "lec_01.mp4")
	exec := &fakeExecutor{}

	if err := newTestPreprocessor(exec).Process(context.Background(), input, output); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("cleaned recording missing: %v", err)
	}

	joined := strings.Join(exec.args, " ")
	for _, want := range []string{"-i " + input, "-m 0.02", "-d 0.6", "-c silent", "--codec libx264"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q in %q", want, joined)
		}
	}

	// No temp file may survive the rename.
	entries, err := os.ReadDir(filepath.Dir(output))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output dir has %d entries, want only the cleaned recording", len(entries))
	}
}

func TestProcessCodecByExtension(t *testing.T) {
	input := writeRecording(t)
	output := filepath.Join(t.TempDir(), "lec_01.webm")
	exec := &fakeExecutor{}

	if err := newTestPreprocessor(exec).Process(context.Background(), input, output); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if joined := strings.Join(exec.args, " "); !strings.Contains(joined, "--codec libvpx") {
		t.Errorf("webm output should select libvpx, args = %q", joined)
	}
}

func TestProcessSourceMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.mp4")
	output := filepath.Join(t.TempDir(), "out.mp4")

	err := newTestPreprocessor(&fakeExecutor{}).Process(context.Background(), missing, output)

	var notFound *pipeline.SourceNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *pipeline.SourceNotFoundError", err)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file was created for a missing source")
	}
}

func TestProcessToolFailure(t *testing.T) {
	input := writeRecording(t)
	output := filepath.Join(t.TempDir(), "out.mp4")
	exec := &fakeExecutor{err: fmt.Errorf("exit status 1")}

	err := newTestPreprocessor(exec).Process(context.Background(), input, output)

	var decErr *pipeline.DecodingError
	if !errors.As(err, &decErr) {
		t.Fatalf("error = %v, want *pipeline.DecodingError", err)
	}
	entries, readErr := os.ReadDir(filepath.Dir(output))
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Errorf("failed run left %d files behind", len(entries))
	}
}
