package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/transcriber"
)

// wavExecutor simulates ffmpeg by creating the file named in the final
// argument.
type wavExecutor struct{}

func (wavExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return "", os.WriteFile(args[len(args)-1], []byte("RIFF"), 0o644)
}

// slowRecognizer holds each recognition longer than the watcher's settle
// window, the way a real whisper run would.
type slowRecognizer struct{}

func (slowRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	time.Sleep(700 * time.Millisecond)
	return "recognized text", nil
}

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"lecture.mp4", true},
		{"lecture.MP3", true},
		{"audio.m4a", true},
		{"notes.txt", false},
		{"lecture_transcription.txt", false},
		{"archive.zip", false},
		{"noextension", false},
	}

	for _, tt := range tests {
		if got := isMediaFile(tt.path); got != tt.want {
			t.Errorf("isMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherHandlesDroppedMedia(t *testing.T) {
	dir := t.TempDir()

	var mu sync.Mutex
	var handled []string
	done := make(chan struct{})

	handler := func(ctx context.Context, mediaPath string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(mediaPath))
		mu.Unlock()
		close(done)
		return nil
	}

	w, err := New(dir, handler, logger.NewWithWriter("error", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan error, 1)
	go func() { started <- w.Start(ctx) }()

	// Let the watch loop come up before dropping the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "lecture01.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("drop file: %v", err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not invoked for dropped media file")
	}

	cancel()
	if err := <-started; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() after cancel = %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "lecture01.mp3" {
		t.Errorf("handled = %v, want [lecture01.mp3]", handled)
	}
}

// A dropped recording must trigger exactly one transcription: the
// pipeline's own working files must never land in the watched directory
// and fire further Create events, or one drop snowballs into an endless
// chain of self-triggered runs.
func TestWatcherDoesNotRetriggerOnOwnArtifacts(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewWithWriter("error", io.Discard)

	cfg := &config.Config{FFmpeg: config.FFmpegConfig{BinaryPath: "ffmpeg"}}
	tr := transcriber.New(cfg, wavExecutor{}, slowRecognizer{}, log)

	var mu sync.Mutex
	var handled []string
	handler := func(ctx context.Context, mediaPath string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(mediaPath))
		mu.Unlock()
		_, err := tr.Transcribe(ctx, mediaPath)
		return err
	}

	w, err := New(dir, handler, log, 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan error, 1)
	go func() { started <- w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "lec_01.mp4"), []byte("video"), 0o644); err != nil {
		t.Fatalf("drop file: %v", err)
	}

	// Long enough for the settle sleep, the slow recognition and any
	// follow-on events a stray artifact would have produced.
	time.Sleep(3 * time.Second)
	cancel()
	<-started

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 || handled[0] != "lec_01.mp4" {
		t.Fatalf("handled files = %v, want exactly [lec_01.mp4]", handled)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	want := []string{"lec_01.mp4", "lec_01_transcription.txt"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("watched directory = %v, want %v", names, want)
	}
}

func TestWatcherDrainsWhileWaitingForSlot(t *testing.T) {
	dir := t.TempDir()
	log := logger.NewWithWriter("error", io.Discard)

	release := make(chan struct{})
	running := make(chan struct{}, 2)
	handler := func(ctx context.Context, mediaPath string) error {
		running <- struct{}{}
		<-release
		return nil
	}

	w, err := New(dir, handler, log, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan error, 1)
	go func() { started <- w.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	<-running

	// Second drop leaves the event loop waiting for the occupied slot.
	if err := os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(800 * time.Millisecond)
	cancel()

	// Cancellation while waiting for a slot must still wait out the
	// in-flight handler.
	select {
	case err := <-started:
		t.Fatalf("Start() returned %v before in-flight work finished", err)
	case <-time.After(300 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-started:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start() did not return after handlers finished")
	}
}

func TestWatcherIgnoresNonMedia(t *testing.T) {
	dir := t.TempDir()

	called := make(chan string, 1)
	handler := func(ctx context.Context, mediaPath string) error {
		called <- mediaPath
		return nil
	}

	w, err := New(dir, handler, logger.NewWithWriter("error", io.Discard), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0o644); err != nil {
		t.Fatalf("drop file: %v", err)
	}

	select {
	case path := <-called:
		t.Errorf("handler invoked for non-media file %s", path)
	case <-time.After(1 * time.Second):
	}
}
