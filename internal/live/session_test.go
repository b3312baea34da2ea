package live

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

// fakeCapturer writes one scripted window per Capture call and reports
// end of input once the script runs out.
type fakeCapturer struct {
	windows []string
	next    int
}

func (f *fakeCapturer) Devices(ctx context.Context) ([]string, error) {
	return []string{"Built-in Microphone", "Line In"}, nil
}

func (f *fakeCapturer) Capture(ctx context.Context, destPath string) error {
	if f.next >= len(f.windows) {
		return io.EOF
	}
	data := f.windows[f.next]
	f.next++
	return os.WriteFile(destPath, []byte(data), 0o644)
}

// fakeRecognizer echoes window content back as text, with optional
// per-content delays and failures.
type fakeRecognizer struct {
	delayOn string
	failOn  string
}

func (f *fakeRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", err
	}
	text := string(data)
	if text == f.delayOn {
		time.Sleep(50 * time.Millisecond)
	}
	if text == f.failOn {
		return "", errors.New("model choked")
	}
	return text, nil
}

func liveConfig(t *testing.T) *config.LiveConfig {
	t.Helper()
	return &config.LiveConfig{
		DeviceIndex:   0,
		Source:        "mic",
		SessionDir:    t.TempDir(),
		WindowSeconds: 4,
		QueueSize:     4,
	}
}

func runSession(t *testing.T, cfg *config.LiveConfig, cap Capturer, rec *fakeRecognizer) (string, error) {
	t.Helper()
	s := &implSession{
		cfg:        cfg,
		capturer:   cap,
		recognizer: rec,
		logger:     logger.NewWithWriter("error", io.Discard),
		echo:       io.Discard,
	}
	path, err := s.Run(context.Background())
	if err == nil && s.currentState() != stateStopped {
		t.Errorf("state after Run = %v, want stopped", s.currentState())
	}
	return path, err
}

func transcriptLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func TestRunAppendsWindowsInCaptureOrder(t *testing.T) {
	cfg := liveConfig(t)
	cap := &fakeCapturer{windows: []string{"first window", "second window", "third window"}}
	// Delaying the second window's recognition must not let the third
	// window overtake it in the transcript.
	rec := &fakeRecognizer{delayOn: "second window"}

	path, err := runSession(t, cfg, cap, rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := transcriptLines(t, path)
	want := []string{"first window", "second window", "third window"}
	if len(got) != len(want) {
		t.Fatalf("transcript lines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRunSkipsFailedWindow(t *testing.T) {
	cfg := liveConfig(t)
	cap := &fakeCapturer{windows: []string{"one", "two", "three"}}
	rec := &fakeRecognizer{failOn: "two"}

	path, err := runSession(t, cfg, cap, rec)
	if err != nil {
		t.Fatalf("Run() error = %v, single-window failure should not end the session", err)
	}

	got := transcriptLines(t, path)
	want := []string{"one", "three"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("transcript lines = %v, want %v", got, want)
	}
}

func TestRunSkipsEmptyText(t *testing.T) {
	cfg := liveConfig(t)
	cap := &fakeCapturer{windows: []string{"speech", "   ", "more speech"}}

	path, err := runSession(t, cfg, cap, &fakeRecognizer{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := transcriptLines(t, path)
	if len(got) != 2 {
		t.Errorf("transcript lines = %v, want 2 non-empty segments", got)
	}
}

func TestRunBadDeviceIndex(t *testing.T) {
	cfg := liveConfig(t)
	cfg.DeviceIndex = 7
	cap := &fakeCapturer{}

	_, err := runSession(t, cfg, cap, &fakeRecognizer{})
	var devErr *pipeline.DeviceUnavailableError
	if !errors.As(err, &devErr) {
		t.Fatalf("Run() error = %v, want DeviceUnavailableError", err)
	}
	if devErr.Index != 7 {
		t.Errorf("Index = %d, want 7", devErr.Index)
	}
	if len(devErr.Available) != 2 {
		t.Errorf("Available = %v, want the device listing", devErr.Available)
	}
}

func TestRunCleansUpWindowFiles(t *testing.T) {
	cfg := liveConfig(t)
	cap := &fakeCapturer{windows: []string{"a", "b"}}

	path, err := runSession(t, cfg, cap, &fakeRecognizer{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read session dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "window_") {
			t.Errorf("window file %s left behind", e.Name())
		}
	}
}
