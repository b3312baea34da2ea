package live

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

type capturedWindow struct {
	seq  int
	path string
}

// Run executes the capture/recognize loop until ctx is cancelled or the
// capturer reports end of input. Capture and recognition run as a
// producer/consumer pair over a bounded queue: a full queue blocks the
// producer so windows are never dropped. A failed recognition of one
// window is logged and skipped; the session continues.
func (s *implSession) Run(ctx context.Context) (string, error) {
	devices, err := s.capturer.Devices(ctx)
	if err != nil {
		return "", fmt.Errorf("list capture devices: %w", err)
	}
	if s.cfg.DeviceIndex < 0 || s.cfg.DeviceIndex >= len(devices) {
		return "", &pipeline.DeviceUnavailableError{Index: s.cfg.DeviceIndex, Available: devices}
	}

	sessionDir := filepath.Join(s.cfg.SessionDir, uuid.NewString())
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	transcriptPath := filepath.Join(sessionDir, "transcript.txt")
	transcript, err := os.OpenFile(transcriptPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("open transcript: %w", err)
	}
	defer transcript.Close()

	s.setState(stateListening)
	s.logger.Info(ctx, "Live session started: device %d (%s), %ds windows -> %s",
		s.cfg.DeviceIndex, devices[s.cfg.DeviceIndex], s.cfg.WindowSeconds, transcriptPath)

	windows := make(chan capturedWindow, s.cfg.QueueSize)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(windows)
		for seq := 0; ; seq++ {
			if gctx.Err() != nil {
				return nil
			}
			wavPath := filepath.Join(sessionDir, fmt.Sprintf("window_%04d.wav", seq))
			if err := s.capturer.Capture(gctx, wavPath); err != nil {
				if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
					return nil
				}
				return fmt.Errorf("capture window %d: %w", seq, err)
			}
			select {
			case windows <- capturedWindow{seq: seq, path: wavPath}:
			case <-gctx.Done():
				os.Remove(wavPath)
				return nil
			}
		}
	})

	g.Go(func() error {
		// The queue is drained even after cancellation so captured
		// windows still make it into the transcript.
		drainCtx := context.WithoutCancel(gctx)
		for w := range windows {
			s.setState(stateRecognizing)
			text, err := s.recognizer.Recognize(drainCtx, w.path)
			os.Remove(w.path)
			s.setState(stateListening)
			if err != nil {
				s.logger.Warn(gctx, "Recognition failed for window %d, skipping: %v", w.seq, err)
				continue
			}
			text = strings.TrimSpace(text)
			if text == "" {
				continue
			}
			if _, err := fmt.Fprintln(transcript, text); err != nil {
				return fmt.Errorf("append transcript: %w", err)
			}
			fmt.Fprintln(s.echo, text)
		}
		return nil
	})

	runErr := g.Wait()

	if err := transcript.Sync(); err != nil && runErr == nil {
		runErr = fmt.Errorf("flush transcript: %w", err)
	}
	s.setState(stateStopped)
	s.logger.Info(ctx, "Live session stopped, transcript: %s", transcriptPath)

	return transcriptPath, runErr
}
