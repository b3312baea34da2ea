package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/pkg/executor"
)

type whisperRecognizer struct {
	cfg      *config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperRecognizer creates a Recognizer backed by the whisper.cpp CLI.
func NewWhisperRecognizer(cfg *config.WhisperConfig, exec executor.Executor, log logger.Logger) Recognizer {
	return &whisperRecognizer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}

// Recognize transcribes one 16kHz mono WAV file to plain text. Whisper
// writes its own output file next to the audio; that file is read back,
// returned and removed so the caller controls the final artifact.
func (r *whisperRecognizer) Recognize(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	r.logger.Debug(ctx, "Running whisper (%d threads): %s", r.cfg.Threads, wavPath)

	args := []string{
		"-m", r.cfg.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-l", r.cfg.Language,
		"-t", strconv.Itoa(r.cfg.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	if _, err := r.executor.Execute(ctx, r.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}
	if err := os.Remove(txtPath); err != nil {
		r.logger.Warn(ctx, "Failed to cleanup whisper output %s: %v", txtPath, err)
	}

	return string(data), nil
}
