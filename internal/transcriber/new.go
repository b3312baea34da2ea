package transcriber

import (
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/pkg/executor"
)

type implTranscriber struct {
	cfg        *config.Config
	executor   executor.Executor
	recognizer Recognizer
	logger     logger.Logger
}

// New creates a Transcriber that extracts audio with ffmpeg and recognizes
// it with the given Recognizer.
func New(cfg *config.Config, exec executor.Executor, rec Recognizer, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:        cfg,
		executor:   exec,
		recognizer: rec,
		logger:     log,
	}
}
