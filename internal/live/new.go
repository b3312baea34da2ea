package live

import (
	"io"
	"os"
	"sync"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/transcriber"
)

type sessionState int

const (
	stateIdle sessionState = iota
	stateListening
	stateRecognizing
	stateStopped
)

func (s sessionState) String() string {
	switch s {
	case stateListening:
		return "listening"
	case stateRecognizing:
		return "recognizing"
	case stateStopped:
		return "stopped"
	default:
		return "idle"
	}
}

type implSession struct {
	cfg        *config.LiveConfig
	capturer   Capturer
	recognizer transcriber.Recognizer
	logger     logger.Logger
	echo       io.Writer

	mu    sync.Mutex
	state sessionState
}

// New creates a live-transcription Session. Recognized text is echoed to
// stdout as it arrives.
func New(cfg *config.LiveConfig, cap Capturer, rec transcriber.Recognizer, log logger.Logger) Session {
	return &implSession{
		cfg:        cfg,
		capturer:   cap,
		recognizer: rec,
		logger:     log,
		echo:       os.Stdout,
		state:      stateIdle,
	}
}

func (s *implSession) setState(st sessionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *implSession) currentState() sessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
