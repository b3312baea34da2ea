package notes

import (
	"time"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/gemini"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
)

const (
	chunkSize    = 8000
	chunkOverlap = 500
)

type implGenerator struct {
	model  gemini.Model
	logger logger.Logger
	now    func() time.Time
}

// New creates a Generator backed by the given generative model.
func New(model gemini.Model, log logger.Logger) Generator {
	return &implGenerator{
		model:  model,
		logger: log,
		now:    time.Now,
	}
}
