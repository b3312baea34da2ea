package translator

import (
	"golang.org/x/text/language"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
)

type implTranslator struct {
	target    language.Tag
	batchSize int
	engine    Engine
	logger    logger.Logger
}

// New creates a Translator targeting the given language. batchSize bounds
// how many text segments travel in one engine call.
func New(target language.Tag, batchSize int, engine Engine, log logger.Logger) Translator {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &implTranslator{
		target:    target,
		batchSize: batchSize,
		engine:    engine,
		logger:    log,
	}
}
