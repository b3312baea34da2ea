package preprocess

import (
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/config"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/pkg/executor"
)

type implPreprocessor struct {
	cfg      *config.PreprocessConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Preprocessor backed by the jumpcutter CLI.
func New(cfg *config.PreprocessConfig, exec executor.Executor, log logger.Logger) Preprocessor {
	return &implPreprocessor{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
