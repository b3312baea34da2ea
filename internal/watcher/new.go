package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
)

// New creates a Watcher over watchDir. Up to maxConcurrent dropped files
// are handled at once; further drops wait for a free slot.
func New(watchDir string, handler MediaHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsWatcher.Add(watchDir); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch %s: %w", watchDir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		watchDir:      watchDir,
		handler:       handler,
		logger:        log,
		watcher:       fsWatcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
