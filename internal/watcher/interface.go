package watcher

import "context"

// Watcher monitors a drop directory for new lecture recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// MediaHandler processes one dropped media file.
type MediaHandler func(ctx context.Context, mediaPath string) error
