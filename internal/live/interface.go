package live

import "context"

// Session is one live-transcription run: capture audio windows from a
// device and append recognized text to a session transcript until the
// context is cancelled or the input stream ends.
type Session interface {
	// Run blocks until the session stops and returns the transcript path.
	Run(ctx context.Context) (string, error)
}

// Capturer records fixed-length audio windows from an input device. The
// production implementation shells out to ffmpeg's device capture; tests
// substitute a scripted fake. Capture returns io.EOF when the input
// stream ends cleanly.
type Capturer interface {
	// Devices lists the available capture devices, one entry per index.
	Devices(ctx context.Context) ([]string, error)
	// Capture records one window into destPath.
	Capture(ctx context.Context, destPath string) error
}
