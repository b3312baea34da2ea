package executor

import "context"

// Executor runs the external tools the pipeline leans on (ffmpeg,
// whisper.cpp). Output is the command's stdout; stderr is folded into the
// returned error.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
