package transcriber

import "context"

// Transcriber turns one media file into a plain-text transcript artifact.
type Transcriber interface {
	// Transcribe returns the path of the transcript it wrote.
	Transcribe(ctx context.Context, mediaPath string) (string, error)
}

// Recognizer is the external speech-to-text capability. The production
// implementation shells out to whisper.cpp; tests substitute a
// deterministic fake.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string) (string, error)
}
