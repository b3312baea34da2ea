package pipeline

import (
	"fmt"
	"strings"
)

// SourceNotFoundError indicates the media file a batch run points at does not exist.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("media source not found: %s", e.Path)
}

// InputNotFoundError indicates a missing upstream artifact.
type InputNotFoundError struct {
	Stage string
	Path  string
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("%s: input artifact not found: %s", e.Stage, e.Path)
}

// DecodingError indicates the audio track could not be extracted from a media file.
type DecodingError struct {
	Path string
	Err  error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("cannot decode audio from %s: %v", e.Path, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// RecognitionError indicates the speech-to-text capability failed.
type RecognitionError struct {
	Err error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("speech recognition failed: %v", e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }

// GenerationError indicates the generative-text capability failed or
// returned content that fails structural validation.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("note generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("note generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// TranslationError indicates the translation capability failed for any
// segment. The whole run fails; no partial output is written.
type TranslationError struct {
	Reason string
	Err    error
}

func (e *TranslationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("translation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("translation failed: %s", e.Reason)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// MarkupParseError indicates an input document is not well-formed markup.
type MarkupParseError struct {
	Path string
	Err  error
}

func (e *MarkupParseError) Error() string {
	return fmt.Sprintf("malformed markup in %s: %v", e.Path, e.Err)
}

func (e *MarkupParseError) Unwrap() error { return e.Err }

// DeviceUnavailableError indicates the selected audio capture device does
// not exist. Available carries the device listing so the operator can pick
// a valid index.
type DeviceUnavailableError struct {
	Index     int
	Available []string
}

func (e *DeviceUnavailableError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("audio device %d unavailable (no capture devices found)", e.Index)
	}
	return fmt.Sprintf("audio device %d unavailable, available devices:\n  %s",
		e.Index, strings.Join(e.Available, "\n  "))
}
