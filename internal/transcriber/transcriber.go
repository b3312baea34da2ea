package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

// TranscriptPath derives the transcript artifact path from the media path:
// same base name, fixed suffix, sibling of the input.
func TranscriptPath(mediaPath string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_transcription.txt"
}

// Transcribe runs one complete batch transcription: extract the audio
// track, submit it to the recognizer, write the transcript. The input is
// never modified and on failure no output file is created.
func (t *implTranscriber) Transcribe(ctx context.Context, mediaPath string) (string, error) {
	startTime := time.Now()

	if _, err := os.Stat(mediaPath); err != nil {
		return "", &pipeline.SourceNotFoundError{Path: mediaPath}
	}

	t.logger.Info(ctx, "Transcribing: %s", mediaPath)

	audioPath, err := t.extractAudio(ctx, mediaPath)
	if err != nil {
		return "", &pipeline.DecodingError{Path: mediaPath, Err: err}
	}
	defer t.cleanupTempAudio(ctx, audioPath)

	text, err := t.recognizer.Recognize(ctx, audioPath)
	if err != nil {
		return "", &pipeline.RecognitionError{Err: err}
	}

	outPath := TranscriptPath(mediaPath)
	if err := pipeline.WriteFileAtomic(outPath, []byte(text)); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	t.logger.Info(ctx, "Transcript written: %s (%s)", outPath, time.Since(startTime))
	return outPath, nil
}

// extractAudio converts the media file's audio track to 16kHz mono WAV,
// the format whisper expects. The WAV goes into its own temp directory,
// never next to the media file: in watch mode the media directory is
// being monitored, and a temp artifact dropped there would be picked up
// as a new recording.
func (t *implTranscriber) extractAudio(ctx context.Context, mediaPath string) (string, error) {
	tempDir, err := os.MkdirTemp("", "lecture-audio-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(tempDir, base+".wav")

	t.logger.Debug(ctx, "Extracting audio: %s -> %s", mediaPath, audioPath)

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.FFmpeg.BinaryPath, args...); err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return audioPath, nil
}

// cleanupTempAudio removes the temp directory holding the extracted WAV
// (and whatever whisper wrote next to it).
func (t *implTranscriber) cleanupTempAudio(ctx context.Context, audioPath string) {
	if err := os.RemoveAll(filepath.Dir(audioPath)); err != nil {
		t.logger.Warn(ctx, "Failed to cleanup temp audio %s: %v", audioPath, err)
	}
}
