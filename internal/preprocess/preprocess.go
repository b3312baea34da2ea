package preprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

// Silence-detection tuning, matching jumpcutter's flag order: magnitude
// threshold ratio, minimum silence duration, spike tolerance, edge
// padding, silent-part speedup factor.
const (
	magnitudeThresholdRatio = "0.02"
	durationThreshold       = "0.6"
	failureToleranceRatio   = "0.1"
	spaceOnEdges            = "0.25"
	silencePartSpeed        = "10"
)

// codecFor maps the output container to an encoder; jumpcutter needs it
// stated explicitly to avoid re-encode surprises on mkv.
func codecFor(outputPath string) string {
	if strings.ToLower(filepath.Ext(outputPath)) == ".webm" {
		return "libvpx"
	}
	return "libx264"
}

// Process runs one complete silence-removal batch: cut the silent parts
// out of the input recording and write the cleaned recording to the
// output path. On any failure no output file is created.
func (p *implPreprocessor) Process(ctx context.Context, inputPath, outputPath string) error {
	startTime := time.Now()

	if _, err := os.Stat(inputPath); err != nil {
		return &pipeline.SourceNotFoundError{Path: inputPath}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	p.logger.Info(ctx, "Removing silence: %s -> %s", inputPath, outputPath)

	// jumpcutter picks settings off the output extension, so the temp
	// name keeps it.
	tmpPath := filepath.Join(filepath.Dir(outputPath),
		"."+strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))+".tmp"+filepath.Ext(outputPath))

	args := []string{
		"-i", inputPath,
		"-o", tmpPath,
		"-m", magnitudeThresholdRatio,
		"-d", durationThreshold,
		"-f", failureToleranceRatio,
		"-s", spaceOnEdges,
		"-x", silencePartSpeed,
		"-c", "silent",
		"--codec", codecFor(outputPath),
	}

	if _, err := p.executor.Execute(ctx, p.cfg.BinaryPath, args...); err != nil {
		os.Remove(tmpPath)
		return &pipeline.DecodingError{Path: inputPath, Err: fmt.Errorf("jumpcutter: %w", err)}
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename cleaned recording: %w", err)
	}

	p.logger.Info(ctx, "Cleaned recording written: %s (%s)", outputPath, time.Since(startTime))
	return nil
}
