package comparison

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/logger"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

type implRenderer struct {
	logger logger.Logger
}

// New creates a comparison-view Renderer.
func New(log logger.Logger) Renderer {
	return &implRenderer{logger: log}
}

// Render reads both artifacts, pairs their sections by position and writes
// the combined review document. A section-count mismatch degrades to
// unpaired trailing rows instead of aborting.
func (r *implRenderer) Render(ctx context.Context, originalPath, translatedPath, outputPath string) error {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &pipeline.InputNotFoundError{Stage: "comparison", Path: originalPath}
		}
		return fmt.Errorf("read original: %w", err)
	}
	translated, err := os.ReadFile(translatedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &pipeline.InputNotFoundError{Stage: "comparison", Path: translatedPath}
		}
		return fmt.Errorf("read translated: %w", err)
	}

	leftSections, err := splitSections(original)
	if err != nil {
		return &pipeline.MarkupParseError{Path: originalPath, Err: err}
	}
	rightSections, err := splitSections(translated)
	if err != nil {
		return &pipeline.MarkupParseError{Path: translatedPath, Err: err}
	}

	if len(leftSections) != len(rightSections) {
		r.logger.Warn(ctx, "Section count mismatch: %d original vs %d translated, trailing sections will be unpaired",
			len(leftSections), len(rightSections))
	}

	rows := pairSections(leftSections, rightSections)
	page := renderView(rows, filepath.Base(originalPath), filepath.Base(translatedPath))

	if err := pipeline.WriteFileAtomic(outputPath, []byte(page)); err != nil {
		return fmt.Errorf("write comparison view: %w", err)
	}

	r.logger.Info(ctx, "Comparison view written: %s (%d rows)", outputPath, len(rows))
	return nil
}

func renderView(rows []row, leftName, rightName string) string {
	var left, right strings.Builder

	writeCell := func(b *strings.Builder, s *Section, idx int, paired bool) {
		switch {
		case s == nil:
			fmt.Fprintf(b, `<div class="section placeholder" data-idx="%d"><span class="marker">⚠ no matching section</span></div>`+"\n", idx)
		case paired:
			fmt.Fprintf(b, `<div class="section" data-idx="%d">%s</div>`+"\n", idx, s.HTML)
		default:
			fmt.Fprintf(b, `<div class="section unpaired" data-idx="%d"><span class="marker">⚠ unpaired section</span>%s</div>`+"\n", idx, s.HTML)
		}
	}

	for i, r := range rows {
		writeCell(&left, r.Left, i, r.paired())
		writeCell(&right, r.Right, i, r.paired())
	}

	return fmt.Sprintf(viewTemplate,
		html.EscapeString(leftName), left.String(),
		html.EscapeString(rightName), right.String())
}
