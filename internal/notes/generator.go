package notes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/markup"
	"github.com/nguyentantai21042004/lecture-notes-pipeline/internal/pipeline"
)

var reSectionHeader = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)

// ArtifactPaths derives the three output paths from the transcript base.
func ArtifactPaths(transcriptBase string) Artifacts {
	return Artifacts{
		MarkdownPath: transcriptBase + "_notes.md",
		HTMLPath:     transcriptBase + "_notes.html",
		DocxPath:     transcriptBase + "_notes.docx",
	}
}

// Generate reads the transcript at <transcriptBase>.txt, produces a
// structured markdown note through the generative model and writes the
// markdown, HTML and DOCX artifacts. Single attempt per run: any model
// failure or a structurally invalid response aborts before anything is
// written.
func (g *implGenerator) Generate(ctx context.Context, transcriptBase string) (Artifacts, error) {
	transcriptPath := transcriptBase + ".txt"

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Artifacts{}, &pipeline.InputNotFoundError{Stage: "notes", Path: transcriptPath}
		}
		return Artifacts{}, fmt.Errorf("read transcript: %w", err)
	}
	transcript := string(data)
	g.logger.Info(ctx, "Read transcript %s (%d characters)", transcriptPath, len(transcript))

	md, err := g.generateMarkdown(ctx, transcript)
	if err != nil {
		return Artifacts{}, err
	}
	md = strings.TrimSpace(md)

	if md == "" {
		return Artifacts{}, &pipeline.GenerationError{Reason: "model returned empty content"}
	}
	if !reSectionHeader.MatchString(md) {
		return Artifacts{}, &pipeline.GenerationError{Reason: "response has no section headers"}
	}

	title := filepath.Base(transcriptBase)
	out := ArtifactPaths(transcriptBase)

	if err := pipeline.WriteFileAtomic(out.MarkdownPath, []byte(md+"\n")); err != nil {
		return Artifacts{}, fmt.Errorf("write markdown notes: %w", err)
	}

	page := markup.RenderPage(title, md, g.now())
	if err := pipeline.WriteFileAtomic(out.HTMLPath, []byte(page)); err != nil {
		return Artifacts{}, fmt.Errorf("write HTML notes: %w", err)
	}

	if err := writeDocx(title, md, out.DocxPath); err != nil {
		return Artifacts{}, fmt.Errorf("write DOCX notes: %w", err)
	}

	g.logger.Info(ctx, "Notes written: %s, %s, %s", out.MarkdownPath, out.HTMLPath, out.DocxPath)
	return out, nil
}

func (g *implGenerator) generateMarkdown(ctx context.Context, transcript string) (string, error) {
	if len(transcript) <= chunkSize {
		g.logger.Debug(ctx, "Transcript fits in one model call")
		text, err := g.model.Generate(ctx, fmt.Sprintf(singlePassPrompt, transcript))
		if err != nil {
			return "", &pipeline.GenerationError{Reason: "model call failed", Err: err}
		}
		return text, nil
	}

	chunks := splitText(transcript, chunkSize, chunkOverlap)
	g.logger.Info(ctx, "Processing transcript in %d chunks", len(chunks))

	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		g.logger.Info(ctx, "Processing chunk %d/%d", i+1, len(chunks))
		text, err := g.model.Generate(ctx, fmt.Sprintf(chunkPrompt, i+1, len(chunks), chunk))
		if err != nil {
			return "", &pipeline.GenerationError{
				Reason: fmt.Sprintf("model call failed for chunk %d/%d", i+1, len(chunks)),
				Err:    err,
			}
		}
		summaries = append(summaries, text)
	}

	g.logger.Info(ctx, "Combining %d chunk summaries", len(summaries))
	combined, err := g.model.Generate(ctx, fmt.Sprintf(combinePrompt, strings.Join(summaries, "\n\n")))
	if err != nil {
		return "", &pipeline.GenerationError{Reason: "combine call failed", Err: err}
	}
	return combined, nil
}
