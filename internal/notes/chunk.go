package notes

import "strings"

// breakChars are tried in order when looking for a natural boundary near
// the end of a chunk.
var breakChars = []string{"\n\n", "\n", ". ", "! ", "? "}

// splitText splits a transcript into overlapping chunks, preferring to
// break at a paragraph or sentence boundary within the last 200 characters
// of each chunk.
func splitText(text string, size, overlap int) []string {
	var chunks []string
	start := 0

	for start < len(text) {
		end := start + size

		if end < len(text) {
			best := end
			if window := start + size - 200; size > 200 {
				for _, bc := range breakChars {
					if last := strings.LastIndex(text[window:end], bc); last >= 0 {
						best = window + last + len(bc)
						break
					}
				}
			}
			end = best
		} else {
			end = len(text)
		}

		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}
		start = end - overlap
	}

	return chunks
}
