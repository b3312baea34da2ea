// Package markup renders the markdown notes artifact into the styled HTML
// form, using a line classifier over the small markdown subset the note
// generator actually emits (headings, bullets, numbered lists, bold, code).
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reCode     = regexp.MustCompile("`([^`]+)`")
)

// RenderBody converts markdown to an HTML fragment. Consecutive bullet
// lines collapse into one list element.
func RenderBody(markdown string) string {
	var b strings.Builder
	var listTag string // "ul", "ol" or ""

	closeList := func() {
		if listTag != "" {
			fmt.Fprintf(&b, "</%s>\n", listTag)
			listTag = ""
		}
	}
	openList := func(tag string) {
		if listTag != tag {
			closeList()
			fmt.Fprintf(&b, "<%s>\n", tag)
			listTag = tag
		}
	}

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || trimmed == "---" {
			closeList()
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			closeList()
			level := len(m[1])
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, renderInline(m[2]), level)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			openList("ul")
			fmt.Fprintf(&b, "<li>%s</li>\n", renderInline(m[1]))
			continue
		}

		if m := reNumbered.FindStringSubmatch(trimmed); m != nil {
			openList("ol")
			fmt.Fprintf(&b, "<li>%s</li>\n", renderInline(m[1]))
			continue
		}

		closeList()
		fmt.Fprintf(&b, "<p>%s</p>\n", renderInline(trimmed))
	}
	closeList()

	return b.String()
}

// renderInline escapes the text and applies bold and code spans.
func renderInline(text string) string {
	escaped := html.EscapeString(text)
	escaped = reBold.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = reCode.ReplaceAllString(escaped, "<code>$1</code>")
	return escaped
}

// RenderPage wraps the rendered body in the styled study-notes page.
func RenderPage(title, markdown string, generatedAt time.Time) string {
	return fmt.Sprintf(pageTemplate,
		html.EscapeString(title),
		RenderBody(markdown),
		generatedAt.Format("January 2, 2006 at 15:04:05"))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>%s</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            padding: 40px;
            max-width: 900px;
            margin: 0 auto;
            background-color: #f8f9fa;
            color: #333;
        }
        .container {
            background-color: white;
            padding: 40px;
            border-radius: 10px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        h1 {
            color: #2c3e50;
            border-bottom: 3px solid #3498db;
            padding-bottom: 10px;
            margin-top: 0;
        }
        h2 { color: #34495e; margin-top: 30px; margin-bottom: 15px; }
        h3 { color: #7f8c8d; margin-top: 25px; margin-bottom: 10px; }
        p { margin-bottom: 15px; text-align: justify; }
        strong { color: #2c3e50; font-weight: 600; }
        ul, ol { margin-bottom: 15px; padding-left: 25px; }
        li { margin-bottom: 8px; }
        code {
            background-color: #f1f2f6;
            padding: 2px 6px;
            border-radius: 3px;
            font-family: 'Courier New', monospace;
        }
        .timestamp {
            text-align: center;
            color: #7f8c8d;
            font-size: 0.9em;
            margin-top: 40px;
            border-top: 1px solid #bdc3c7;
            padding-top: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
%s        <div class="timestamp">Generated on %s</div>
    </div>
</body>
</html>
`
