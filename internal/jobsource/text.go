package jobsource

import (
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings, collapses runs of spaces inside lines
// and keeps at most one blank line between paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	content = strings.Join(lines, "\n")
	content = blankLineRun.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// firstLine returns the first non-blank line when it is short enough to be a title.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}
		if len([]rune(line)) > 120 {
			return ""
		}
		return line
	}
	return ""
}
