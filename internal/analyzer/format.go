package analyzer

import (
	"regexp"
	"strings"
)

// numberedSection matches section titles of the form "1. Executive Summary"
// or "2. Applicable Law:", which the agent emits when it does not use
// markdown headers.
var numberedSection = regexp.MustCompile(`^\d+\.\s+[A-Z][^\n]{1,79}?:?$`)

// FormatAnalysis rewrites the raw analysis as a sectioned document: section
// markers become "## Title" lines and body text is re-joined with one blank
// line between paragraphs, so a renderer can distinguish headers from body
// without re-parsing arbitrary markdown. Text without any markers is
// wrapped under a synthetic "Analysis" header; this never fails.
func FormatAnalysis(text string) string {
	var (
		out       []string
		paragraph []string
		sawHeader bool
	)

	flush := func() {
		if len(paragraph) > 0 {
			out = append(out, strings.Join(paragraph, "\n"))
			paragraph = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case isSectionMarker(trimmed):
			flush()
			out = append(out, "## "+sectionTitle(trimmed))
			sawHeader = true
		default:
			paragraph = append(paragraph, trimmed)
		}
	}
	flush()

	body := strings.TrimSpace(strings.Join(out, "\n\n"))
	if !sawHeader {
		return "## Analysis\n\n" + body
	}
	return body
}

func isSectionMarker(line string) bool {
	if strings.HasPrefix(line, "##") {
		return true
	}
	return numberedSection.MatchString(line)
}

// sectionTitle strips the marker, keeping the title text (including any
// leading section number).
func sectionTitle(line string) string {
	title := strings.TrimSpace(strings.TrimLeft(line, "#"))
	return strings.TrimSuffix(title, ":")
}
