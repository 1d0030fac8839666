package normalize

import (
	"regexp"
	"strings"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\r\f]+`)
	newlineRun = regexp.MustCompile(`\n{2,}`)
	// PDF extractors often leave stray spaces around the line break of a
	// hyphenated word, so the wrap must match through them.
	hyphenWrap = regexp.MustCompile(`(\w)-[ \t]*\n[ \t]*(\w)`)
)

// Text joins ordered per-page text blocks into a single searchable
// string. Runs of spaces collapse to one space and runs of newlines to
// one newline (line boundaries are kept because the address rules need
// them), words split by a trailing hyphen at a line break are rejoined,
// and headers/footers repeated verbatim on two or more pages are
// stripped. Idempotent: normalizing normalized text returns it unchanged.
func Text(pages []string) string {
	if len(pages) > 1 {
		pages = stripRepeatedEdges(pages)
	}

	joined := strings.Join(pages, "\n")

	joined = spaceRun.ReplaceAllString(joined, " ")
	joined = hyphenWrap.ReplaceAllString(joined, "$1$2")

	// Trim trailing spaces per line so repeated normalization is stable
	lines := strings.Split(joined, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	joined = strings.Join(lines, "\n")

	joined = newlineRun.ReplaceAllString(joined, "\n")
	return strings.TrimSpace(joined)
}

// stripRepeatedEdges removes the first and last non-empty line of each
// page when that exact line opens or closes at least two pages. Lease
// PDFs repeat things like "Standard Office Lease - Page 3" on every page
// and those lines otherwise pollute proximity matches.
func stripRepeatedEdges(pages []string) []string {
	headerCount := make(map[string]int)
	footerCount := make(map[string]int)

	for _, page := range pages {
		if h := edgeLine(page, true); h != "" {
			headerCount[h]++
		}
		if f := edgeLine(page, false); f != "" {
			footerCount[f]++
		}
	}

	out := make([]string, len(pages))
	for i, page := range pages {
		lines := strings.Split(page, "\n")
		if h := edgeLine(page, true); h != "" && headerCount[h] >= 2 {
			lines = dropFirstMatch(lines, h, true)
		}
		if f := edgeLine(page, false); f != "" && footerCount[f] >= 2 {
			lines = dropFirstMatch(lines, f, false)
		}
		out[i] = strings.Join(lines, "\n")
	}
	return out
}

// edgeLine returns the first (or last) non-empty trimmed line of a page
func edgeLine(page string, first bool) string {
	lines := strings.Split(page, "\n")
	if !first {
		for i := len(lines) - 1; i >= 0; i-- {
			if s := strings.TrimSpace(lines[i]); s != "" {
				return s
			}
		}
		return ""
	}
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

// dropFirstMatch removes the first (or last) line whose trimmed form
// equals target
func dropFirstMatch(lines []string, target string, fromStart bool) []string {
	if fromStart {
		for i, line := range lines {
			if strings.TrimSpace(line) == target {
				return append(lines[:i:i], lines[i+1:]...)
			}
		}
		return lines
	}
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == target {
			return append(lines[:i:i], lines[i+1:]...)
		}
	}
	return lines
}
