package extract

import (
	"regexp"
	"strconv"
	"strings"

	"leaselens/internal/model"
)

// PatternExtractor applies the static rule table to normalized text and
// produces at most one surviving candidate per field kind.
type PatternExtractor struct {
	positionalWindow int
}

// Match pairs the surviving candidate for a field with the confidence
// tier of the strategy that produced it.
type Match struct {
	Candidate  model.Candidate
	Confidence float64
}

// NewPatternExtractor creates a new pattern extractor. positionalWindow
// bounds the head-of-document search used by positional fallbacks.
func NewPatternExtractor(positionalWindow int) *PatternExtractor {
	if positionalWindow <= 0 {
		positionalWindow = 2000
	}
	return &PatternExtractor{positionalWindow: positionalWindow}
}

// Extract runs every field's strategy list against the text. It never
// fails on malformed input: fields without a valid candidate are simply
// missing from the returned map.
func (e *PatternExtractor) Extract(text string) map[model.FieldKind]Match {
	out := make(map[model.FieldKind]Match)
	for _, kind := range model.AllFieldKinds() {
		if m, ok := e.extractField(kind, text); ok {
			out[kind] = m
		}
	}
	return out
}

// extractField tries each strategy in priority order. Within one
// strategy the occurrence with the smallest start offset wins; a match
// from an earlier strategy always beats any later-strategy match.
func (e *PatternExtractor) extractField(kind model.FieldKind, text string) (Match, bool) {
	for rank, st := range rules[kind] {
		scope := text
		if st.windowed && len(scope) > e.positionalWindow {
			scope = scope[:e.positionalWindow]
		}

		for _, loc := range st.re.FindAllStringSubmatchIndex(scope, -1) {
			start, end := loc[2], loc[3]
			if start < 0 {
				continue
			}

			raw := scope[start:end]
			if st.literal != "" {
				raw = st.literal
			}
			if st.numeric && !parsesAsNumber(raw) {
				// Syntactically matching but numerically invalid:
				// reject and try the next occurrence, then the next
				// strategy.
				continue
			}

			cand := model.Candidate{
				RawText:      strings.TrimSpace(raw),
				Start:        start,
				End:          end,
				StrategyRank: rank,
			}
			if kind == model.FieldPropertyAddress {
				cand.RawText = combineAddressSuite(text, cand)
			}
			return Match{Candidate: cand, Confidence: st.confidence}, true
		}
	}
	return Match{}, false
}

var numberStrip = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// parsesAsNumber reports whether a token survives numeric validation
// after removing thousands separators, currency symbols, and % signs
func parsesAsNumber(raw string) bool {
	s := numberStrip.Replace(strings.TrimSpace(raw))
	if s == "" || !strings.ContainsAny(s, "0123456789") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var suiteStrip = regexp.MustCompile(`(?i),?\s*(?:Suite|Ste\.?|#)\s*[\w\-]+`)

// combineAddressSuite merges the matched address line with a suite
// designator found inline, on the following line, or anywhere in the
// document, emitting "<address> Suite <n>" when both exist.
func combineAddressSuite(text string, cand model.Candidate) string {
	line := cand.RawText
	suite := ""

	if m := suiteToken.FindStringSubmatch(line); m != nil {
		suite = m[1]
		line = suiteStrip.ReplaceAllString(line, "")
	} else {
		if next := followingLine(text, cand.End); next != "" {
			if m := suiteToken.FindStringSubmatch(next); m != nil {
				suite = m[1]
			}
		}
		if suite == "" {
			if m := suiteToken.FindStringSubmatch(text); m != nil {
				suite = m[1]
			}
		}
	}

	line = strings.Trim(strings.TrimSpace(line), ",;-")
	line = strings.TrimSpace(line)
	if suite != "" && line != "" {
		return line + " Suite " + suite
	}
	return line
}

// followingLine returns the line after the one containing offset end
func followingLine(text string, end int) string {
	if end >= len(text) {
		return ""
	}
	rest := text[end:]
	i := strings.Index(rest, "\n")
	if i < 0 {
		return ""
	}
	next := rest[i+1:]
	if j := strings.Index(next, "\n"); j >= 0 {
		next = next[:j]
	}
	return next
}
