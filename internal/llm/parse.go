package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"leaselens/internal/model"
)

// notFoundWords are model spellings of "no value" that must map to absent
var notFoundWords = map[string]bool{
	"null":      true,
	"not found": true,
	"n/a":       true,
	"none":      true,
	"unknown":   true,
	"":          true,
}

// For the security deposit, "none" and "no deposit" are lease terms, not
// missing answers: they pass through and canonicalize to a zero amount,
// the same way the pattern path treats an explicit no-deposit clause.
var explicitZeroDeposit = map[string]bool{
	"none":       true,
	"no deposit": true,
}

// isNotFound reports whether a model answer means "field absent"
func isNotFound(kind model.FieldKind, value string) bool {
	s := strings.ToLower(strings.TrimSpace(value))
	if kind == model.FieldSecurityDeposit && explicitZeroDeposit[s] {
		return false
	}
	return notFoundWords[s]
}

// ParseFactsResponse parses a model response into per-field raw values.
// Parsing is defensive: fenced or decorated JSON is unwrapped, keys
// outside the requested set are dropped, nulls and "not found" spellings
// mean absent. A response that cannot be parsed at all yields an empty
// map plus the parse error for diagnostics; callers degrade to "no
// additional facts found" rather than failing the request.
func ParseFactsResponse(content string, missing []model.FieldKind) (map[model.FieldKind]string, error) {
	doc := extractJSONObject(content)
	if doc == "" {
		return map[model.FieldKind]string{}, fmt.Errorf("no JSON object in response")
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		return map[model.FieldKind]string{}, fmt.Errorf("unmarshal response: %w", err)
	}

	requested := make(map[model.FieldKind]bool, len(missing))
	for _, kind := range missing {
		requested[kind] = true
	}

	values := make(map[model.FieldKind]string)
	for key, v := range raw {
		kind := model.FieldKind(key)
		if !requested[kind] {
			continue
		}
		s, ok := stringValue(v)
		if !ok || isNotFound(kind, s) {
			continue
		}
		values[kind] = strings.TrimSpace(s)
	}
	return values, nil
}

// extractJSONObject unwraps markdown code fences and surrounding prose,
// returning the outermost {...} block
func extractJSONObject(content string) string {
	s := strings.TrimSpace(content)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// stringValue coerces JSON scalars to strings; objects/arrays are dropped
func stringValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool, nil:
		return "", false
	default:
		return "", false
	}
}
