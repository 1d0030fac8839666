package pipeline

import (
	"leaselens/internal/model"
	"leaselens/internal/normalize"
)

// fallbackConfidence is the flat confidence assigned to LLM-sourced
// values. It sits below every pattern tier except positional, but the
// merge rule ignores confidence entirely: patterns always win.
const fallbackConfidence = 0.5

// mergeFallback folds LLM answers into the result. Only fields the
// patterns left absent are eligible; a fallback value that fails
// canonicalization leaves its field absent.
func mergeFallback(facts *model.LeaseFacts, values map[model.FieldKind]string) {
	for kind, raw := range values {
		if facts.Get(kind).Source != model.SourceAbsent {
			continue
		}
		value, err := normalize.Field(kind, raw)
		if err != nil {
			continue
		}
		facts.Set(model.ExtractedField{
			Name:            kind,
			RawValue:        raw,
			NormalizedValue: value,
			Confidence:      fallbackConfidence,
			Source:          model.SourceLLM,
		})
	}
}
