package model

// LeaseFacts is the complete extraction result: every FieldKind exactly
// once, each either resolved or absent. Created fresh per request and
// discarded after the result is returned.
type LeaseFacts struct {
	Fields map[FieldKind]ExtractedField `json:"fields"`

	// DecodeFailed marks results where no text could be obtained from
	// the document at all (all fields absent in that case).
	DecodeFailed bool `json:"decode_failed,omitempty"`
}

// NewLeaseFacts returns a result with every field marked absent
func NewLeaseFacts() *LeaseFacts {
	fields := make(map[FieldKind]ExtractedField, len(AllFieldKinds()))
	for _, kind := range AllFieldKinds() {
		fields[kind] = AbsentField(kind)
	}
	return &LeaseFacts{Fields: fields}
}

// Set replaces the entry for a known field kind; unknown kinds are ignored
func (f *LeaseFacts) Set(field ExtractedField) {
	if _, ok := f.Fields[field.Name]; ok {
		f.Fields[field.Name] = field
	}
}

// Get returns the entry for a field kind
func (f *LeaseFacts) Get(kind FieldKind) ExtractedField {
	return f.Fields[kind]
}

// Missing returns the field kinds still absent, in stable order
func (f *LeaseFacts) Missing() []FieldKind {
	var missing []FieldKind
	for _, kind := range AllFieldKinds() {
		if f.Fields[kind].Source == SourceAbsent {
			missing = append(missing, kind)
		}
	}
	return missing
}

// Flat returns the transport form: field name → normalized value, with
// nil for absent fields. Confidence and source stay internal.
func (f *LeaseFacts) Flat() map[string]*string {
	out := make(map[string]*string, len(AllFieldKinds()))
	for _, kind := range AllFieldKinds() {
		field := f.Fields[kind]
		if field.Source == SourceAbsent || field.NormalizedValue == "" {
			out[string(kind)] = nil
			continue
		}
		value := field.NormalizedValue
		out[string(kind)] = &value
	}
	return out
}
