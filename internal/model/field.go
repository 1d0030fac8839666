package model

// FieldKind identifies one of the fixed lease-fact categories the engine extracts
type FieldKind string

const (
	FieldTenantName         FieldKind = "tenant_name"
	FieldLandlordName       FieldKind = "landlord_name"
	FieldPropertyAddress    FieldKind = "property_address_and_suite"
	FieldTotalSquareFeet    FieldKind = "total_square_feet"
	FieldCommencementDate   FieldKind = "lease_commencement_date"
	FieldExpirationDate     FieldKind = "lease_expiration_date"
	FieldProportionateShare FieldKind = "proportionate_share"
	FieldBaseYear           FieldKind = "base_year"
	FieldSecurityDeposit    FieldKind = "security_deposit"
)

// AllFieldKinds returns every supported field kind in stable order
func AllFieldKinds() []FieldKind {
	return []FieldKind{
		FieldTenantName,
		FieldLandlordName,
		FieldPropertyAddress,
		FieldTotalSquareFeet,
		FieldCommencementDate,
		FieldExpirationDate,
		FieldProportionateShare,
		FieldBaseYear,
		FieldSecurityDeposit,
	}
}

// ValueType classifies how a field's raw value is canonicalized
type ValueType int

const (
	ValueText     ValueType = iota // trimmed free text (names, addresses)
	ValueDate                      // emitted as DD-MM-YYYY
	ValueCurrency                  // decimal string, no separators, ≤2 decimals
	ValuePercent                   // decimal string without the % sign
	ValueYear                      // four-digit year
)

// Type returns the value type used to canonicalize the field
func (k FieldKind) Type() ValueType {
	switch k {
	case FieldCommencementDate, FieldExpirationDate:
		return ValueDate
	case FieldTotalSquareFeet, FieldSecurityDeposit:
		return ValueCurrency
	case FieldProportionateShare:
		return ValuePercent
	case FieldBaseYear:
		return ValueYear
	default:
		return ValueText
	}
}

// Source records which extraction path produced a field value
type Source string

const (
	SourcePattern Source = "pattern" // deterministic rule match
	SourceLLM     Source = "llm"     // LLM fallback
	SourceAbsent  Source = "absent"  // no path produced a value
)

// ExtractedField is one resolved lease fact.
// Immutable once produced; the assembler replaces whole values only.
type ExtractedField struct {
	Name            FieldKind `json:"name"`
	RawValue        string    `json:"raw_value,omitempty"`
	NormalizedValue string    `json:"normalized_value,omitempty"`
	Confidence      float64   `json:"confidence"`
	Source          Source    `json:"source"`
}

// AbsentField returns the canonical absent value for a field kind
func AbsentField(kind FieldKind) ExtractedField {
	return ExtractedField{Name: kind, Source: SourceAbsent}
}

// Candidate is a text span matched by one extraction strategy for one
// field, before normalization. Offsets index into the normalized text.
type Candidate struct {
	RawText      string
	Start        int
	End          int
	StrategyRank int
}
