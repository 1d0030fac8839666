package extract

import (
	"regexp"

	"leaselens/internal/model"
)

// Strategy-tier confidences. A confidence is a tier marker for which
// rule class matched, not a probability.
const (
	ConfidenceAnchored   = 0.9 // explicit label next to the value
	ConfidenceProximity  = 0.6 // value near a related keyword
	ConfidencePositional = 0.3 // positional fallback, date fields only
)

// strategy is one matching attempt for a field. Strategies are tried in
// order; within a strategy the occurrence with the smallest start offset
// wins, and a match from an earlier strategy always beats a later one.
type strategy struct {
	re         *regexp.Regexp
	confidence float64

	// literal, when set, replaces the captured text as the raw value
	// (used for explicit "no deposit" spellings).
	literal string

	// windowed limits the search to the head of the document
	// (positional fallbacks only).
	windowed bool

	// numeric requires the captured token to parse as a number;
	// otherwise the next occurrence, then the next strategy, is tried.
	numeric bool
}

const monthAlt = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)`

// dateToken matches the date shapes the field normalizer understands
const dateToken = `(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2}|` + monthAlt + `\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}\s+` + monthAlt + `\.?,?\s+\d{4})`

// suiteToken captures a suite/ste/# designator
var suiteToken = regexp.MustCompile(`(?i)(?:Suite|Ste\.?|#)\s*([\w\-]+)`)

// streetLine matches a street-address line (number + name + road type)
var streetLine = regexp.MustCompile(`(?im)^(\d{1,6}\s+[^\n]*?(?:Street|St\.|Avenue|Ave\.|Road|Rd\.|Boulevard|Blvd\.|Lane|Ln\.|Drive|Dr\.|Court|Ct\.|Way|Terrace|Ter\.)\b[^\n]*)$`)

// rules is the static field → strategy-list table. Read-only after
// init, safe for unsynchronized concurrent reads.
var rules = map[model.FieldKind][]strategy{
	model.FieldTenantName: {
		{re: regexp.MustCompile(`(?im)\bTenant\s*:\s*(.+)$`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?im)\bLessee\s*:\s*(.+)$`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?i)\bby\s+and\s+between\s+[^\n(]+\("Landlord"\)\s*(?:,\s*)?and\s+([^\n(]+?)\s*\("Tenant"\)`), confidence: ConfidenceProximity},
	},
	model.FieldLandlordName: {
		{re: regexp.MustCompile(`(?im)\bLandlord\s*:\s*(.+)$`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?im)\bLessor\s*:\s*(.+)$`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?i)\bby\s+and\s+between\s+([^\n(]+?)\s*\("Landlord"\)`), confidence: ConfidenceProximity},
	},
	model.FieldPropertyAddress: {
		{re: regexp.MustCompile(`(?im)\b(?:Premises(?:\s*Address)?|Property(?:\s*Address)?|Address)\s*[:\-]\s*(.+)$`), confidence: ConfidenceAnchored},
		{re: streetLine, confidence: ConfidenceProximity},
	},
	model.FieldTotalSquareFeet: {
		{re: regexp.MustCompile(`(?i)\b(?:Rentable|Leasable|Approx\.?|Total)?\s*(?:Square\s*Feet|Sq\.?\s*Ft\.?|SF)\b[^\d\n]*([\d,]+(?:\.\d+)?)`), confidence: ConfidenceAnchored, numeric: true},
		{re: regexp.MustCompile(`(?i)\b([\d,]+(?:\.\d+)?)\s*(?:rentable\s+)?(?:square\s*feet|sq\.?\s*ft\.?|sf)\b`), confidence: ConfidenceProximity, numeric: true},
	},
	model.FieldCommencementDate: {
		{re: regexp.MustCompile(`(?i)\b(?:Lease\s*)?Commencement\s*Date\s*:?\s*(` + dateToken + `)`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?i)\bcommenc\w*\b[^\n]{0,80}?(` + dateToken + `)`), confidence: ConfidenceProximity},
		{re: regexp.MustCompile(`(` + dateToken + `)`), confidence: ConfidencePositional, windowed: true},
	},
	model.FieldExpirationDate: {
		{re: regexp.MustCompile(`(?i)\b(?:Lease\s*)?(?:Expiration|Expiry)\s*Date\s*:?\s*(` + dateToken + `)`), confidence: ConfidenceAnchored},
		{re: regexp.MustCompile(`(?i)\bexpir\w*\b[^\n]{0,80}?(` + dateToken + `)`), confidence: ConfidenceProximity},
		// No positional tier: it would surface the same first date token
		// the commencement fallback already claims.
	},
	model.FieldProportionateShare: {
		{re: regexp.MustCompile(`(?i)\bProportionate\s+Share\s*:?\s*(\d{1,3}(?:\.\d+)?\s*%)`), confidence: ConfidenceAnchored, numeric: true},
		{re: regexp.MustCompile(`(?i)\b(?:pro\s*rata|share)\b[^\n%]{0,60}?(\d{1,3}(?:\.\d+)?\s*%)`), confidence: ConfidenceProximity, numeric: true},
	},
	model.FieldBaseYear: {
		{re: regexp.MustCompile(`(?i)\bBase\s+Year\s*:?\s*(\d{4})\b`), confidence: ConfidenceAnchored},
	},
	model.FieldSecurityDeposit: {
		{re: regexp.MustCompile(`(?i)\bSecurity\s+Deposit\s*:?\s*(?:of\s+)?\$?\s*([\d,]+(?:\.\d{1,2})?)\b`), confidence: ConfidenceAnchored, numeric: true},
		{re: regexp.MustCompile(`(?i)\bSecurity\s+Deposit\b[^\n]*?\b(None|N/A|No\s+Deposit)\b`), confidence: ConfidenceProximity, literal: "None"},
	},
}
