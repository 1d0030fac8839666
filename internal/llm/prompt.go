package llm

import (
	"fmt"
	"strings"

	"leaselens/internal/model"
)

// systemPrompt pins the model to structured output. Field semantics live
// in the user prompt so the instruction set stays closed per request.
const systemPrompt = "You are an expert lease analyst. Extract structured facts as valid JSON only."

// fieldGuidance gives the model a one-line definition per requested field
var fieldGuidance = map[model.FieldKind]string{
	model.FieldTenantName:         "the tenant (lessee) legal name.",
	model.FieldLandlordName:       "the landlord (lessor) legal name.",
	model.FieldPropertyAddress:    "the leased premises street address including the suite, e.g. '100 Main Street Suite 120B'.",
	model.FieldTotalSquareFeet:    "the rentable square footage, digits only (e.g. 4250).",
	model.FieldCommencementDate:   "the lease commencement date in YYYY-MM-DD.",
	model.FieldExpirationDate:     "the lease expiration date in YYYY-MM-DD.",
	model.FieldProportionateShare: "the tenant's proportionate share as a percentage, e.g. '12.5%'.",
	model.FieldBaseYear:           "the base year, a four-digit year.",
	model.FieldSecurityDeposit:    "the security deposit amount, numbers and decimal point only (e.g. 1234.56).",
}

// BuildPrompt constructs the constrained extraction prompt. Only the
// missing fields appear in the allowed key set; the model must answer
// with exactly those keys and null for anything it cannot find.
func BuildPrompt(text string, missing []model.FieldKind, maxChars int) string {
	keys := make([]string, len(missing))
	for i, kind := range missing {
		keys[i] = string(kind)
	}

	var b strings.Builder
	b.WriteString("Extract the following key facts from the lease text below.\n")
	b.WriteString("Return ONLY a JSON object with these exact keys: ")
	b.WriteString(strings.Join(keys, ", "))
	b.WriteString(".\nInstructions:\n")
	for _, kind := range missing {
		if g, ok := fieldGuidance[kind]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", kind, g)
		}
	}
	b.WriteString("- If a field is not present in the text, use null.\n")
	b.WriteString("- Do not add keys beyond the requested set.\n")
	b.WriteString("\nLease Text:\n")

	if maxChars > 0 && len(text) > maxChars {
		text = text[:maxChars]
	}
	b.WriteString(text)

	return b.String()
}
