package llm

import (
	"strings"
	"testing"

	"leaselens/internal/model"
)

func TestParseFactsResponse_PlainJSON(t *testing.T) {
	missing := []model.FieldKind{model.FieldTenantName, model.FieldBaseYear}

	content := `{"tenant_name": "Acme Widget Co", "base_year": 2016}`
	values, err := ParseFactsResponse(content, missing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if values[model.FieldTenantName] != "Acme Widget Co" {
		t.Errorf("Unexpected tenant: %q", values[model.FieldTenantName])
	}
	// Numeric scalars are coerced to strings
	if values[model.FieldBaseYear] != "2016" {
		t.Errorf("Unexpected base year: %q", values[model.FieldBaseYear])
	}
}

func TestParseFactsResponse_FencedJSON(t *testing.T) {
	missing := []model.FieldKind{model.FieldLandlordName}

	content := "Here are the facts:\n```json\n{\"landlord_name\": \"Holding LLC\"}\n```\n"
	values, err := ParseFactsResponse(content, missing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if values[model.FieldLandlordName] != "Holding LLC" {
		t.Errorf("Unexpected landlord: %q", values[model.FieldLandlordName])
	}
}

func TestParseFactsResponse_DropsUnrequestedKeys(t *testing.T) {
	missing := []model.FieldKind{model.FieldTenantName}

	content := `{"tenant_name": "Acme", "landlord_name": "Sneaky LLC", "made_up_key": "x"}`
	values, err := ParseFactsResponse(content, missing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(values) != 1 {
		t.Errorf("Expected only the requested key, got %v", values)
	}
}

func TestParseFactsResponse_NullsAndNotFoundSpellings(t *testing.T) {
	missing := []model.FieldKind{
		model.FieldTenantName,
		model.FieldLandlordName,
		model.FieldBaseYear,
		model.FieldSecurityDeposit,
	}

	content := `{"tenant_name": null, "landlord_name": "Not Found", "base_year": "N/A", "security_deposit": ""}`
	values, err := ParseFactsResponse(content, missing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(values) != 0 {
		t.Errorf("Expected all values treated as absent, got %v", values)
	}
}

func TestParseFactsResponse_ExplicitNoDeposit(t *testing.T) {
	missing := []model.FieldKind{model.FieldTenantName, model.FieldSecurityDeposit}

	// "None" is a real lease answer for the deposit (normalizes to a
	// zero amount downstream) but still means absent for other fields.
	content := `{"tenant_name": "None", "security_deposit": "None"}`
	values, err := ParseFactsResponse(content, missing)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := values[model.FieldTenantName]; ok {
		t.Errorf("Expected tenant 'None' treated as absent, got %v", values)
	}
	if values[model.FieldSecurityDeposit] != "None" {
		t.Errorf("Expected deposit 'None' kept, got %v", values)
	}

	content = `{"security_deposit": "no deposit"}`
	values, err = ParseFactsResponse(content, []model.FieldKind{model.FieldSecurityDeposit})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if values[model.FieldSecurityDeposit] != "no deposit" {
		t.Errorf("Expected 'no deposit' kept, got %v", values)
	}
}

func TestParseFactsResponse_Malformed(t *testing.T) {
	missing := []model.FieldKind{model.FieldTenantName}

	for _, content := range []string{"", "no json here", "{broken", `["array"]`} {
		values, err := ParseFactsResponse(content, missing)
		if err == nil {
			t.Errorf("Expected parse error for %q", content)
		}
		if len(values) != 0 {
			t.Errorf("Expected empty values for %q, got %v", content, values)
		}
	}
}

func TestBuildPrompt_ListsOnlyMissingFields(t *testing.T) {
	missing := []model.FieldKind{model.FieldBaseYear, model.FieldSecurityDeposit}

	prompt := BuildPrompt("Base Year is not stated.", missing, 0)

	for _, want := range []string{"base_year", "security_deposit", "use null"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(prompt, "tenant_name") {
		t.Error("Prompt must not mention fields the patterns already resolved")
	}
}

func TestBuildPrompt_CapsText(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	prompt := BuildPrompt(string(long), []model.FieldKind{model.FieldTenantName}, 100)
	if len(prompt) > 600 {
		t.Errorf("Expected document text capped, prompt length %d", len(prompt))
	}
}
