package normalize

import (
	"testing"

	"leaselens/internal/model"
)

func TestDate_SupportedFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"March 4, 2016", "04-03-2016"},
		{"March 4 2016", "04-03-2016"},
		{"Jan 1, 2016", "01-01-2016"},
		{"December 31, 2020", "31-12-2020"},
		{"4 March 2016", "04-03-2016"},
		// Mixed numeric dates are month-first (mm/dd/yyyy), matching the
		// upstream dayfirst=false convention.
		{"10/05/2015", "05-10-2015"},
		{"1/2/2016", "02-01-2016"},
		{"01-02-2016", "02-01-2016"},
		{"2016-01-02", "02-01-2016"},
	}

	for _, tc := range cases {
		got, err := Date(tc.in)
		if err != nil {
			t.Errorf("Date(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate_TwoDigitYearCentury(t *testing.T) {
	// Policy: two-digit years >= 50 resolve to 19xx, the rest to 20xx
	cases := []struct {
		in   string
		want string
	}{
		{"10/05/99", "05-10-1999"},
		{"10/05/50", "05-10-1950"},
		{"10/05/49", "05-10-2049"},
		{"10/05/15", "05-10-2015"},
	}

	for _, tc := range cases {
		got, err := Date(tc.in)
		if err != nil {
			t.Errorf("Date(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Date(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDate_RejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "soon", "13/32/2016", "February 30, 2016", "March 2016"} {
		if got, err := Date(in); err == nil {
			t.Errorf("Date(%q) = %q, expected error", in, got)
		}
	}
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"$12,500.00", "12500"},
		{"12,500.50", "12500.5"},
		{"$1,234.567", "1234.57"},
		{"3500", "3500"},
		{"None", "0"},
		{"no deposit", "0"},
	}

	for _, tc := range cases {
		got, err := Currency(tc.in)
		if err != nil {
			t.Errorf("Currency(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Currency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCurrency_RejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"$N/A", "", "TBD", ",,,", "$12.34.56"} {
		if got, err := Currency(in); err == nil {
			t.Errorf("Currency(%q) = %q, expected error", in, got)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12.5%", "12.5"},
		{"12.5 %", "12.5"},
		{"7%", "7"},
	}

	for _, tc := range cases {
		got, err := Percent(tc.in)
		if err != nil {
			t.Errorf("Percent(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Percent(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got, err := Percent("N/A%"); err == nil {
		t.Errorf("Percent(\"N/A%%\") = %q, expected error", got)
	}
}

func TestYear(t *testing.T) {
	if got, err := Year(" 2016 "); err != nil || got != "2016" {
		t.Errorf("Year(\" 2016 \") = %q, %v", got, err)
	}
	for _, in := range []string{"16", "20166", "year"} {
		if got, err := Year(in); err == nil {
			t.Errorf("Year(%q) = %q, expected error", in, got)
		}
	}
}

func TestFreeText(t *testing.T) {
	got, err := FreeText("  Acme   Widget  Co.,  ")
	if err != nil {
		t.Fatalf("FreeText returned error: %v", err)
	}
	if got != "Acme Widget Co." {
		t.Errorf("FreeText = %q", got)
	}

	if _, err := FreeText("   "); err == nil {
		t.Error("FreeText on blank input should error")
	}
}

func TestField_DispatchesByKind(t *testing.T) {
	got, err := Field(model.FieldCommencementDate, "January 1, 2016")
	if err != nil || got != "01-01-2016" {
		t.Errorf("Field(date) = %q, %v", got, err)
	}

	got, err = Field(model.FieldSecurityDeposit, "$3,500.00")
	if err != nil || got != "3500" {
		t.Errorf("Field(currency) = %q, %v", got, err)
	}

	got, err = Field(model.FieldProportionateShare, "12.5%")
	if err != nil || got != "12.5" {
		t.Errorf("Field(percent) = %q, %v", got, err)
	}

	got, err = Field(model.FieldTenantName, " Acme  Corp ")
	if err != nil || got != "Acme Corp" {
		t.Errorf("Field(text) = %q, %v", got, err)
	}
}
