package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"leaselens/internal/model"
)

// Field canonicalizes a raw matched value for the given field kind.
// A value that cannot be canonicalized returns an error and the caller
// demotes the field to absent: correctness over recall.
func Field(kind model.FieldKind, raw string) (string, error) {
	switch kind.Type() {
	case model.ValueDate:
		return Date(raw)
	case model.ValueCurrency:
		return Currency(raw)
	case model.ValuePercent:
		return Percent(raw)
	case model.ValueYear:
		return Year(raw)
	default:
		return FreeText(raw)
	}
}

// dateLayouts are tried in order. Numeric mm/dd and mm-dd forms are
// month-first: the upstream system parsed with dayfirst disabled, and
// the convention is pinned by tests.
var dateLayouts = []string{
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
}

var shortYearDate = regexp.MustCompile(`^(\d{1,2})([/-])(\d{1,2})[/-](\d{2})$`)

// Date parses the supported input orders and emits DD-MM-YYYY.
// Two-digit years resolve to the nearest century: years >= 50 are 19xx,
// the rest 20xx.
func Date(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, ".,;")

	if m := shortYearDate.FindStringSubmatch(s); m != nil {
		century := "20"
		if m[4] >= "50" {
			century = "19"
		}
		s = m[1] + m[2] + m[3] + m[2] + century + m[4]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02-01-2006"), nil
		}
	}
	return "", fmt.Errorf("unparseable date: %q", raw)
}

var currencyStrip = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

// explicit "no deposit" spellings normalize to a zero amount
var noneWords = map[string]bool{
	"none":       true,
	"no deposit": true,
}

// Currency strips symbols and separators and emits a canonical decimal
// string with no thousands separators and at most two decimal places.
func Currency(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if noneWords[strings.ToLower(s)] {
		return "0", nil
	}

	s = currencyStrip.Replace(s)
	if s == "" || !strings.ContainsAny(s, "0123456789") {
		return "", fmt.Errorf("non-numeric amount: %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("non-numeric amount: %q", raw)
	}
	if d.Exponent() < -2 {
		d = d.Round(2)
	}
	return d.String(), nil
}

// Percent strips the % sign and emits a canonical decimal string
func Percent(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("non-numeric percentage: %q", raw)
	}
	return d.String(), nil
}

var fourDigitYear = regexp.MustCompile(`^\d{4}$`)

// Year accepts only a four-digit year token
func Year(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if !fourDigitYear.MatchString(s) {
		return "", fmt.Errorf("not a year: %q", raw)
	}
	return s, nil
}

// FreeText trims and collapses internal whitespace, preserving casing
func FreeText(raw string) (string, error) {
	s := strings.Join(strings.Fields(raw), " ")
	s = strings.Trim(s, " ,;-")
	if s == "" {
		return "", fmt.Errorf("empty text value")
	}
	return s, nil
}
