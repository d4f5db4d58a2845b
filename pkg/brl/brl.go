// Package brl converts between free-form user-typed currency text and decimal
// amounts, and between decimal amounts and the Brazilian masked display form
// ("R$ 1.234,50"). All conversions are total: malformed input degrades to zero
// or to the empty string, never to an error.
package brl

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse extracts a decimal amount from arbitrary text (raw keystrokes, a
// previously masked value, or a pasted grouped number).
//
// When a comma is present, every dot is a thousands separator and the comma is
// the decimal point. When only dots are present they are ALL treated as
// thousands separators: a dot alone never means a decimal point here, so a
// pasted "1.250" parses as 1250, matching the masked-input convention.
func Parse(text string) decimal.Decimal {
	raw := keep(text, "0123456789,.-")
	if raw == "" {
		return decimal.Zero
	}

	var normalized string
	if strings.Contains(raw, ",") {
		normalized = strings.Replace(strings.ReplaceAll(raw, ".", ""), ",", ".", 1)
	} else {
		normalized = strings.ReplaceAll(raw, ".", "")
	}

	if d, err := decimal.NewFromString(normalized); err == nil {
		return d
	}
	// Tolerate forms like "12." that strconv accepts but decimal does not.
	if f, err := strconv.ParseFloat(normalized, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return decimal.NewFromFloat(f)
	}
	return decimal.Zero
}

// FormatInput reapplies the currency mask to a partially-typed value. It is
// called on every keystroke with padDecimals=false, and on field exit with
// padDecimals=true to force a fully-formed "R$ 1.234,50".
//
// Unlike Parse, a trailing dot followed by one or two digits IS promoted to
// the decimal separator: numeric keypads emit "." for the decimal key, and
// while typing there is no comma yet to disambiguate. Keep this asymmetry;
// unifying it would silently change amounts parsed from pasted grouped text.
func FormatInput(text string, padDecimals bool) string {
	raw := keep(text, "0123456789,.")
	if keep(raw, "0123456789") == "" {
		return ""
	}

	hadComma := strings.Contains(raw, ",")
	switch {
	case hadComma:
		raw = strings.ReplaceAll(raw, ".", "")
	case strings.Contains(raw, "."):
		lastDot := strings.LastIndex(raw, ".")
		decimals := len(raw) - lastDot - 1
		if decimals > 0 && decimals <= 2 {
			before := strings.ReplaceAll(raw[:lastDot], ".", "")
			raw = before + "," + raw[lastDot+1:]
			hadComma = true
		} else {
			raw = strings.ReplaceAll(raw, ".", "")
		}
	}

	parts := strings.Split(raw, ",")
	intPart := strings.TrimLeft(parts[0], "0")
	if intPart == "" {
		intPart = "0"
	}
	decPart := ""
	if len(parts) > 1 {
		decPart = keep(parts[1], "0123456789")
	}
	if padDecimals {
		decPart = (decPart + "00")[:2]
	} else if len(decPart) > 2 {
		decPart = decPart[:2]
	}

	grouped := group(intPart)
	if padDecimals {
		return "R$ " + grouped + "," + decPart
	}
	if hadComma || decPart != "" {
		return "R$ " + grouped + "," + decPart
	}
	return "R$ " + grouped
}

// Format renders a settled amount in the pt-BR currency convention,
// e.g. 1234.5 → "R$ 1.234,50" and -3 → "-R$ 3,00".
func Format(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, decPart, _ := strings.Cut(s, ".")
	out := "R$ " + group(intPart) + "," + decPart
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// keep returns text with every rune outside set removed.
func keep(text, set string) string {
	var b strings.Builder
	for _, r := range text {
		if strings.ContainsRune(set, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// group inserts a "." every three digits from the right.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Amount is a decimal that binds leniently from JSON: it accepts a plain
// number or any string Parse understands (masked, partially typed, pasted).
// It never fails to unmarshal: garbage becomes zero, mirroring Parse.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal for use in DTOs.
func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = Parse(str)
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}
