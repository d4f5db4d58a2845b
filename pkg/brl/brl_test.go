package brl

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"abc", "0"},
		{"R$ ", "0"},
		{"1250", "1250"},         // digit-only: whole currency units
		{"1.250", "1250"},        // dot alone is grouping, never decimal
		{"12.345.678", "12345678"},
		{"12,5", "12.5"},
		{"1.250,75", "1250.75"},
		{"R$ 1.234,50", "1234.5"},
		{"0,99", "0.99"},
		{",5", "0.5"},
		{"12,", "12"},
		{"-5,00", "-5"},
		{"1,2,3", "0"}, // two commas: not a number
		{"1-2", "0"},
	}
	for _, c := range cases {
		assert.True(t, Parse(c.in).Equal(dec(c.want)), "Parse(%q) = %s, want %s", c.in, Parse(c.in), c.want)
	}
}

func TestFormatInputPadded(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"abc", ""},
		{"R$ ,", ""},
		{"1", "R$ 1,00"},
		{"1234,5", "R$ 1.234,50"},
		{"0007", "R$ 7,00"},
		{"0", "R$ 0,00"},
		{"00", "R$ 0,00"},
		{"12.5", "R$ 12,50"},     // keypad dot promoted to decimal separator
		{"12.34", "R$ 12,34"},
		{"1.250", "R$ 1.250,00"}, // three digits after the dot: grouping
		{"1.250,7", "R$ 1.250,70"},
		{"R$ 1.234,50", "R$ 1.234,50"}, // re-entry of an already masked value
		{"1234567", "R$ 1.234.567,00"},
		{"1,999", "R$ 1,99"}, // fraction truncated, never rounded
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatInput(c.in, true), "FormatInput(%q, pad)", c.in)
	}
}

func TestFormatInputWhileTyping(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"1", "R$ 1"},
		{"12", "R$ 12"},
		{"1234", "R$ 1.234"},
		{"1,", "R$ 1,"}, // trailing comma survives mid-typing
		{"1,5", "R$ 1,5"},
		{"1234,50", "R$ 1.234,50"},
		{"0007", "R$ 7"},
		{"12.", "R$ 12"}, // bare trailing dot: no digits after, stripped
		{"12.5", "R$ 12,5"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatInput(c.in, false), "FormatInput(%q, no pad)", c.in)
	}
}

// TestTypingRoundTrip simulates character-by-character entry the way a masked
// field applies it: each keystroke appends to the previous masked value and the
// whole thing is re-masked; leaving the field pads the decimals. The parsed
// result must be the amount the user meant to type.
func TestTypingRoundTrip(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"1", "1"},
		{"150", "150"},
		{"1234", "1234"},
		{"12,5", "12.5"},
		{"1234,56", "1234.56"},
		{"0,99", "0.99"},
		{"200,00", "200"},
		{"1000000,01", "1000000.01"},
	}
	for _, c := range cases {
		field := ""
		for _, key := range c.keys {
			field = FormatInput(field+string(key), false)
		}
		field = FormatInput(field, true)
		got := Parse(field)
		assert.True(t, got.Equal(dec(c.want)), "typed %q -> %q -> %s, want %s", c.keys, field, got, c.want)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "R$ 0,00", Format(decimal.Zero))
	assert.Equal(t, "R$ 1.234,50", Format(dec("1234.5")))
	assert.Equal(t, "R$ 12,00", Format(dec("12")))
	assert.Equal(t, "-R$ 3,00", Format(dec("-3")))
	assert.Equal(t, "R$ 1.000.000,10", Format(dec("1000000.1")))
}

func TestAmountUnmarshal(t *testing.T) {
	var payload struct {
		Valor Amount `json:"valor"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"valor": 12.5}`), &payload))
	assert.True(t, payload.Valor.Equal(dec("12.5")))

	require.NoError(t, json.Unmarshal([]byte(`{"valor": "R$ 1.234,50"}`), &payload))
	assert.True(t, payload.Valor.Equal(dec("1234.5")))

	require.NoError(t, json.Unmarshal([]byte(`{"valor": "lixo"}`), &payload))
	assert.True(t, payload.Valor.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"valor": null}`), &payload))
	assert.True(t, payload.Valor.IsZero())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Equal(t, `{"valor":0.00}`, string(out))
}
