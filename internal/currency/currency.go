// Package currency formats Brazilian real amounts the way the catalog forms display them.
//
// Price inputs are digit-driven: every non-digit is dropped and the last two digits are
// the cents, so typing "1990" renders "R$ 19,90".
package currency

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	symbol = "R$"

	// maxDigits keeps the cent count inside the range float64 represents exactly.
	maxDigits = 15
)

var locale = language.BrazilianPortuguese

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Fits reports whether the digits of s fit the supported amount range.
func Fits(s string) bool {
	return len(strings.TrimLeft(Digits(s), "0")) <= maxDigits
}

// Cents interprets the digits of s as an amount in cents. Input without digits is 0.
// Digits beyond the supported length are ignored; check Fits first.
func Cents(s string) int64 {
	d := strings.TrimLeft(Digits(s), "0")
	if d == "" {
		return 0
	}
	if len(d) > maxDigits {
		d = d[:maxDigits]
	}
	n, err := strconv.ParseInt(d, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatDigits re-renders raw price input as a currency string. Input with no digits
// renders as the empty string so a cleared field stays empty.
func FormatDigits(raw string) string {
	if Digits(raw) == "" {
		return ""
	}
	return FormatCents(Cents(raw))
}

// FormatCents renders an amount in cents, e.g. 123456 -> "R$ 1.234,56".
func FormatCents(cents int64) string {
	return Format(float64(cents) / 100)
}

// Format renders a price with two decimals in the pt-BR locale.
func Format(amount float64) string {
	p := message.NewPrinter(locale)
	return symbol + " " + p.Sprintf("%.2f", amount)
}

// Parse converts a formatted (or raw digit) price back to its numeric value.
func Parse(formatted string) float64 {
	return float64(Cents(formatted)) / 100
}

// ToCents rounds a price to whole cents.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
