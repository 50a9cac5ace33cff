package intake

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	enUS = message.NewPrinter(language.AmericanEnglish)

	nonDigits    = regexp.MustCompile(`[^\d]`)
	plainDecimal = regexp.MustCompile(`^\+?\d*\.?\d*$`)
)

// float64 overflows past 10^309 and underflows to zero below 10^-324.
const (
	maxMagnitude = 309
	minMagnitude = -324
)

// FormatNumeric renders a numeric display string with en-US thousands
// grouping. Separators and stray characters are dropped, fractional digits
// are kept as typed.
func FormatNumeric(raw string) string {
	withoutCommas := strings.ReplaceAll(raw, ",", "")
	if strings.TrimSpace(withoutCommas) == "" {
		return ""
	}

	parts := strings.Split(withoutCommas, ".")
	integerPart := nonDigits.ReplaceAllString(parts[0], "")
	fractionalPart := ""
	if len(parts) > 1 {
		fractionalPart = nonDigits.ReplaceAllString(parts[1], "")
	}

	if integerPart == "" {
		if fractionalPart != "" {
			return "0." + fractionalPart
		}
		return ""
	}

	formatted := groupDigits(integerPart)
	if fractionalPart == "" {
		return formatted
	}
	return formatted + "." + fractionalPart
}

func groupDigits(digits string) string {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return "0"
	}
	if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return enUS.Sprintf("%d", n)
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// SanitizeOnChange drops every minus sign from a numeric field as it is typed.
func SanitizeOnChange(raw string) string {
	return strings.ReplaceAll(raw, "-", "")
}

// NormalizeOnBlur re-renders a numeric field when it loses focus. Empty
// input becomes "", unparsable input is returned unchanged so validation can
// flag it, anything else is clamped to zero or more and grouped.
func NormalizeOnBlur(raw string) string {
	text := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if text == "" {
		return ""
	}

	d, ok := parseFinite(text)
	if !ok {
		return raw
	}
	if d.IsNegative() {
		return FormatNumeric("0")
	}
	if plainDecimal.MatchString(text) {
		return FormatNumeric(strings.TrimPrefix(text, "+"))
	}
	return FormatNumeric(d.String())
}

// ParseNumber reads a display string as a number. Blank or non-finite
// input yields nil.
func ParseNumber(value string) *float64 {
	d, ok := parseNumberText(value)
	if !ok {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}

func parseNumberText(value string) (decimal.Decimal, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if text == "" {
		return decimal.Decimal{}, false
	}
	return parseFinite(text)
}

func parseFinite(text string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}

	magnitude := int(d.Exponent()) + len(d.Coefficient().String())
	if d.IsNegative() {
		magnitude--
	}
	if magnitude > maxMagnitude {
		return decimal.Decimal{}, false
	}
	if magnitude < minMagnitude {
		return decimal.Zero, true
	}
	return d, true
}
