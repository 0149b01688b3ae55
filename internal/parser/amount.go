package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount string has no numeric reading
var ErrInvalidAmount = errors.New("invalid amount")

var amountNoise = regexp.MustCompile(`[¥￥$\s,]`)

// NormalizeAmount converts a statement amount into a signed decimal.
//
// Currency glyphs, whitespace and thousands separators are stripped first.
// A CR marker negates the value and a DR marker is dropped, then a
// parenthesized value is negated. Empty input is zero. Unparseable input
// also yields zero, together with an error wrapping ErrInvalidAmount that
// callers treat as a warning.
func NormalizeAmount(raw string) (decimal.Decimal, error) {
	s := amountNoise.ReplaceAllString(raw, "")
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.Contains(s, "CR") {
		s = strings.ReplaceAll(s, "CR", "")
		negative = !negative
	}
	s = strings.ReplaceAll(s, "DR", "")

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 1 {
		s = s[1 : len(s)-1]
		negative = !negative
	}
	s = strings.TrimPrefix(s, "+")

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if negative {
		value = value.Neg()
	}
	return value, nil
}
