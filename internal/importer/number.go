package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NumberFormat describes how amounts are written in import files.
type NumberFormat struct {
	CurrencySymbol   string `yaml:"currency_symbol"`
	GroupSeparator   string `yaml:"group_separator"`
	DecimalSeparator string `yaml:"decimal_separator"`
}

// USNumberFormat is "$1,234.50".
func USNumberFormat() NumberFormat {
	return NumberFormat{
		CurrencySymbol:   "$",
		GroupSeparator:   ",",
		DecimalSeparator: ".",
	}
}

var errEmptyAmount = errors.New("empty amount")

// ParseAmount parses currency-style text such as "$1,234.50", "-$3",
// "(12.00)" or "7.5 $" into an exact decimal. The scale of the written
// fraction is kept, so "1,234.50" yields 1234.50 rather than 1234.5.
func (f NumberFormat) ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, errEmptyAmount
	}

	negative := false
	parens := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	if parens {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	var signs, symbols int
	strip := func(cut func(s, affix string) (string, bool)) {
		for s != "" {
			if rest, ok := cut(s, "-"); ok {
				negative = !negative
				signs++
				s = strings.TrimSpace(rest)
				continue
			}
			if rest, ok := cut(s, "+"); ok {
				signs++
				s = strings.TrimSpace(rest)
				continue
			}
			if f.CurrencySymbol != "" {
				if rest, ok := cut(s, f.CurrencySymbol); ok {
					symbols++
					s = strings.TrimSpace(rest)
					continue
				}
			}
			return
		}
	}
	strip(strings.CutPrefix)
	strip(strings.CutSuffix)
	if signs > 1 || symbols > 1 || (parens && signs > 0) {
		return decimal.Zero, fmt.Errorf("malformed amount %q", text)
	}

	digits, err := f.normalize(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed amount %q: %w", text, err)
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", text, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// normalize turns "1,234.50" into "1234.50".
func (f NumberFormat) normalize(s string) (string, error) {
	sep := f.DecimalSeparator
	if sep == "" {
		sep = "."
	}
	intPart, fracPart, hasFrac := strings.Cut(s, sep)

	if f.GroupSeparator != "" {
		// Group separators are not position-checked beyond the first
		// character, so "1,,2" reads as 12, matching lenient thousands parsing.
		if strings.HasPrefix(intPart, f.GroupSeparator) {
			return "", errors.New("leading group separator")
		}
		intPart = strings.ReplaceAll(intPart, f.GroupSeparator, "")
	}

	if !allDigits(intPart) || !allDigits(fracPart) {
		return "", errors.New("unexpected character")
	}
	if intPart == "" && fracPart == "" {
		return "", errors.New("no digits")
	}

	if intPart == "" {
		intPart = "0"
	}
	if !hasFrac || fracPart == "" {
		return intPart, nil
	}
	return intPart + "." + fracPart, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
