// Package format renders and parses currency amounts the way the receipt
// screens show them.
package format

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iwvelando/mediation-calc/pkg/constants"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Tag resolves a BCP 47 locale. Unparsable input falls back to Turkish.
func Tag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Turkish
	}
	return tag
}

// Lira returns an amount in locale's number format followed by the lira sign
// (e.g., "-1.234,56 ₺").
func Lira(amount decimal.Decimal, locale string) string {
	return Number(amount, locale) + " " + constants.CurrencySymbol
}

// Number returns amount rounded to two decimals and grouped the way locale
// writes numbers.
func Number(amount decimal.Decimal, locale string) string {
	p := message.NewPrinter(Tag(locale))
	return p.Sprintf("%.2f", amount.Round(constants.CurrencyPlaces).InexactFloat64())
}

type marks struct {
	group   string
	decimal string
}

// marksFor reads the grouping and decimal marks off a number printed for tag.
// Space-like group marks are dropped since input whitespace is ignored.
func marksFor(tag language.Tag) marks {
	runes := []rune(message.NewPrinter(tag).Sprintf("%.1f", 1234567.5))
	m := marks{decimal: "."}
	for i := len(runes) - 1; i >= 0; i-- {
		if !unicode.IsDigit(runes[i]) {
			m.decimal = string(runes[i])
			runes = runes[:i]
			break
		}
	}
	for _, r := range runes {
		if !unicode.IsDigit(r) {
			if !unicode.IsSpace(r) {
				m.group = string(r)
			}
			break
		}
	}
	return m
}

// ParseAmount reads a fee typed by a user in locale's number format, e.g.
// "1.000,50" for tr and "1,000.50" for en. Ungrouped input with a dot
// decimal ("1000.50") is accepted in every locale. Input whose marks do not
// fit the locale is rejected rather than guessed at. The currency sign and
// whitespace are ignored.
func ParseAmount(text, locale string) (decimal.Decimal, error) {
	m := marksFor(Tag(locale))

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimSuffix(cleaned, constants.CurrencySymbol)
	cleaned = strings.TrimPrefix(cleaned, constants.CurrencySymbol)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	sign := ""
	if strings.HasPrefix(cleaned, "-") {
		sign, cleaned = "-", cleaned[1:]
	}

	var normalized string
	intPart, fracPart, hasDecimal := strings.Cut(cleaned, m.decimal)
	if hasDecimal {
		if strings.Contains(fracPart, m.decimal) || (m.group != "" && strings.Contains(fracPart, m.group)) {
			return decimal.Zero, fmt.Errorf("invalid amount %q: separators do not match locale %q", text, locale)
		}
		digits, ok := ungroup(intPart, m.group)
		if !ok {
			return decimal.Zero, fmt.Errorf("invalid amount %q: bad digit grouping for locale %q", text, locale)
		}
		normalized = digits + "." + fracPart
	} else if digits, ok := ungroup(intPart, m.group); ok {
		normalized = digits
	} else {
		normalized = cleaned
	}

	amount, err := decimal.NewFromString(sign + normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", text, err)
	}
	return amount, nil
}

// ungroup strips group marks from s when every group after the first has
// exactly three digits.
func ungroup(s, group string) (string, bool) {
	if group == "" || !strings.Contains(s, group) {
		return s, true
	}
	groups := strings.Split(s, group)
	if groups[0] == "" || len(groups[0]) > 3 {
		return "", false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return "", false
		}
	}
	return strings.Join(groups, ""), true
}
