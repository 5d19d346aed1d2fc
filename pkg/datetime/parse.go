// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/mediation-calc/pkg/constants"
)

const (
	// DateLayout is the day.month.year format accepted for start dates and
	// used for rendered deadlines.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate renders t as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns midnight of now's calendar day in now's location.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// NormalizeDateInput tidies free-form date entry before strict parsing.
// A run of exactly eight digits (DDMMYYYY, with or without separators)
// becomes DD.MM.YYYY. Any other text, blank included, is returned trimmed.
func NormalizeDateInput(input string) string {
	trimmed := strings.TrimSpace(input)

	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, trimmed)
	if len(digits) == 8 {
		return digits[:2] + "." + digits[2:4] + "." + digits[4:]
	}

	return trimmed
}
