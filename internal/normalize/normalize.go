// Package normalize canonicalizes free-text fragments (category names,
// periodicity words, amount strings) into domain values. All functions are
// pure and deterministic.
package normalize

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperrors "monevo/internal/errors"
	"monevo/internal/models"
)

// foldAccents decomposes characters and drops combining marks, so that
// "inversión" and "inversion" normalize to the same category.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// periodicities maps the closed set of accepted periodicity tokens
// (already category-normalized) to their canonical value.
var periodicities = map[string]models.Periodicity{
	"diario":  models.PeriodicityDaily,
	"diaria":  models.PeriodicityDaily,
	"daily":   models.PeriodicityDaily,
	"semanal": models.PeriodicityWeekly,
	"weekly":  models.PeriodicityWeekly,
	"mensual": models.PeriodicityMonthly,
	"monthly": models.PeriodicityMonthly,
	"anual":   models.PeriodicityYearly,
	"yearly":  models.PeriodicityYearly,
}

// Category canonicalizes a raw category name: lowercase, accents folded,
// punctuation stripped, internal whitespace collapsed to single spaces.
// Two inputs that normalize identically name the same category. Returns
// the empty string when nothing usable remains.
func Category(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// ParsePeriodicity maps a periodicity synonym ("mensual", "weekly", ...)
// to its canonical value, case- and accent-insensitively.
func ParsePeriodicity(raw string) (models.Periodicity, error) {
	p, ok := periodicities[Category(raw)]
	if !ok {
		return "", apperrors.WithMessage(apperrors.ErrInvalidPeriodicity,
			"Unknown periodicity '"+strings.TrimSpace(raw)+"'; use daily, weekly, monthly or yearly")
	}
	return p, nil
}

// ParseAmount parses a strictly positive decimal amount. It accepts plain
// digit runs, thousands separators ("15.000", "1,234,567") and a decimal
// fraction with either comma or dot ("10,50", "1.234,56", "1,234.56").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	}) != -1 {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	dot := strings.LastIndexByte(s, '.')
	comma := strings.LastIndexByte(s, ',')
	var ok bool
	switch {
	case dot != -1 && comma != -1:
		// Both present: the later one is the decimal separator.
		if dot > comma {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		}
		ok = strings.Count(s, ".") <= 1
	case comma != -1:
		s, ok = resolveSeparator(s, ',')
	case dot != -1:
		s, ok = resolveSeparator(s, '.')
	default:
		ok = true
	}
	if !ok {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	return d, nil
}

// resolveSeparator disambiguates a lone separator kind: a single separator
// followed by anything but a 3-digit group is a decimal fraction; otherwise
// every group after the first must be a thousands group of exactly 3 digits.
func resolveSeparator(s string, sep byte) (string, bool) {
	parts := strings.Split(s, string(sep))
	for _, p := range parts {
		if p == "" {
			return "", false
		}
	}
	if len(parts) == 2 && len(parts[1]) != 3 {
		return parts[0] + "." + parts[1], true
	}
	if len(parts[0]) > 3 {
		return "", false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return "", false
		}
	}
	return strings.Join(parts, ""), true
}
