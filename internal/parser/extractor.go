package parser

import (
	"regexp"
	"strings"

	apperrors "monevo/internal/errors"
)

// RawEntities holds un-normalized slot values pulled out of a sentence.
type RawEntities struct {
	Amount   string
	Category string
	Note     string
}

// Movement grammar: <verb> <amount> <connector> <category> [por <note>].
// The amount is the first numeric token after the verb and must end on a
// digit, so a comma used as sentence punctuation ("gasté 100, de moto") is
// not swallowed into it. The category runs from the connector to "por" or
// end of sentence, the note is everything after the first "por".
var (
	expensePattern = regexp.MustCompile(`(?i)(?:gast[ée]|saqu[ée]|gasto\s+de)\s+([0-9](?:[0-9.,]*[0-9])?)[.,]?\s+de\s+(.+?)(?:\s+por\s+(.+))?\s*$`)
	incomePattern  = regexp.MustCompile(`(?i)(?:añad[íi]|agregu[ée]|sum[ée]|ingreso\s+de)\s+([0-9](?:[0-9.,]*[0-9])?)[.,]?\s+a\s+(.+?)(?:\s+por\s+(.+))?\s*$`)
	summaryPattern = regexp.MustCompile(`(?i)(?:/resumen|\bver(?:\s+presupuesto)?)\s*(.*?)\s*$`)
	historyPattern = regexp.MustCompile(`(?i)/historial\s*(.*?)\s*$`)
)

// Extract locates the slots the grammar for kind requires and returns them
// un-normalized. It fails with NoEntityFound when a required slot cannot be
// located. Extraction is total and deterministic: sentences with repeated
// or conflicting slots either yield the first well-formed match or fail.
func Extract(text string, kind IntentKind) (RawEntities, error) {
	t := strings.TrimSpace(text)

	switch kind {
	case IntentRecordExpense:
		return matchMovement(expensePattern, t)
	case IntentRecordIncome:
		return matchMovement(incomePattern, t)
	case IntentQuerySummary:
		m := summaryPattern.FindStringSubmatch(t)
		if m == nil {
			return RawEntities{}, apperrors.ErrNoEntityFound
		}
		// Empty category means a summary of all categories.
		return RawEntities{Category: m[1]}, nil
	case IntentQueryHistory:
		m := historyPattern.FindStringSubmatch(t)
		if m == nil || m[1] == "" {
			return RawEntities{}, apperrors.ErrNoEntityFound
		}
		return RawEntities{Category: m[1]}, nil
	}
	return RawEntities{}, apperrors.ErrNoEntityFound
}

func matchMovement(pattern *regexp.Regexp, text string) (RawEntities, error) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return RawEntities{}, apperrors.ErrNoEntityFound
	}
	return RawEntities{Amount: m[1], Category: m[2], Note: m[3]}, nil
}
