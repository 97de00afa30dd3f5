package parser

import (
	"strings"
	"unicode"
)

// rule is one classification entry: a set of trigger phrases mapped to an
// intent kind. Rules are data, not code; adding a phrase variant is a table
// change and never touches extraction logic.
type rule struct {
	kind     IntentKind
	triggers []string
}

// classificationRules is ordered by priority: explicit commands, then
// expense verbs, then income verbs, then query phrases. When a sentence
// contains triggers from several rules, the trigger appearing earliest in
// the sentence wins; ties fall back to this order.
var classificationRules = []rule{
	{IntentQuerySummary, []string{"/resumen"}},
	{IntentQueryHistory, []string{"/historial"}},
	{IntentRecordExpense, []string{"gasté", "gaste", "saqué", "saque", "gasto de"}},
	{IntentRecordIncome, []string{"añadí", "añadi", "agregué", "agregue", "sumé", "sume", "ingreso de"}},
	{IntentQuerySummary, []string{"ver presupuesto", "ver"}},
}

// Classify scans the sentence against the rule table and returns the
// matching intent kind, or IntentUnrecognized when no trigger occurs.
func Classify(text string) IntentKind {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return IntentUnrecognized
	}

	best := IntentUnrecognized
	bestPos := -1
	for _, r := range classificationRules {
		pos := earliestTrigger(t, r.triggers)
		if pos == -1 {
			continue
		}
		if bestPos == -1 || pos < bestPos {
			best = r.kind
			bestPos = pos
		}
	}
	return best
}

// earliestTrigger returns the smallest index at which any of the triggers
// occurs on a word boundary, or -1 if none does.
func earliestTrigger(text string, triggers []string) int {
	best := -1
	for _, trig := range triggers {
		from := 0
		for {
			i := strings.Index(text[from:], trig)
			if i == -1 {
				break
			}
			pos := from + i
			if onWordBoundary(text, pos, len(trig)) {
				if best == -1 || pos < best {
					best = pos
				}
				break
			}
			from = pos + 1
		}
	}
	return best
}

// onWordBoundary reports whether text[pos:pos+n] is not embedded inside a
// longer word, so "ver" matches "ver moto" but not "llover" or "verano".
func onWordBoundary(text string, pos, n int) bool {
	before := []rune(text[:pos])
	if len(before) > 0 && unicode.IsLetter(before[len(before)-1]) {
		return false
	}
	after := []rune(text[pos+n:])
	if len(after) > 0 && unicode.IsLetter(after[0]) {
		return false
	}
	return true
}
