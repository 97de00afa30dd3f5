package parser

import (
	"strings"

	"monevo/internal/normalize"
)

// Parser composes classification, extraction and normalization into a
// single entry point. Parse never returns an error: every failure mode of
// the lower layers (no grammar match, missing slot, bad amount) is an
// expected outcome for chat input and degrades to an unrecognized intent.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse turns one raw sentence into a well-formed ParsedIntent.
func (p *Parser) Parse(text string) ParsedIntent {
	unrecognized := ParsedIntent{Kind: IntentUnrecognized}

	kind := Classify(text)
	if kind == IntentUnrecognized {
		return unrecognized
	}

	raw, err := Extract(text, kind)
	if err != nil {
		return unrecognized
	}

	intent := ParsedIntent{Kind: kind}
	switch kind {
	case IntentRecordExpense, IntentRecordIncome:
		amount, err := normalize.ParseAmount(raw.Amount)
		if err != nil {
			return unrecognized
		}
		category := normalize.Category(raw.Category)
		if category == "" {
			return unrecognized
		}
		intent.Amount = amount
		intent.Category = category
		intent.Note = strings.TrimSpace(raw.Note)
	case IntentQuerySummary:
		intent.Category = normalize.Category(raw.Category)
	case IntentQueryHistory:
		category := normalize.Category(raw.Category)
		if category == "" {
			return unrecognized
		}
		intent.Category = category
	}
	return intent
}
