// Package parser turns free-form chat sentences into structured intents.
// It is the sole entry point for interpreting user text: classification,
// entity extraction and normalization compose into Parser.Parse, which
// never fails — malformed sentences degrade to an unrecognized intent.
package parser

import "github.com/shopspring/decimal"

// IntentKind identifies what the user wants done.
type IntentKind string

const (
	IntentRecordExpense IntentKind = "record_expense"
	IntentRecordIncome  IntentKind = "record_income"
	IntentQuerySummary  IntentKind = "query_summary"
	IntentQueryHistory  IntentKind = "query_history"
	IntentUnrecognized  IntentKind = "unrecognized"
)

// ParsedIntent is the structured interpretation of one sentence. A
// record_* intent always carries a positive Amount and a non-empty
// normalized Category; incomplete matches are demoted to unrecognized
// before they ever reach a caller. Category is empty on a query_summary
// that asks for all categories.
type ParsedIntent struct {
	Kind     IntentKind      `json:"kind"`
	Amount   decimal.Decimal `json:"amount,omitempty"`
	Category string          `json:"category,omitempty"`
	Note     string          `json:"note,omitempty"`
}
