package statement

import (
	"regexp"
	"strings"
)

// txnPattern is the transaction grammar: a strict MM/DD/YY date, a
// non-greedy middle description, and a trailing amount with an optional
// minus and dollar sign and exactly two fraction digits. Records that do
// not match are OCR noise (page footers, totals, wrapped junk) and are
// dropped; the strictness is the primary noise filter, so a 4-digit year or
// a one-decimal amount never parses.
var txnPattern = regexp.MustCompile(`^\s*(\d{2}/\d{2}/\d{2})\s+(.+?)\s+(-?\$?\d+\.\d{2})\s*$`)

// ParsedTransaction is one transaction as it appears on the statement.
// Amount keeps its sign but never the dollar sign, always with two fraction
// digits.
type ParsedTransaction struct {
	Date        string
	Description string
	Amount      string
}

// Parse extracts the (date, description, amount) fields from each logical
// record. Records that do not match the grammar are silently skipped; that
// is the normal, high-frequency outcome for noise, not an error.
func Parse(records []string) []ParsedTransaction {
	var txns []ParsedTransaction

	for _, rec := range records {
		m := txnPattern.FindStringSubmatch(rec)
		if m == nil {
			continue
		}

		txns = append(txns, ParsedTransaction{
			Date:        m[1],
			Description: strings.TrimSpace(m[2]),
			Amount:      strings.ReplaceAll(m[3], "$", ""),
		})
	}

	return txns
}
