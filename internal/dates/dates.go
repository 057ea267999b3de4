// Package dates canonicalizes the date formats seen on credit-card
// statements to ISO YYYY-MM-DD.
package dates

import (
	"strings"
	"time"
)

// layouts accepted by Normalize, tried in order. The non-padded forms
// match both "11/01/25" and "1/2/25".
var layouts = []string{
	"2006-1-2",
	"1/2/06",
	"1/2/2006",
	"1-2-06",
	"1-2-2006",
}

// Normalize converts a statement date string to YYYY-MM-DD.
// Unrecognized input is returned as-is rather than failing the record.
func Normalize(dateStr string) string {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return s
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
