// Package dedupe computes the stable identity key used to deduplicate
// transactions across statement re-imports.
package dedupe

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/shraddhagadale/SpendSense/internal/dates"
)

// Hash returns a 64-character lowercase hex digest of the canonicalized
// (date, amount, description) triple.
//
// Canonical form: date as YYYY-MM-DD, amount as the absolute value with two
// fraction digits, description lower-cased and trimmed. The fields are
// joined with "|" and hashed with SHA-256. The sign of amount never affects
// the result; internal whitespace and casing differences in the description
// do.
func Hash(postedDate string, amount float64, description string) string {
	dateStr := dates.Normalize(postedDate)
	amountStr := fmt.Sprintf("%.2f", math.Abs(amount))
	descStr := strings.ToLower(strings.TrimSpace(description))

	raw := dateStr + "|" + amountStr + "|" + descStr
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
