// Package merchant derives a short, human-readable merchant name from the
// raw transaction description on a statement.
//
// Normalization is an ordered list of named rules. Order matters: phone
// numbers must go before location suffixes (an area code looks like a store
// number), and state codes before corporate suffixes. The table is
// deliberately extensible; it is a heuristic tuned to sampled statements,
// not a guarantee.
package merchant

import (
	"regexp"
	"strings"
	"unicode"
)

// cardPrefixes are payment-processor and card-type markers that lead the
// description. At most one is stripped, and only as a true prefix of the
// upper-cased text.
var cardPrefixes = []string{
	"APLPAY ", "APPLEPAY ", "APPLE PAY ",
	"POS ", "POS PURCHASE ", "PURCHASE ",
	"DEBIT CARD ", "CHECK CARD ", "CHECKCARD ",
	"VISA ", "MASTERCARD ", "AMEX ", "DISCOVER ",
}

// corporateSuffixes are trailing business designators. Exactly one is
// stripped if the text ends with it after the location rules have run.
var corporateSuffixes = []string{
	" USA", " INC", " LLC", " LTD", " CORP", " CO",
	" B TO C", " CLOTHING", " AUTO SERVICE", " GIFT CARD",
	" FAMILY CLOTHING", " MARKET", " GROCERY",
}

var (
	phoneTollFree   = regexp.MustCompile(`\s*1-\d{3}-\d{3}-\d{4}`)
	phoneParenArea  = regexp.MustCompile(`\s*\(\d{3}\)\d{3}-\d{4}`)
	phoneDashed     = regexp.MustCompile(`\s*\d{3}-\d{3}-\d{4}`)
	phoneBareDigits = regexp.MustCompile(`\s*\+?\d{10,}`)
	phoneArtifact   = regexp.MustCompile(`\s+\d-$`)

	storeNumber    = regexp.MustCompile(`\s*#\d+.*$`)
	longNumberTail = regexp.MustCompile(`\s+\d{4,}.*$`)
	streetNumber   = regexp.MustCompile(`\s+ST\s+\d+.*$`)
	mobToken       = regexp.MustCompile(`\s+MOB\s*$`)

	stateCode     = regexp.MustCompile(`\s+[A-Z]{2}\s*\d*\s*$`)
	stateWithCity = regexp.MustCompile(`\s+[A-Z]{2}\s+[A-Z\s]+$`)
)

// rule is one normalization step: a name for tests and an apply transform.
type rule struct {
	name  string
	apply func(string) string
}

var rules = []rule{
	{"uppercase", strings.ToUpper},
	{"card prefix", stripCardPrefix},
	{"phone toll-free", dropAll(phoneTollFree)},
	{"phone paren area", dropAll(phoneParenArea)},
	{"phone dashed", dropAll(phoneDashed)},
	{"phone bare digits", dropAll(phoneBareDigits)},
	{"phone artifact", dropAll(phoneArtifact)},
	{"store number", dropAll(storeNumber)},
	{"long number tail", dropAll(longNumberTail)},
	{"street number", dropAll(streetNumber)},
	{"mob token", dropAll(mobToken)},
	{"state code", dropAll(stateCode)},
	{"state with city", dropAll(stateWithCity)},
	{"corporate suffix", stripCorporateSuffix},
	{"tidy", tidy},
}

// Clean returns the normalized merchant name for a raw description.
// It is pure and total: any string in, a string out, possibly empty when
// the input was entirely processor/location noise.
func Clean(description string) string {
	text := description
	for _, r := range rules {
		text = r.apply(text)
	}
	return text
}

func dropAll(re *regexp.Regexp) func(string) string {
	return func(s string) string { return re.ReplaceAllString(s, "") }
}

func stripCardPrefix(s string) string {
	for _, prefix := range cardPrefixes {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	return s
}

func stripCorporateSuffix(s string) string {
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(s, suffix) {
			return s[:len(s)-len(suffix)]
		}
	}
	return s
}

// tidy collapses whitespace runs, trims, and title-cases. A word boundary
// is any non-letter, so "NETFLIX.COM" becomes "Netflix.Com".
func tidy(s string) string {
	s = strings.Join(strings.Fields(s), " ")

	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
