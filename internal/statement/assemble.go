package statement

import (
	"regexp"
	"strings"
)

// dateStart matches lines that begin a new transaction record: a day/month
// pair like "11/01", "3-4", optionally followed by a 2-4 digit year.
var dateStart = regexp.MustCompile(`^\s*\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`)

// Assemble merges wrapped physical lines into one logical record per
// transaction. A line matching the date-start grammar opens a record; every
// following non-date line is appended to it with a single joining space.
// Blank lines are skipped, and continuation lines seen before any date line
// are dropped. Every returned record starts with a date token and none is
// empty.
func Assemble(lines []string) []string {
	var records []string
	current := ""

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if dateStart.MatchString(line) {
			if current != "" {
				records = append(records, current)
			}
			current = line
			continue
		}

		if current != "" {
			current = current + " " + line
		}
	}

	if current != "" {
		records = append(records, current)
	}

	return records
}
