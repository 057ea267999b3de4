// Package statement recovers structured transaction records from the
// ragged, line-wrapped text of an OCR'd credit-card statement.
package statement

import "strings"

// sectionHeader marks the start of the charges section. The header line
// itself is not part of the section.
const sectionHeader = "New Charges Details"

// sectionTerminators end the charges section: the first line whose trimmed
// text starts with one of these prefixes, and everything after it, is
// excluded.
var sectionTerminators = []string{"Fees", "Interest", "About "}

// ChargesSection trims the full raw text of a statement down to the lines
// of the charges section, preserving their order and content verbatim.
// A document without the section header yields no lines; that is not an
// error, just an empty statement.
func ChargesSection(text string) []string {
	var filtered []string
	inSection := false

	for _, line := range strings.Split(text, "\n") {
		if !inSection {
			if strings.Contains(line, sectionHeader) {
				inSection = true
			}
			continue
		}
		if startsWithTerminator(strings.TrimSpace(line)) {
			break
		}
		filtered = append(filtered, line)
	}

	return filtered
}

func startsWithTerminator(trimmed string) bool {
	for _, t := range sectionTerminators {
		if strings.HasPrefix(trimmed, t) {
			return true
		}
	}
	return false
}
