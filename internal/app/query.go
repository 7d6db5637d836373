package app

import (
	"strings"
	"unicode"
)

// queryIsSearchable rejects queries that would match nearly every file:
// at least 3 ASCII or 2 non-ASCII characters, ignoring spaces.
func queryIsSearchable(q string) bool {
	var ascii, other int
	for _, r := range strings.TrimSpace(q) {
		if unicode.IsSpace(r) {
			continue
		}
		if r <= 0x7f {
			ascii++
		} else {
			other++
		}
	}
	return ascii >= 3 || other >= 2
}
