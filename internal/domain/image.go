package domain

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ImageName converts a champion display name to the Data Dragon asset name:
// the first apostrophe is dropped and the character after it lower-cased,
// so "Kai'Sa" becomes "Kaisa".
func ImageName(name string) string {
	idx := strings.IndexByte(name, '\'')
	if idx < 0 {
		return name
	}
	rest := name[idx+1:]
	r, size := utf8.DecodeRuneInString(rest)
	if size == 0 {
		return name[:idx]
	}
	return name[:idx] + string(unicode.ToLower(r)) + rest[size:]
}

// TokensOutOfMax renders the mastery token progress shown next to a champion.
func TokensOutOfMax(level, tokens int) string {
	switch level {
	case 6:
		return strconv.Itoa(tokens) + "/3"
	case 5:
		return strconv.Itoa(tokens) + "/2"
	default:
		return "N/A"
	}
}
