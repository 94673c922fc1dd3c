package rawlex

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// decodeNumericRefs resolves numeric character references in s. Named
// references are left literal. A reference decoding outside the valid
// code point range becomes U+FFFD; an incomplete reference at end of
// input stays literal.
func decodeNumericRefs(s string) string {
	i := strings.Index(s, "&#")
	if i < 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i >= 0 {
		sb.WriteString(s[:i])
		s = s[i:]
		r, consumed := decodeOneRef(s)
		if consumed == 0 {
			// incomplete reference: leave "&#" literal and keep scanning
			sb.WriteString("&#")
			s = s[2:]
		} else {
			sb.WriteRune(r)
			s = s[consumed:]
		}
		i = strings.Index(s, "&#")
	}
	sb.WriteString(s)
	return sb.String()
}

// decodeOneRef decodes the reference at the start of s (which begins with
// "&#"). It returns the decoded rune and how many bytes the reference
// occupied, or consumed == 0 when the reference is incomplete at end of
// input or has no digits.
func decodeOneRef(s string) (rune, int) {
	p := 2
	base := 10
	if p < len(s) && (s[p] == 'x' || s[p] == 'X') {
		base = 16
		p++
	}
	digits := p
	for p < len(s) && isDigitIn(s[p], base) {
		p++
	}
	if p == digits {
		// "&#" or "&#x" with nothing to decode
		return 0, 0
	}
	if p >= len(s) {
		// digits ran to end of input with no terminator
		return 0, 0
	}
	cp, err := strconv.ParseInt(s[digits:p], base, 64)
	if s[p] == ';' {
		p++
	}
	if err != nil || cp <= 0 || cp > int64(unicode.MaxRune) ||
		(cp >= 0xD800 && cp <= 0xDFFF) {
		return utf8.RuneError, p
	}
	return rune(cp), p
}

func isDigitIn(c byte, base int) bool {
	if c >= '0' && c <= '9' {
		return true
	}
	if base == 16 {
		return c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	}
	return false
}
