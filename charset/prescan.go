package charset

import "bytes"

// prescanWindow bounds how far the byte scan looks for a declared
// encoding hint. Real documents declare their charset near the top.
const prescanWindow = 1024

// DeclaredEncoding extracts an in-document declared-encoding hint with a
// cheap byte-level scan: a meta charset marker or an XML declaration's
// encoding attribute. It requires no parse and returns "" when no hint is
// found. ASCII-compatible source bytes are assumed, which holds for every
// encoding this hint mechanism is used with.
func DeclaredEncoding(data []byte) string {
	label, _ := declaredEncoding(data)
	return label
}

// declaredEncoding also reports the byte offset of the label within data,
// or -1 when no hint is found. The offset anchors the hint rewrite to the
// declaration itself, never to an unrelated mention of the label.
func declaredEncoding(data []byte) (string, int) {
	window := data
	if len(window) > prescanWindow {
		window = window[:prescanWindow]
	}
	lower := asciiLower(window)

	if label, off := scanAfter(lower, []byte("charset=")); label != "" {
		return label, off
	}
	if i := bytes.Index(lower, []byte("<?xml")); i >= 0 {
		if label, off := scanAfter(lower[i:], []byte("encoding=")); label != "" {
			return label, i + off
		}
	}
	return "", -1
}

// scanAfter finds key in data and returns the label that follows it and
// the label's offset, skipping an optional quote and stopping at the
// first delimiter.
func scanAfter(data, key []byte) (string, int) {
	i := bytes.Index(data, key)
	if i < 0 {
		return "", -1
	}
	p := i + len(key)
	if p < len(data) && (data[p] == '"' || data[p] == '\'') {
		p++
	}
	start := p
	for p < len(data) && isLabelChar(data[p]) {
		p++
	}
	return string(data[start:p]), start
}

// asciiLower lowercases A-Z byte for byte, leaving everything else
// untouched, so offsets into the result are valid in the source.
func asciiLower(data []byte) []byte {
	out := make([]byte, len(data))
	for i, c := range data {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return out
}

func isLabelChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == ':' || c == '.'
}
