// Package charset turns raw bytes of unknown encoding into canonical
// UTF-8 text. Detection never fails outright: every stage that cannot
// produce a confident answer falls through to the next, ending at a
// single-byte superset encoding that can decode any byte sequence, and
// the result carries a confidence indicator instead of an error.
package charset

import (
	"bytes"
	"strings"
	"unicode/utf8"

	xcharset "golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Confidence reports how the resolved encoding was chosen.
type Confidence int

const (
	// Fallback means the last-resort encoding was used; the text is a
	// best-effort rendition.
	Fallback Confidence = iota
	// Tentative means a hint or heuristic chose the encoding and decoding
	// looked clean.
	Tentative
	// Certain means a byte-order mark or a trusted override identified
	// the encoding.
	Certain
)

// String returns the string representation of the Confidence.
func (c Confidence) String() string {
	switch c {
	case Certain:
		return "certain"
	case Tentative:
		return "tentative"
	default:
		return "fallback"
	}
}

// Hints carries caller-supplied encoding knowledge into detection.
type Hints struct {
	// Overrides are encoding labels to try, in order, before any
	// in-document hint. An override that decodes cleanly is trusted.
	Overrides []string

	// Declared is a transport-level declared encoding label (for example
	// from a Content-Type header), tried after the overrides.
	Declared string

	// KeepDeclaredHint opts out of rewriting a disagreeing in-document
	// charset hint in the decoded text.
	KeepDeclaredHint bool
}

// Result is the outcome of detection. Detection always produces usable
// text; callers decide whether a low confidence is acceptable.
type Result struct {
	// Text is the decoded canonical text.
	Text string
	// Encoding is the canonical label of the resolved encoding.
	Encoding string
	// Confidence reports how the encoding was chosen.
	Confidence Confidence
	// HintRewritten reports whether a disagreeing in-document charset
	// hint was rewritten to the resolved label.
	HintRewritten bool
}

// Detect resolves the most likely encoding of data and decodes it to
// canonical text. The stages, each tried only when the previous yields no
// confident answer: byte-order mark, override labels, the in-document
// declared hint, heuristic guessing, and finally windows-1252, which
// cannot fail.
func Detect(data []byte, hints Hints) Result {
	if enc, name, rest := sniffBOM(data); enc != nil {
		text, _ := decodeWith(rest, enc)
		return finish(text, name, Certain, data, hints)
	}

	labels := append([]string{}, hints.Overrides...)
	if hints.Declared != "" {
		labels = append(labels, hints.Declared)
	}
	for _, label := range labels {
		enc, name := lookupLabel(label)
		if enc == nil {
			continue
		}
		if text, clean := decodeWith(data, enc); clean {
			return finish(text, name, Certain, data, hints)
		}
	}

	if label := DeclaredEncoding(data); label != "" {
		enc, name := lookupLabel(label)
		if enc != nil {
			if text, clean := decodeWith(data, enc); clean {
				return finish(text, name, Tentative, data, hints)
			}
		}
	}

	if utf8.Valid(data) {
		return finish(string(data), "utf-8", Tentative, data, hints)
	}
	if enc, name, certain := xcharset.DetermineEncoding(data, ""); enc != nil && name != "windows-1252" {
		if text, clean := decodeWith(data, enc); clean {
			conf := Tentative
			if certain {
				conf = Certain
			}
			return finish(text, name, conf, data, hints)
		}
	}

	text, _ := decodeWith(data, charmap.Windows1252)
	return finish(text, "windows-1252", Fallback, data, hints)
}

func finish(text, name string, conf Confidence, data []byte, hints Hints) Result {
	res := Result{Text: text, Encoding: name, Confidence: conf}
	if hints.KeepDeclaredHint {
		return res
	}
	declared := DeclaredEncoding(data)
	if declared == "" || strings.EqualFold(declared, name) {
		return res
	}
	if _, canonical := lookupLabel(declared); canonical == name {
		return res
	}
	if rewritten, ok := rewriteHint(text, declared, name); ok {
		res.Text = rewritten
		res.HintRewritten = true
	}
	return res
}

// rewriteHint replaces the declared label at the position the prescan
// finds it in the decoded text, keeping the document internally
// consistent with the encoding it now actually has. A mention of the
// label elsewhere in the text is never touched.
func rewriteHint(text, declared, resolved string) (string, bool) {
	label, off := declaredEncoding([]byte(text))
	if off < 0 || !strings.EqualFold(label, declared) {
		return text, false
	}
	return text[:off] + resolved + text[off+len(label):], true
}

// sniffBOM checks for the standard Unicode byte-order marks. It returns
// the encoding, its canonical name, and the payload with the mark
// stripped, or a nil encoding when no mark is present.
func sniffBOM(data []byte) (encoding.Encoding, string, []byte) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8, "utf-8", data[3:]
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), "utf-16be", data[2:]
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), "utf-16le", data[2:]
	}
	return nil, "", data
}

// lookupLabel resolves an encoding label to an encoding and its canonical
// name. Unknown labels return a nil encoding.
func lookupLabel(label string) (encoding.Encoding, string) {
	enc, err := htmlindex.Get(strings.TrimSpace(strings.ToLower(label)))
	if err != nil {
		return nil, ""
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return enc, strings.ToLower(label)
	}
	return enc, name
}

// decodeWith decodes data with enc. clean reports that decoding produced
// no replacement characters, which is how a candidate encoding earns
// trust.
func decodeWith(data []byte, enc encoding.Encoding) (string, bool) {
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data), false
	}
	text := string(out)
	return text, !strings.ContainsRune(text, utf8.RuneError)
}
