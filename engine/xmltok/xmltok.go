// Package xmltok is the strict, whitespace-preserving engine, built on
// encoding/xml. It never collapses whitespace, parses every element's
// content as markup, and cannot honor a selective-build filter, so builds
// that request one fall back to full construction.
package xmltok

import (
	"encoding/xml"
	"strings"

	"github.com/chrisuehlinger/ladle/engine"
)

// Engine tokenizes with an encoding/xml decoder in non-strict mode. The
// zero value is ready to use.
type Engine struct{}

// New returns the strict engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in diagnostics and errors.
func (e *Engine) Name() string {
	return "xmltok"
}

// Capabilities returns the engine's declared capability surface. The
// self-closing set reuses the decoder's HTML auto-close list, so a bare
// void tag still collapses to its self-closing form in the tree.
func (e *Engine) Capabilities() engine.Capabilities {
	selfClosing := make(map[string]bool, len(xml.HTMLAutoClose))
	for _, name := range xml.HTMLAutoClose {
		selfClosing[name] = true
	}
	return engine.Capabilities{
		SelfClosingTags:        selfClosing,
		PreserveWhitespaceTags: nil,
		StringContainers:       nil,
		SupportsSelectiveBuild: false,
		CollapsesWhitespace:    false,
		DecodesEntities:        true,
	}
}

// Tokenize scans text and delivers events to sink in document order.
// Input the decoder cannot recover from is truncated at the point of the
// error; truncation is this engine's repair rule, never an abort.
func (e *Engine) Tokenize(text string, sink engine.Sink) error {
	d := xml.NewDecoder(strings.NewReader(text))
	d.Strict = false
	d.Entity = xml.HTMLEntity
	for {
		tok, err := d.RawToken()
		if err != nil {
			// io.EOF ends the stream; anything else is unrecoverable
			// input, dropped from here on.
			return nil
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := sink.OpenTag(strings.ToLower(t.Name.Local), convertAttrs(t.Attr)); err != nil {
				return err
			}
		case xml.EndElement:
			if err := sink.CloseTag(strings.ToLower(t.Name.Local)); err != nil {
				return err
			}
		case xml.CharData:
			if err := sink.Text(string(t)); err != nil {
				return err
			}
		case xml.Comment:
			if err := sink.Comment(string(t)); err != nil {
				return err
			}
		case xml.ProcInst:
			content := "?" + t.Target + " " + string(t.Inst) + "?"
			if err := sink.Declaration(content); err != nil {
				return err
			}
		case xml.Directive:
			if err := sink.Declaration(string(t)); err != nil {
				return err
			}
		}
	}
}

func convertAttrs(attrs []xml.Attr) []engine.Attr {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]engine.Attr, len(attrs))
	for i, a := range attrs {
		result[i] = engine.Attr{Name: strings.ToLower(a.Name.Local), Value: a.Value}
	}
	return result
}
