// Package htmltok is the lenient tokenizing engine, built on
// golang.org/x/net/html. It folds tag names to lowercase, infers
// self-closing for the HTML void elements, decodes character references,
// and treats script and style content as verbatim strings.
package htmltok

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/chrisuehlinger/ladle/engine"
)

// voidElements are the HTML elements that can never contain children. A
// start tag for one of these is emitted as an empty-element event even
// without a self-closing slash in the source.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// Engine tokenizes with the x/net/html tokenizer. The zero value is ready
// to use and safe for concurrent independent builds.
type Engine struct{}

// New returns the lenient engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in diagnostics and errors.
func (e *Engine) Name() string {
	return "htmltok"
}

// Capabilities returns the engine's declared capability surface.
func (e *Engine) Capabilities() engine.Capabilities {
	selfClosing := make(map[string]bool, len(voidElements))
	for a := range voidElements {
		selfClosing[a.String()] = true
	}
	return engine.Capabilities{
		SelfClosingTags: selfClosing,
		PreserveWhitespaceTags: map[string]bool{
			"pre":      true,
			"textarea": true,
		},
		StringContainers: map[string]engine.ContainerKind{
			"script":   engine.VerbatimText,
			"style":    engine.VerbatimText,
			"textarea": engine.CDataText,
		},
		SupportsSelectiveBuild: true,
		CollapsesWhitespace:    true,
		DecodesEntities:        true,
	}
}

// Tokenize scans text and delivers events to sink in document order.
func (e *Engine) Tokenize(text string, sink engine.Sink) error {
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return err
			}
			return nil
		case html.TextToken:
			if err := sink.Text(string(z.Text())); err != nil {
				return err
			}
		case html.StartTagToken:
			tok := z.Token()
			if voidElements[tok.DataAtom] {
				if err := sink.EmptyTag(tok.Data, convertAttrs(tok.Attr)); err != nil {
					return err
				}
				continue
			}
			if err := sink.OpenTag(tok.Data, convertAttrs(tok.Attr)); err != nil {
				return err
			}
		case html.EndTagToken:
			tok := z.Token()
			if err := sink.CloseTag(tok.Data); err != nil {
				return err
			}
		case html.SelfClosingTagToken:
			tok := z.Token()
			if err := sink.EmptyTag(tok.Data, convertAttrs(tok.Attr)); err != nil {
				return err
			}
		case html.CommentToken:
			tok := z.Token()
			if err := sink.Comment(tok.Data); err != nil {
				return err
			}
		case html.DoctypeToken:
			tok := z.Token()
			if err := sink.Declaration("DOCTYPE " + tok.Data); err != nil {
				return err
			}
		}
	}
}

func convertAttrs(attrs []html.Attribute) []engine.Attr {
	if len(attrs) == 0 {
		return nil
	}
	result := make([]engine.Attr, len(attrs))
	for i, a := range attrs {
		result[i] = engine.Attr{Name: a.Key, Value: a.Val}
	}
	return result
}
