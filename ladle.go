// Package ladle turns arbitrary, possibly malformed markup into one
// consistent, mutable, navigable tree, regardless of which parsing
// engine produced the token stream. Input may be text or raw bytes of
// unknown encoding; bytes pass through encoding detection first. Every
// build takes an explicit configuration: the engine, an optional
// selective-build filter, and optional encoding hints. There is no
// process-wide default builder state.
package ladle

import (
	"log/slog"

	"github.com/chrisuehlinger/ladle/builder"
	"github.com/chrisuehlinger/ladle/charset"
	"github.com/chrisuehlinger/ladle/dom"
	"github.com/chrisuehlinger/ladle/engine"
	"github.com/chrisuehlinger/ladle/engine/htmltok"
	"github.com/chrisuehlinger/ladle/strainer"
)

// Config selects the engine and policies for one build. The zero value
// parses with the lenient engine and builds the whole document.
type Config struct {
	// Engine tokenizes the input. A nil Engine uses the lenient
	// htmltok engine.
	Engine engine.Engine

	// Only restricts construction to subtrees matching the filter. When
	// the engine reports selective build unsupported, the whole document
	// is built unfiltered.
	Only *strainer.Strainer

	// Encoding carries caller-supplied encoding knowledge, used only by
	// ParseBytes.
	Encoding charset.Hints

	// OnDiagnostic, when set, receives each markup repair event.
	OnDiagnostic func(builder.Diagnostic)

	// Logger, when set, records repair events at debug level.
	Logger *slog.Logger
}

// Result is the outcome of one build.
type Result struct {
	// Document is the constructed tree.
	Document *dom.Document

	// Encoding reports how byte input was decoded. It is the zero value
	// for text input.
	Encoding charset.Result

	// Diagnostics are the repair events recorded during the build.
	Diagnostics []builder.Diagnostic
}

// Parse builds a tree from canonical text. The only error is a protocol
// violation by the engine adapter; malformed markup is repaired, never
// fatal.
func Parse(text string, cfg Config) (*Result, error) {
	eng := cfg.Engine
	if eng == nil {
		eng = htmltok.New()
	}
	b := builder.New(eng, builder.Options{
		Only:         cfg.Only,
		OnDiagnostic: cfg.OnDiagnostic,
		Logger:       cfg.Logger,
	})
	doc, err := b.Build(text)
	if err != nil {
		return nil, err
	}
	return &Result{Document: doc, Diagnostics: b.Diagnostics()}, nil
}

// ParseBytes detects the encoding of data, decodes it to canonical text,
// and builds a tree from it. Encoding detection never fails; a
// low-confidence decode is reported in the result's Encoding field.
func ParseBytes(data []byte, cfg Config) (*Result, error) {
	decoded := charset.Detect(data, cfg.Encoding)
	res, err := Parse(decoded.Text, cfg)
	if err != nil {
		return nil, err
	}
	res.Encoding = decoded
	return res, nil
}
