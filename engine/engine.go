// Package engine defines the contract a parsing engine must satisfy to
// feed the tree builder: a stream of document-ordered events plus a
// declaration of the engine's capabilities. The builder depends only on
// this package, never on a specific engine.
package engine

import "fmt"

// ContainerKind describes how a string container's content is represented
// in the tree.
type ContainerKind int

const (
	// VerbatimText stores the container's content as a plain text node.
	VerbatimText ContainerKind = iota
	// CDataText stores the container's content as a CDATA node.
	CDataText
)

// Capabilities declares how an engine tokenizes, so the builder can apply
// one repair policy over structurally different engines.
type Capabilities struct {
	// SelfClosingTags are element names that can never contain children.
	// An explicit close event for one of these is discarded, not an error.
	SelfClosingTags map[string]bool

	// PreserveWhitespaceTags are element names whose text content is
	// stored verbatim instead of whitespace-collapsed.
	PreserveWhitespaceTags map[string]bool

	// StringContainers maps element names whose content is never itself
	// parsed as markup to the node kind that stores it.
	StringContainers map[string]ContainerKind

	// SupportsSelectiveBuild reports whether the engine honors a
	// selective-build filter. Engines that cannot must report false; the
	// builder then falls back to full construction.
	SupportsSelectiveBuild bool

	// CollapsesWhitespace reports whether runs of whitespace in text
	// outside PreserveWhitespaceTags collapse to a single space during
	// construction.
	CollapsesWhitespace bool

	// DecodesEntities reports whether the engine resolves named character
	// references in text. Engines legitimately differ here; numeric
	// references decode under every engine.
	DecodesEntities bool
}

// Attr is an attribute as tokenized, before the builder's duplicate policy
// is applied.
type Attr struct {
	Name  string
	Value string
}

// Sink receives tokenization events in document order. Any method may
// return an error to abort tokenization; engines must stop and propagate
// it unchanged.
type Sink interface {
	// OpenTag reports a start tag.
	OpenTag(name string, attrs []Attr) error
	// CloseTag reports an end tag.
	CloseTag(name string) error
	// EmptyTag reports a tag that opens and closes atomically.
	EmptyTag(name string, attrs []Attr) error
	// Text reports character content.
	Text(content string) error
	// Comment reports comment content, without the comment delimiters.
	Comment(content string) error
	// Declaration reports doctype or processing-instruction content,
	// without the angle-bracket delimiters.
	Declaration(content string) error
}

// Engine is a pluggable tokenizer. One Engine value may serve concurrent
// independent builds; Tokenize must not retain the sink after returning.
type Engine interface {
	// Name identifies the engine in diagnostics and errors.
	Name() string
	// Capabilities returns the engine's declared capability surface.
	Capabilities() Capabilities
	// Tokenize scans text and delivers events to sink in document order.
	// The only errors it returns are sink errors and protocol violations;
	// malformed markup is repaired by the engine's own rules, not reported.
	Tokenize(text string, sink Sink) error
}

// ProtocolError reports an engine emitting an event inconsistent with the
// protocol's invariants. It marks an adapter bug, never a markup-quality
// issue, and aborts the build.
type ProtocolError struct {
	Engine  string
	Event   string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol violation in engine %q: %s event: %s", e.Engine, e.Event, e.Message)
}

// Violation creates a ProtocolError.
func Violation(engineName, event, message string) *ProtocolError {
	return &ProtocolError{Engine: engineName, Event: event, Message: message}
}
