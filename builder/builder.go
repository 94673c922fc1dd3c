// Package builder folds engine events into a dom tree. It maintains the
// open-element stack, applies one enumerated repair-policy table over
// every engine's events, and consults an optional strainer to build only
// matching subtrees. Construction never aborts on malformed input; the
// only fatal condition is a protocol violation by the engine adapter.
package builder

import (
	"log/slog"
	"strings"

	"github.com/chrisuehlinger/ladle/dom"
	"github.com/chrisuehlinger/ladle/engine"
	"github.com/chrisuehlinger/ladle/strainer"
)

// formattingTags are the inline elements reopened after an enclosing
// close implicitly closes them, preserving the original nesting intent.
var formattingTags = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true,
	"font": true, "i": true, "nobr": true, "s": true, "small": true,
	"strike": true, "strong": true, "tt": true, "u": true,
}

// Options configures a single build. The zero value builds the whole
// document and keeps diagnostics internal.
type Options struct {
	// Only restricts construction to subtrees matching the filter, when
	// the engine supports selective build.
	Only *strainer.Strainer

	// OnDiagnostic, when set, receives each repair event as it fires.
	OnDiagnostic func(Diagnostic)

	// Logger, when set, records each repair event at debug level.
	Logger *slog.Logger
}

// Builder constructs one tree from one engine's event stream. A Builder
// is single-use and owns its own stack; independent documents build
// concurrently with independent Builders.
type Builder struct {
	eng   engine.Engine
	caps  engine.Capabilities
	opts  Options
	doc   *dom.Document
	stack []*dom.Node
	diags []Diagnostic
	done  bool

	// strain is non-nil while selective build is active.
	strain *strainer.Strainer

	// pendingReopen holds formatting element names implicitly closed by
	// an enclosing close, outermost first, to be reopened inside the
	// next non-formatting element.
	pendingReopen []string

	// container state while inside a string-container tag: text routes
	// verbatim into one child node until the matching close.
	containerName string
	containerKind engine.ContainerKind
	containerBuf  strings.Builder
	inContainer   bool
}

// New returns a Builder for one build with the given engine.
func New(eng engine.Engine, opts Options) *Builder {
	b := &Builder{
		eng:  eng,
		caps: eng.Capabilities(),
		opts: opts,
		doc:  dom.NewDocument(),
	}
	b.stack = []*dom.Node{b.doc.AsNode()}
	if opts.Only != nil {
		if b.caps.SupportsSelectiveBuild {
			b.strain = opts.Only
		} else {
			b.report(Diagnostic{Kind: DegradedFullBuild, Subject: eng.Name(),
				Detail: "engine does not support selective build"})
		}
	}
	return b
}

// Build tokenizes text with the builder's engine and returns the
// constructed document. The only error it returns is a protocol
// violation by the engine adapter; malformed markup is always repaired.
func (b *Builder) Build(text string) (*dom.Document, error) {
	if err := b.eng.Tokenize(text, (*sink)(b)); err != nil {
		return nil, err
	}
	b.finish()
	return b.doc, nil
}

// Diagnostics returns the repair events recorded so far, in order.
func (b *Builder) Diagnostics() []Diagnostic {
	return b.diags
}

func (b *Builder) report(d Diagnostic) {
	b.diags = append(b.diags, d)
	if b.opts.OnDiagnostic != nil {
		b.opts.OnDiagnostic(d)
	}
	if b.opts.Logger != nil {
		b.opts.Logger.Debug("markup repair",
			"kind", d.Kind.String(), "subject", d.Subject, "detail", d.Detail)
	}
}

func (b *Builder) top() *dom.Node {
	return b.stack[len(b.stack)-1]
}

// building reports whether events currently land in the tree. It is
// false only when a selective build is waiting for a matching element.
func (b *Builder) building() bool {
	return b.strain == nil || len(b.stack) > 1
}

// finish closes everything still open at end of input and seals the
// builder against further events.
func (b *Builder) finish() {
	if b.inContainer {
		b.flushContainer()
		b.stack = b.stack[:len(b.stack)-1]
	}
	b.stack = b.stack[:1]
	b.pendingReopen = nil
	b.done = true
}

// makeElement constructs an element applying the first-wins duplicate
// attribute policy.
func (b *Builder) makeElement(name string, attrs []engine.Attr) *dom.Element {
	el := dom.NewElement(name)
	for _, a := range attrs {
		if !el.AddAttr(a.Name, a.Value) {
			b.report(Diagnostic{Kind: RepairDuplicateAttr, Subject: name,
				Detail: "dropped duplicate attribute " + a.Name})
		}
	}
	return el
}

func (b *Builder) openElement(name string, attrs []engine.Attr, empty bool) {
	el := b.makeElement(name, attrs)
	if b.strain != nil && len(b.stack) == 1 {
		// a filter with text criteria keeps only matching text, never elements
		if b.strain.MatchesText() || !b.strain.MatchElement(name, el.Attrs()) {
			return
		}
	}
	selfClosing := empty || b.caps.SelfClosingTags[name]
	if selfClosing {
		el.SetSelfClosing(true)
		b.top().AppendChild(el.AsNode())
		return
	}
	b.top().AppendChild(el.AsNode())
	b.stack = append(b.stack, el.AsNode())

	if _, ok := b.caps.StringContainers[name]; ok {
		b.inContainer = true
		b.containerName = name
		b.containerKind = b.caps.StringContainers[name]
		b.containerBuf.Reset()
		return
	}
	if len(b.pendingReopen) > 0 && !formattingTags[name] {
		b.reopenPending()
	}
}

// reopenPending reopens implicitly closed formatting elements inside the
// element just pushed, preserving their original nesting order.
func (b *Builder) reopenPending() {
	for _, name := range b.pendingReopen {
		el := dom.NewElement(name)
		b.top().AppendChild(el.AsNode())
		b.stack = append(b.stack, el.AsNode())
		b.report(Diagnostic{Kind: RepairReopenedElement, Subject: name})
	}
	b.pendingReopen = nil
}

func (b *Builder) closeElement(name string) {
	if b.inContainer {
		if name == b.containerName {
			b.flushContainer()
			b.stack = b.stack[:len(b.stack)-1]
			b.inContainer = false
		}
		return
	}
	if b.caps.SelfClosingTags[name] {
		b.report(Diagnostic{Kind: RepairDiscardedVoidClose, Subject: name})
		return
	}
	// find the nearest open element with this name, above the root
	match := -1
	for i := len(b.stack) - 1; i >= 1; i-- {
		if dom.AsElement(b.stack[i]).Name() == name {
			match = i
			break
		}
	}
	if match < 0 {
		if b.strain == nil || len(b.stack) > 1 {
			b.report(Diagnostic{Kind: RepairIgnoredClose, Subject: name})
		}
		return
	}
	// implicitly close everything above the match; formatting elements
	// among them are queued to reopen, outermost first
	var reopen []string
	for i := match + 1; i < len(b.stack); i++ {
		skipped := dom.AsElement(b.stack[i]).Name()
		b.report(Diagnostic{Kind: RepairImplicitClose, Subject: skipped,
			Detail: "closed by </" + name + ">"})
		if formattingTags[skipped] {
			reopen = append(reopen, skipped)
		}
	}
	if len(reopen) > 0 {
		b.pendingReopen = reopen
	}
	b.stack = b.stack[:match]
}

func (b *Builder) flushContainer() {
	content := b.containerBuf.String()
	b.containerBuf.Reset()
	if content == "" {
		return
	}
	var child *dom.Node
	if b.containerKind == engine.CDataText {
		child = dom.NewCData(content).AsNode()
	} else {
		child = dom.NewText(content).AsNode()
	}
	b.top().AppendChild(child)
}

func (b *Builder) addText(content string) {
	if b.inContainer {
		b.containerBuf.WriteString(content)
		return
	}
	if b.caps.CollapsesWhitespace && !b.preservingWhitespace() {
		content = collapseWhitespace(content)
	}
	if content == "" {
		return
	}
	if !b.building() {
		if b.strain.MatchesText() && b.strain.MatchText(content) {
			b.top().AppendChild(dom.NewText(content).AsNode())
		}
		return
	}
	b.top().AppendChild(dom.NewText(content).AsNode())
}

// preservingWhitespace reports whether any open element preserves
// whitespace, so text under it is stored verbatim.
func (b *Builder) preservingWhitespace() bool {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.caps.PreserveWhitespaceTags[dom.AsElement(b.stack[i]).Name()] {
			return true
		}
	}
	return false
}

// addDeclaration classifies declaration content. Recognized shapes become
// declaration or CDATA nodes; anything else is demoted to a comment so
// no input content is silently lost.
func (b *Builder) addDeclaration(content string) {
	switch {
	case len(content) >= 7 && strings.EqualFold(content[:7], "doctype"):
		b.top().AppendChild(dom.NewDeclaration(content).AsNode())
	case strings.HasPrefix(content, "?"):
		b.top().AppendChild(dom.NewDeclaration(content).AsNode())
	case strings.HasPrefix(content, "[CDATA[") && strings.HasSuffix(content, "]]"):
		inner := content[len("[CDATA[") : len(content)-len("]]")]
		b.top().AppendChild(dom.NewCData(inner).AsNode())
	default:
		b.report(Diagnostic{Kind: RepairDemotedDeclaration, Subject: content})
		b.top().AppendChild(dom.NewComment(content).AsNode())
	}
}

// collapseWhitespace reduces each run of ASCII whitespace to one space.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' {
			if !inRun {
				sb.WriteByte(' ')
				inRun = true
			}
			continue
		}
		sb.WriteByte(c)
		inRun = false
	}
	return sb.String()
}
