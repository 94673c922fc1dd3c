// Package rawlex is the recovery-oriented engine: a hand-rolled byte
// lexer with its own error-correction rules. Unterminated comments and
// declarations swallow the rest of the input, an unterminated start tag
// falls back to literal text, and an unterminated quoted attribute value
// runs to end of input. It does not resolve named character references;
// numeric references decode under its own range policy.
package rawlex

import (
	"strings"

	"github.com/chrisuehlinger/ladle/engine"
)

// voidTags are element names that never contain children.
var voidTags = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// rawContainers are element names whose content is captured verbatim,
// never tokenized as markup.
var rawContainers = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
}

// Engine is the recovery lexer. The zero value is ready to use.
type Engine struct{}

// New returns the recovery engine.
func New() *Engine {
	return &Engine{}
}

// Name identifies the engine in diagnostics and errors.
func (e *Engine) Name() string {
	return "rawlex"
}

// Capabilities returns the engine's declared capability surface.
func (e *Engine) Capabilities() engine.Capabilities {
	selfClosing := make(map[string]bool, len(voidTags))
	for name := range voidTags {
		selfClosing[name] = true
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
		DecodesEntities:        false,
	}
}

// Tokenize scans text and delivers events to sink in document order.
func (e *Engine) Tokenize(text string, sink engine.Sink) error {
	l := &lexer{input: text, sink: sink}
	return l.run()
}

type lexer struct {
	input string
	pos   int
	sink  engine.Sink
}

func (l *lexer) rest() string {
	return l.input[l.pos:]
}

func (l *lexer) run() error {
	for l.pos < len(l.input) {
		i := strings.IndexByte(l.rest(), '<')
		if i < 0 {
			return l.emitText(l.rest(), len(l.rest()))
		}
		if i > 0 {
			if err := l.emitText(l.rest()[:i], i); err != nil {
				return err
			}
		}
		rest := l.rest()
		var err error
		switch {
		case strings.HasPrefix(rest, "<!--"):
			err = l.lexComment()
		case strings.HasPrefix(rest, "<!"):
			err = l.lexDeclaration()
		case strings.HasPrefix(rest, "<?"):
			err = l.lexProcInst()
		case strings.HasPrefix(rest, "</"):
			err = l.lexCloseTag()
		default:
			err = l.lexOpenTag()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *lexer) emitText(raw string, advance int) error {
	l.pos += advance
	return l.sink.Text(decodeNumericRefs(raw))
}

func (l *lexer) lexComment() error {
	body := l.rest()[len("<!--"):]
	end := strings.Index(body, "-->")
	if end < 0 {
		// unterminated comment swallows the rest of the input
		l.pos = len(l.input)
		return l.sink.Comment(body)
	}
	l.pos += len("<!--") + end + len("-->")
	return l.sink.Comment(body[:end])
}

func (l *lexer) lexDeclaration() error {
	body := l.rest()[len("<!"):]
	end := strings.IndexByte(body, '>')
	if end < 0 {
		l.pos = len(l.input)
		return l.sink.Declaration(body)
	}
	l.pos += len("<!") + end + 1
	return l.sink.Declaration(body[:end])
}

func (l *lexer) lexProcInst() error {
	body := l.rest()[len("<?"):]
	end := strings.Index(body, "?>")
	if end < 0 {
		l.pos = len(l.input)
		return l.sink.Declaration("?" + body)
	}
	l.pos += len("<?") + end + len("?>")
	return l.sink.Declaration("?" + body[:end] + "?")
}

func (l *lexer) lexCloseTag() error {
	body := l.rest()[len("</"):]
	end := strings.IndexByte(body, '>')
	if end < 0 {
		// bogus trailing close tag is dropped
		l.pos = len(l.input)
		return nil
	}
	name := strings.ToLower(strings.TrimSpace(body[:end]))
	l.pos += len("</") + end + 1
	if name == "" || !isNameStart(name[0]) {
		return nil
	}
	return l.sink.CloseTag(name)
}

func (l *lexer) lexOpenTag() error {
	rest := l.rest()
	if len(rest) < 2 || !isNameStart(rest[1]) {
		// a lone '<' is literal text
		l.pos++
		return l.sink.Text("<")
	}
	p := 1
	for p < len(rest) && isNameChar(rest[p]) {
		p++
	}
	name := strings.ToLower(rest[1:p])

	attrs, end, selfClose, ok := l.lexAttrs(rest, p)
	if !ok {
		// unterminated start tag falls back to literal text
		l.pos = len(l.input)
		return l.sink.Text(rest)
	}
	l.pos += end

	if selfClose || voidTags[name] {
		return l.sink.EmptyTag(name, attrs)
	}
	if err := l.sink.OpenTag(name, attrs); err != nil {
		return err
	}
	if rawContainers[name] {
		return l.lexRawContent(name)
	}
	return nil
}

// lexAttrs scans attributes from rest starting at offset p, returning the
// attributes, the offset just past '>', and whether the tag was
// self-closing. ok is false when the tag never terminates.
func (l *lexer) lexAttrs(rest string, p int) (attrs []engine.Attr, end int, selfClose bool, ok bool) {
	for {
		for p < len(rest) && isSpace(rest[p]) {
			p++
		}
		if p >= len(rest) {
			return nil, 0, false, false
		}
		switch {
		case rest[p] == '>':
			return attrs, p + 1, false, true
		case rest[p] == '/' && p+1 < len(rest) && rest[p+1] == '>':
			return attrs, p + 2, true, true
		case rest[p] == '/':
			p++
			continue
		}

		nameStart := p
		for p < len(rest) && !isSpace(rest[p]) && rest[p] != '=' && rest[p] != '>' && rest[p] != '/' {
			p++
		}
		name := strings.ToLower(rest[nameStart:p])
		value := ""
		if p < len(rest) && rest[p] == '=' {
			p++
			if p < len(rest) && (rest[p] == '"' || rest[p] == '\'') {
				quote := rest[p]
				p++
				q := strings.IndexByte(rest[p:], quote)
				if q < 0 {
					// unterminated value runs to end of input
					value = rest[p:]
					attrs = append(attrs, engine.Attr{Name: name, Value: decodeNumericRefs(value)})
					return attrs, len(rest), false, true
				}
				value = rest[p : p+q]
				p += q + 1
			} else {
				valStart := p
				for p < len(rest) && !isSpace(rest[p]) && rest[p] != '>' {
					p++
				}
				value = rest[valStart:p]
			}
		}
		if name != "" {
			attrs = append(attrs, engine.Attr{Name: name, Value: decodeNumericRefs(value)})
		}
	}
}

// lexRawContent captures everything up to the matching close tag of a
// string container, emitting it verbatim.
func (l *lexer) lexRawContent(name string) error {
	lower := strings.ToLower(l.rest())
	marker := "</" + name
	end := strings.Index(lower, marker)
	if end < 0 {
		raw := l.rest()
		l.pos = len(l.input)
		if raw == "" {
			return nil
		}
		return l.sink.Text(raw)
	}
	raw := l.rest()[:end]
	l.pos += end
	if raw != "" {
		if err := l.sink.Text(raw); err != nil {
			return err
		}
	}
	// consume the close tag
	return l.lexCloseTag()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isNameChar(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == ':' || c == '.'
}
