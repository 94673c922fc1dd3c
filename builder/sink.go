package builder

import (
	"github.com/chrisuehlinger/ladle/dom"
	"github.com/chrisuehlinger/ladle/engine"
)

// sink adapts the Builder to the engine event protocol. Event-order and
// structural checks live here: a violation is an adapter bug and aborts
// the build with a distinct error kind, which no markup-quality problem
// ever does.
type sink Builder

func (s *sink) b() *Builder {
	return (*Builder)(s)
}

func (s *sink) violation(event, message string) error {
	return engine.Violation(s.b().eng.Name(), event, message)
}

func (s *sink) check(event, name string, named bool) error {
	if s.b().done {
		return s.violation(event, "event after end of build")
	}
	if named && name == "" {
		return s.violation(event, "empty element name")
	}
	return nil
}

// OpenTag reports a start tag.
func (s *sink) OpenTag(name string, attrs []engine.Attr) error {
	if err := s.check("open", name, true); err != nil {
		return err
	}
	s.b().openElement(name, attrs, false)
	return nil
}

// EmptyTag reports a tag that opens and closes atomically.
func (s *sink) EmptyTag(name string, attrs []engine.Attr) error {
	if err := s.check("empty", name, true); err != nil {
		return err
	}
	s.b().openElement(name, attrs, true)
	return nil
}

// CloseTag reports an end tag.
func (s *sink) CloseTag(name string) error {
	if err := s.check("close", name, true); err != nil {
		return err
	}
	s.b().closeElement(name)
	return nil
}

// Text reports character content.
func (s *sink) Text(content string) error {
	if err := s.check("text", "", false); err != nil {
		return err
	}
	s.b().addText(content)
	return nil
}

// Comment reports comment content.
func (s *sink) Comment(content string) error {
	if err := s.check("comment", "", false); err != nil {
		return err
	}
	b := s.b()
	if !b.building() {
		return nil
	}
	b.top().AppendChild(dom.NewComment(content).AsNode())
	return nil
}

// Declaration reports doctype or processing-instruction content.
func (s *sink) Declaration(content string) error {
	if err := s.check("declaration", "", false); err != nil {
		return err
	}
	b := s.b()
	if !b.building() {
		return nil
	}
	b.addDeclaration(content)
	return nil
}
