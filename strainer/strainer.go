// Package strainer provides the selective-build filter: a side-effect-free
// predicate over element name, attributes, and text content that the tree
// builder consults while constructing, so only matching subtrees are
// built. Filters are evaluable from an open tag alone, before any
// descendants exist.
package strainer

import (
	"fmt"
	"strings"

	"github.com/chrisuehlinger/ladle/dom"
)

// FilterError reports structurally invalid filter criteria. It is
// returned at construction time, before any build starts.
type FilterError struct {
	Message string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid strainer: %s", e.Message)
}

type valueKind int

const (
	matchPresent valueKind = iota
	matchExact
	matchSubstring
	matchOneOf
)

// Value matches one attribute value or text content.
type Value struct {
	kind valueKind
	s    string
	set  []string
}

// Present matches any value, requiring only that the attribute exists.
func Present() Value {
	return Value{kind: matchPresent}
}

// Exact matches the value exactly. For multi-valued attributes it also
// matches any single space-separated token.
func Exact(s string) Value {
	return Value{kind: matchExact, s: s}
}

// Substring matches any value containing s.
func Substring(s string) Value {
	return Value{kind: matchSubstring, s: s}
}

// OneOf matches when any of the given values matches exactly; the set is
// a logical OR.
func OneOf(values ...string) Value {
	return Value{kind: matchOneOf, set: values}
}

func (v Value) match(s string) bool {
	switch v.kind {
	case matchPresent:
		return true
	case matchExact:
		if v.s == s {
			return true
		}
		for _, tok := range strings.Fields(s) {
			if tok == v.s {
				return true
			}
		}
		return false
	case matchSubstring:
		return strings.Contains(s, v.s)
	case matchOneOf:
		for _, want := range v.set {
			if want == s {
				return true
			}
		}
		return false
	}
	return false
}

type attrRule struct {
	name  string
	value Value
}

// Strainer is a predicate over (name, attributes, text). Provided
// criteria AND together; within one criterion a set of acceptable values
// is a logical OR. A Strainer has no side effects and is safe for
// concurrent use.
type Strainer struct {
	names    map[string]bool
	attrs    []attrRule
	text     []Value
	anyName  bool
	anyAttrs bool
}

// Option configures a Strainer under construction.
type Option func(*Strainer) error

// Name restricts matches to elements with any of the given lowercase tag
// names.
func Name(names ...string) Option {
	return func(s *Strainer) error {
		if len(names) == 0 {
			return &FilterError{Message: "name criterion with an empty value set"}
		}
		for _, n := range names {
			if n == "" {
				return &FilterError{Message: "empty name in name criterion"}
			}
			s.names[strings.ToLower(n)] = true
		}
		s.anyName = false
		return nil
	}
}

// Attr requires the named attribute to match the given value.
func Attr(name string, value Value) Option {
	return func(s *Strainer) error {
		if name == "" {
			return &FilterError{Message: "attribute criterion with an empty name"}
		}
		if value.kind == matchOneOf && len(value.set) == 0 {
			return &FilterError{Message: "attribute criterion with an empty value set"}
		}
		s.attrs = append(s.attrs, attrRule{name: strings.ToLower(name), value: value})
		s.anyAttrs = false
		return nil
	}
}

// Text requires matched text content to match the given value.
func Text(value Value) Option {
	return func(s *Strainer) error {
		if value.kind == matchOneOf && len(value.set) == 0 {
			return &FilterError{Message: "text criterion with an empty value set"}
		}
		s.text = append(s.text, value)
		return nil
	}
}

// New builds a Strainer from the given criteria. Structurally invalid
// criteria fail fast here with a *FilterError.
func New(opts ...Option) (*Strainer, error) {
	s := &Strainer{names: make(map[string]bool), anyName: true, anyAttrs: true}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.anyName && s.anyAttrs && len(s.text) == 0 {
		return nil, &FilterError{Message: "no criteria provided"}
	}
	if err := s.checkConsistency(); err != nil {
		return nil, err
	}
	return s, nil
}

// checkConsistency rejects criteria that can never hold together, such as
// two different exact values required of one attribute.
func (s *Strainer) checkConsistency() error {
	exact := make(map[string]string)
	for _, rule := range s.attrs {
		if rule.value.kind != matchExact {
			continue
		}
		if prev, ok := exact[rule.name]; ok && prev != rule.value.s {
			return &FilterError{Message: fmt.Sprintf(
				"attribute %q required to equal both %q and %q", rule.name, prev, rule.value.s)}
		}
		exact[rule.name] = rule.value.s
	}
	return nil
}

// MatchesText reports whether the filter carries text criteria.
func (s *Strainer) MatchesText() bool {
	return len(s.text) > 0
}

// MatchElement evaluates the name and attribute criteria against a
// candidate element as it opens, before its children exist.
func (s *Strainer) MatchElement(name string, attrs []dom.Attribute) bool {
	if !s.anyName && !s.names[strings.ToLower(name)] {
		return false
	}
	for _, rule := range s.attrs {
		value, present := "", false
		for _, a := range attrs {
			if a.Name == rule.name {
				value, present = a.Value, true
				break
			}
		}
		if !present || !rule.value.match(value) {
			return false
		}
	}
	return true
}

// MatchText evaluates the text criteria against character content. A
// filter without text criteria matches no text on its own.
func (s *Strainer) MatchText(content string) bool {
	for _, v := range s.text {
		if v.match(content) {
			return true
		}
	}
	return false
}
