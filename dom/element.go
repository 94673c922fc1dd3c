package dom

import "strings"

// Attribute is a single element attribute. Attributes keep insertion order;
// when a duplicate name arrives during construction the first occurrence
// wins and later duplicates are dropped.
type Attribute struct {
	Name  string
	Value string
}

// Element represents a tagged node in the tree.
type Element Node

// NewElement creates a detached element. The name is folded to lowercase.
func NewElement(name string) *Element {
	return &Element{kind: ElementNode, name: strings.ToLower(name)}
}

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node {
	return (*Node)(e)
}

// Name returns the lowercase tag name.
func (e *Element) Name() string {
	return e.name
}

// SelfClosing reports whether the element was produced as (or marked as) a
// tag that can never contain children.
func (e *Element) SelfClosing() bool {
	return e.selfClosing
}

// SetSelfClosing marks the element as self-closing. Self-closing elements
// refuse child insertion.
func (e *Element) SetSelfClosing(v bool) {
	e.selfClosing = v
}

// Attr returns the value of the named attribute and whether it is present.
// Lookup is by lowercase name.
func (e *Element) Attr(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// SetAttr sets an attribute value, appending it if not already present.
func (e *Element) SetAttr(name, value string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs[i].Value = value
			return
		}
	}
	e.attrs = append(e.attrs, Attribute{Name: name, Value: value})
}

// AddAttr appends an attribute only if the name is not already present.
// It reports whether the attribute was added. This is the first-wins
// construction-time policy for duplicate attribute names.
func (e *Element) AddAttr(name, value string) bool {
	name = strings.ToLower(name)
	for _, a := range e.attrs {
		if a.Name == name {
			return false
		}
	}
	e.attrs = append(e.attrs, Attribute{Name: name, Value: value})
	return true
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	name = strings.ToLower(name)
	for i, a := range e.attrs {
		if a.Name == name {
			e.attrs = append(e.attrs[:i], e.attrs[i+1:]...)
			return
		}
	}
}

// Attrs returns a copy of the attributes in insertion order.
func (e *Element) Attrs() []Attribute {
	out := make([]Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// TokenList returns a token-list view over the named attribute, for
// multi-valued attributes such as class. The view reads and writes the
// underlying space-joined attribute value.
func (e *Element) TokenList(name string) *TokenList {
	return newTokenList(e, strings.ToLower(name))
}

// FindAll returns every descendant element with the given lowercase tag
// name, in document order.
func (e *Element) FindAll(name string) []*Element {
	return findAll(e.AsNode(), name)
}

// Find returns the first descendant element with the given lowercase tag
// name, or nil.
func (e *Element) Find(name string) *Element {
	return find(e.AsNode(), name)
}

func findAll(n *Node, name string) []*Element {
	var matches []*Element
	for d := range n.Descendants() {
		if d.kind == ElementNode && d.name == name {
			matches = append(matches, (*Element)(d))
		}
	}
	return matches
}

func find(n *Node, name string) *Element {
	for d := range n.Descendants() {
		if d.kind == ElementNode && d.name == name {
			return (*Element)(d)
		}
	}
	return nil
}

// AsElement returns the element view of n, or nil if n is not an element.
func AsElement(n *Node) *Element {
	if n == nil || n.kind != ElementNode {
		return nil
	}
	return (*Element)(n)
}
