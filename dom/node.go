package dom

import (
	"iter"
	"strings"
)

// Node is the single concrete node shape shared by every kind in the tree.
// A node owns its children; parent and sibling pointers are non-owning
// relation links kept consistent with the child list by every mutation.
type Node struct {
	kind NodeKind

	parentNode  *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// name is the lowercase tag name for ElementNode, empty otherwise.
	name string
	// data is the content for text, comment, CDATA, and declaration nodes.
	data string
	// attrs holds element attributes in insertion order.
	attrs []Attribute
	// selfClosing marks elements that can never contain children, per the
	// capability declaration of the engine that produced them.
	selfClosing bool
}

// Kind returns the kind of the node.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// Parent returns the parent of this node, or nil for a detached node or the
// document root.
func (n *Node) Parent() *Node {
	return n.parentNode
}

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node {
	return n.firstChild
}

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node {
	return n.lastChild
}

// PrevSibling returns the previous sibling node, or nil if this is the
// first child.
func (n *Node) PrevSibling() *Node {
	return n.prevSibling
}

// NextSibling returns the next sibling node, or nil if this is the last child.
func (n *Node) NextSibling() *Node {
	return n.nextSibling
}

// HasChildren reports whether this node has any child nodes.
func (n *Node) HasChildren() bool {
	return n.firstChild != nil
}

// Children returns the child nodes in document order as a restartable
// sequence. Mutating the tree while ranging is undefined.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if !yield(c) {
				return
			}
		}
	}
}

// Descendants returns every node below this one in depth-first pre-order as
// a restartable sequence. The receiver itself is not yielded.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walkDescendants(yield)
	}
}

func (n *Node) walkDescendants(yield func(*Node) bool) bool {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if !yield(c) {
			return false
		}
		if !c.walkDescendants(yield) {
			return false
		}
	}
	return true
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		count++
	}
	return count
}

// ChildAt returns the child at the given index, or nil if out of range.
func (n *Node) ChildAt(index int) *Node {
	if index < 0 {
		return nil
	}
	c := n.firstChild
	for i := 0; c != nil && i < index; i++ {
		c = c.nextSibling
	}
	return c
}

// Index returns this node's position among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.parentNode == nil {
		return -1
	}
	i := 0
	for c := n.prevSibling; c != nil; c = c.prevSibling {
		i++
	}
	return i
}

// Root returns the root of the tree containing this node.
func (n *Node) Root() *Node {
	root := n
	for root.parentNode != nil {
		root = root.parentNode
	}
	return root
}

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	for node := other; node != nil; node = node.parentNode {
		if node == n {
			return true
		}
	}
	return false
}

// Text returns the concatenated content of all descendant text and CDATA
// nodes, in document order. For a text-bearing node it returns its content.
func (n *Node) Text() string {
	switch n.kind {
	case TextNode, CDataNode, CommentNode, DeclarationNode:
		return n.data
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}

func (n *Node) collectText(sb *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		switch c.kind {
		case TextNode, CDataNode:
			sb.WriteString(c.data)
		case ElementNode:
			c.collectText(sb)
		}
	}
}

// canHaveChildren reports whether this node kind may own children.
func (n *Node) canHaveChildren() bool {
	switch n.kind {
	case DocumentNode:
		return true
	case ElementNode:
		return !n.selfClosing
	default:
		return false
	}
}

// validateInsertion checks the hierarchy rules shared by every insertion.
func (n *Node) validateInsertion(child *Node) error {
	if child == nil {
		return ErrHierarchy("cannot insert a nil node")
	}
	if !n.canHaveChildren() {
		return ErrHierarchy("node of kind " + n.kind.String() + " cannot have children")
	}
	if child.kind == DocumentNode {
		return ErrHierarchy("a document cannot be inserted below another node")
	}
	if child.Contains(n) {
		return ErrHierarchy("the inserted node contains the new parent")
	}
	return nil
}

// AppendChild adds child to the end of this node's children, detaching it
// from any previous parent first.
func (n *Node) AppendChild(child *Node) error {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts child before ref. A nil ref appends to the end.
// Sibling links and the parent pointer are updated before the call returns;
// no transiently inconsistent state is observable afterward.
func (n *Node) InsertBefore(child, ref *Node) error {
	if err := n.validateInsertion(child); err != nil {
		return err
	}
	if ref != nil && ref.parentNode != n {
		return ErrDetached("the reference node is not a child of this node")
	}
	if child == ref {
		return nil
	}
	if child.parentNode != nil {
		child.parentNode.removeChild(child)
	}
	child.parentNode = n
	if ref == nil {
		child.prevSibling = n.lastChild
		child.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
	} else {
		child.prevSibling = ref.prevSibling
		child.nextSibling = ref
		if ref.prevSibling != nil {
			ref.prevSibling.nextSibling = child
		} else {
			n.firstChild = child
		}
		ref.prevSibling = child
	}
	return nil
}

// InsertAt inserts child at the given position among this node's children.
// An index equal to the child count appends.
func (n *Node) InsertAt(index int, child *Node) error {
	if index < 0 || index > n.ChildCount() {
		return ErrIndex("child index out of range")
	}
	return n.InsertBefore(child, n.ChildAt(index))
}

// removeChild unlinks child from this node's child list and clears its
// relation pointers. The caller has verified child.parentNode == n.
func (n *Node) removeChild(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// Extract detaches this node and its subtree from its parent and returns
// it, transferring ownership to the caller. Extracting a detached node is
// a no-op.
func (n *Node) Extract() *Node {
	if n.parentNode != nil {
		n.parentNode.removeChild(n)
	}
	return n
}

// ReplaceWith replaces this node with repl in its parent's child list.
// The receiver is left detached. On error the tree is unchanged.
func (n *Node) ReplaceWith(repl *Node) error {
	parent := n.parentNode
	if parent == nil {
		return ErrDetached("cannot replace a node without a parent")
	}
	if repl == n {
		return nil
	}
	if err := parent.validateInsertion(repl); err != nil {
		return err
	}
	next := n.nextSibling
	if next == repl {
		next = repl.nextSibling
	}
	parent.removeChild(n)
	return parent.InsertBefore(repl, next)
}

// Wrap moves this node inside wrapper, and puts wrapper in this node's
// former position. The node must be attached and wrapper must be able to
// own children. On error the tree is unchanged.
func (n *Node) Wrap(wrapper *Element) error {
	parent := n.parentNode
	if parent == nil {
		return ErrDetached("cannot wrap a node without a parent")
	}
	w := wrapper.AsNode()
	if err := w.validateInsertion(n); err != nil {
		return err
	}
	if err := parent.validateInsertion(w); err != nil {
		return err
	}
	next := n.nextSibling
	parent.removeChild(n)
	if err := parent.InsertBefore(w, next); err != nil {
		return err
	}
	return w.AppendChild(n)
}

// Unwrap replaces this element with its children, preserving their order,
// and returns the detached element. Only elements can be unwrapped.
func (n *Node) Unwrap() (*Node, error) {
	if n.kind != ElementNode {
		return nil, ErrKind("only elements can be unwrapped")
	}
	parent := n.parentNode
	if parent == nil {
		return nil, ErrDetached("cannot unwrap a node without a parent")
	}
	next := n.nextSibling
	parent.removeChild(n)
	for n.firstChild != nil {
		child := n.firstChild
		n.removeChild(child)
		if err := parent.InsertBefore(child, next); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Clone returns a deep copy of this node and its subtree. The copy is
// detached.
func (n *Node) Clone() *Node {
	clone := &Node{
		kind:        n.kind,
		name:        n.name,
		data:        n.data,
		selfClosing: n.selfClosing,
	}
	if n.attrs != nil {
		clone.attrs = make([]Attribute, len(n.attrs))
		copy(clone.attrs, n.attrs)
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		clone.AppendChild(c.Clone())
	}
	return clone
}
