package dom

// Document is the tree root. It owns zero or more top-level nodes:
// declarations, comments, one element tree, stray text.
type Document Node

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{kind: DocumentNode}
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node {
	return (*Node)(d)
}

// RootElement returns the first top-level element, or nil.
func (d *Document) RootElement() *Element {
	for c := d.firstChild; c != nil; c = c.nextSibling {
		if c.kind == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// Find returns the first descendant element with the given lowercase tag
// name, or nil.
func (d *Document) Find(name string) *Element {
	return find(d.AsNode(), name)
}

// FindAll returns every descendant element with the given lowercase tag
// name, in document order.
func (d *Document) FindAll(name string) []*Element {
	return findAll(d.AsNode(), name)
}

// Text represents a character-content leaf.
type Text Node

// NewText creates a detached text node.
func NewText(content string) *Text {
	return &Text{kind: TextNode, data: content}
}

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node {
	return (*Node)(t)
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.data
}

// AsText returns the text view of n, or nil if n is not a text node.
func AsText(n *Node) *Text {
	if n == nil || n.kind != TextNode {
		return nil
	}
	return (*Text)(n)
}

// Comment holds comment content.
type Comment Node

// NewComment creates a detached comment node.
func NewComment(content string) *Comment {
	return &Comment{kind: CommentNode, data: content}
}

// AsNode returns the underlying Node.
func (c *Comment) AsNode() *Node {
	return (*Node)(c)
}

// Data returns the comment content.
func (c *Comment) Data() string {
	return c.data
}

// AsComment returns the comment view of n, or nil if n is not a comment.
func AsComment(n *Node) *Comment {
	if n == nil || n.kind != CommentNode {
		return nil
	}
	return (*Comment)(n)
}

// CData holds a CDATA section.
type CData Node

// NewCData creates a detached CDATA node.
func NewCData(content string) *CData {
	return &CData{kind: CDataNode, data: content}
}

// AsNode returns the underlying Node.
func (c *CData) AsNode() *Node {
	return (*Node)(c)
}

// Data returns the CDATA content.
func (c *CData) Data() string {
	return c.data
}

// AsCData returns the CDATA view of n, or nil if n is not a CDATA node.
func AsCData(n *Node) *CData {
	if n == nil || n.kind != CDataNode {
		return nil
	}
	return (*CData)(n)
}

// Declaration holds doctype or processing-instruction content verbatim.
type Declaration Node

// NewDeclaration creates a detached declaration node.
func NewDeclaration(content string) *Declaration {
	return &Declaration{kind: DeclarationNode, data: content}
}

// AsNode returns the underlying Node.
func (d *Declaration) AsNode() *Node {
	return (*Node)(d)
}

// Data returns the declaration content.
func (d *Declaration) Data() string {
	return d.data
}
