// Package dom provides the mutable markup tree that every parsing engine
// builds into: one node shape, one navigation and mutation surface,
// independent of which engine produced the events.
package dom

// NodeKind represents the kind of a Node.
type NodeKind int

const (
	// InvalidNode signifies an erroneous or zero node.
	InvalidNode NodeKind = iota
	// DocumentNode is the top-level node for a whole document.
	DocumentNode
	// ElementNode represents a tagged element.
	ElementNode
	// TextNode holds character content between tags.
	TextNode
	// CommentNode holds comment content.
	CommentNode
	// CDataNode holds a CDATA section. It carries the same shape as a text
	// node but serializes differently and is matched differently in search.
	CDataNode
	// DeclarationNode holds doctype or processing-instruction content verbatim.
	DeclarationNode
)

// String returns the string representation of the NodeKind.
func (k NodeKind) String() string {
	switch k {
	case DocumentNode:
		return "DocumentNode"
	case ElementNode:
		return "ElementNode"
	case TextNode:
		return "TextNode"
	case CommentNode:
		return "CommentNode"
	case CDataNode:
		return "CDataNode"
	case DeclarationNode:
		return "DeclarationNode"
	default:
		return "InvalidNode"
	}
}
