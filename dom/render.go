package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// rawTextTags are element names whose text children render without entity
// escaping, matching how their content was captured verbatim.
var rawTextTags = map[string]bool{
	"script":   true,
	"style":    true,
	"textarea": true,
}

// Render serializes the node and its subtree back to markup. Attribute
// order is the stored insertion order, so rendering is deterministic and
// lossless modulo the repair policies applied during construction.
func (n *Node) Render() string {
	var sb strings.Builder
	n.render(&sb)
	return sb.String()
}

func (n *Node) render(sb *strings.Builder) {
	switch n.kind {
	case DocumentNode:
		for c := n.firstChild; c != nil; c = c.nextSibling {
			c.render(sb)
		}
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.name)
		for _, a := range n.attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Value))
			sb.WriteByte('"')
		}
		if n.selfClosing && n.firstChild == nil {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for c := n.firstChild; c != nil; c = c.nextSibling {
			c.render(sb)
		}
		sb.WriteString("</")
		sb.WriteString(n.name)
		sb.WriteByte('>')
	case TextNode:
		if p := n.parentNode; p != nil && p.kind == ElementNode && rawTextTags[p.name] {
			sb.WriteString(n.data)
			return
		}
		sb.WriteString(html.EscapeString(n.data))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.data)
		sb.WriteString("-->")
	case CDataNode:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.data)
		sb.WriteString("]]>")
	case DeclarationNode:
		if strings.HasPrefix(n.data, "?") {
			sb.WriteByte('<')
			sb.WriteString(n.data)
			sb.WriteByte('>')
			return
		}
		sb.WriteString("<!")
		sb.WriteString(n.data)
		sb.WriteByte('>')
	}
}
