package dom

import (
	"slices"
	"testing"
)

func TestAppendChildLinkage(t *testing.T) {
	doc := NewDocument()
	p := NewElement("p")
	if err := doc.AsNode().AppendChild(p.AsNode()); err != nil {
		t.Fatalf("AppendChild returned error: %v", err)
	}
	a := NewText("a").AsNode()
	b := NewText("b").AsNode()
	if err := p.AsNode().AppendChild(a); err != nil {
		t.Fatalf("AppendChild returned error: %v", err)
	}
	if err := p.AsNode().AppendChild(b); err != nil {
		t.Fatalf("AppendChild returned error: %v", err)
	}

	if a.Parent() != p.AsNode() {
		t.Error("first child's parent pointer does not name the parent")
	}
	if a.NextSibling() != b {
		t.Error("expected a.NextSibling() == b")
	}
	if b.PrevSibling() != a {
		t.Error("expected b.PrevSibling() == a")
	}
	if p.AsNode().FirstChild() != a || p.AsNode().LastChild() != b {
		t.Error("first/last child pointers inconsistent after append")
	}
}

func TestChildrenIsRestartable(t *testing.T) {
	p := NewElement("p").AsNode()
	for _, s := range []string{"one", "two", "three"} {
		p.AppendChild(NewText(s).AsNode())
	}
	for pass := 0; pass < 2; pass++ {
		var got []string
		for c := range p.Children() {
			got = append(got, c.Text())
		}
		want := []string{"one", "two", "three"}
		if !slices.Equal(got, want) {
			t.Errorf("pass %d: Children() = %v, want %v", pass, got, want)
		}
	}
}

func TestDescendantsPreOrder(t *testing.T) {
	// <div><p>one<b>two</b></p><span>three</span></div>
	div := NewElement("div").AsNode()
	p := NewElement("p").AsNode()
	b := NewElement("b").AsNode()
	span := NewElement("span").AsNode()
	div.AppendChild(p)
	p.AppendChild(NewText("one").AsNode())
	p.AppendChild(b)
	b.AppendChild(NewText("two").AsNode())
	div.AppendChild(span)
	span.AppendChild(NewText("three").AsNode())

	var got []string
	for d := range div.Descendants() {
		if d.Kind() == ElementNode {
			got = append(got, AsElement(d).Name())
		} else {
			got = append(got, d.Text())
		}
	}
	want := []string{"p", "one", "b", "two", "span", "three"}
	if !slices.Equal(got, want) {
		t.Errorf("Descendants() order = %v, want %v", got, want)
	}
}

func TestExtractInsertAtRoundTrip(t *testing.T) {
	p := NewElement("p").AsNode()
	for _, s := range []string{"one", "two", "three"} {
		p.AppendChild(NewText(s).AsNode())
	}
	before := p.Render()

	mid := p.ChildAt(1)
	idx := mid.Index()
	extracted := mid.Extract()
	if extracted.Parent() != nil {
		t.Fatal("extracted node still has a parent")
	}
	if p.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d after extract, want 2", p.ChildCount())
	}
	if err := p.InsertAt(idx, extracted); err != nil {
		t.Fatalf("InsertAt returned error: %v", err)
	}
	if got := p.Render(); got != before {
		t.Errorf("round trip produced %q, want %q", got, before)
	}
}

func TestInsertAtOutOfRange(t *testing.T) {
	p := NewElement("p").AsNode()
	if err := p.InsertAt(1, NewText("x").AsNode()); err == nil {
		t.Error("expected an error for out-of-range index")
	}
}

func TestReplaceWith(t *testing.T) {
	p := NewElement("p").AsNode()
	old := NewText("old").AsNode()
	p.AppendChild(NewText("a").AsNode())
	p.AppendChild(old)
	p.AppendChild(NewText("b").AsNode())

	repl := NewElement("em").AsNode()
	if err := old.ReplaceWith(repl); err != nil {
		t.Fatalf("ReplaceWith returned error: %v", err)
	}
	if old.Parent() != nil {
		t.Error("replaced node still has a parent")
	}
	if p.ChildAt(1) != repl {
		t.Error("replacement is not at the old node's position")
	}
	if got := p.ChildCount(); got != 3 {
		t.Errorf("ChildCount() = %d, want 3", got)
	}
}

func TestReplaceDetachedFails(t *testing.T) {
	if err := NewText("x").AsNode().ReplaceWith(NewText("y").AsNode()); err == nil {
		t.Error("expected an error replacing a detached node")
	}
}

func TestWrap(t *testing.T) {
	p := NewElement("p").AsNode()
	text := NewText("hello").AsNode()
	p.AppendChild(text)

	if err := text.Wrap(NewElement("b")); err != nil {
		t.Fatalf("Wrap returned error: %v", err)
	}
	if got := p.Render(); got != "<p><b>hello</b></p>" {
		t.Errorf("Render() = %q after wrap", got)
	}
}

func TestReplaceWithRejectsAncestor(t *testing.T) {
	p := NewElement("p").AsNode()
	text := NewText("x").AsNode()
	p.AppendChild(text)

	if err := text.ReplaceWith(p); err == nil {
		t.Fatal("expected an error replacing a node with its own parent")
	}
	if text.Parent() != p {
		t.Error("failed replace detached the receiver")
	}
	if p.ChildCount() != 1 || p.FirstChild() != text {
		t.Error("failed replace must leave the tree unchanged")
	}
}

func TestWrapRejectsAncestor(t *testing.T) {
	div := NewElement("div")
	p := NewElement("p").AsNode()
	text := NewText("x").AsNode()
	div.AsNode().AppendChild(p)
	p.AppendChild(text)

	if err := text.Wrap(div); err == nil {
		t.Fatal("expected an error wrapping a node in its own ancestor")
	}
	if text.Parent() != p {
		t.Error("failed wrap detached the receiver")
	}
	if p.Parent() != div.AsNode() || p.ChildCount() != 1 {
		t.Error("failed wrap must leave the tree unchanged")
	}
}

func TestUnwrap(t *testing.T) {
	p := NewElement("p").AsNode()
	b := NewElement("b").AsNode()
	p.AppendChild(NewText("a ").AsNode())
	p.AppendChild(b)
	b.AppendChild(NewText("bold").AsNode())
	b.AppendChild(NewElement("i").AsNode())

	removed, err := b.Unwrap()
	if err != nil {
		t.Fatalf("Unwrap returned error: %v", err)
	}
	if removed != b {
		t.Error("Unwrap did not return the unwrapped element")
	}
	if b.HasChildren() {
		t.Error("unwrapped element still owns children")
	}
	if got := p.Render(); got != "<p>a bold<i></i></p>" {
		t.Errorf("Render() = %q after unwrap", got)
	}
}

func TestUnwrapTextFails(t *testing.T) {
	p := NewElement("p").AsNode()
	text := NewText("x").AsNode()
	p.AppendChild(text)
	if _, err := text.Unwrap(); err == nil {
		t.Error("expected an error unwrapping a text node")
	}
}

func TestCycleRejected(t *testing.T) {
	outer := NewElement("div").AsNode()
	inner := NewElement("p").AsNode()
	outer.AppendChild(inner)
	if err := inner.AppendChild(outer); err == nil {
		t.Error("expected an error inserting an ancestor below its descendant")
	}
	if err := inner.AppendChild(inner); err == nil {
		t.Error("expected an error inserting a node into itself")
	}
}

func TestDocumentBelowNodeRejected(t *testing.T) {
	p := NewElement("p").AsNode()
	if err := p.AppendChild(NewDocument().AsNode()); err == nil {
		t.Error("expected an error inserting a document below an element")
	}
}

func TestLeafNodesRejectChildren(t *testing.T) {
	text := NewText("x").AsNode()
	if err := text.AppendChild(NewText("y").AsNode()); err == nil {
		t.Error("expected an error appending below a text node")
	}
	br := NewElement("br")
	br.SetSelfClosing(true)
	if err := br.AsNode().AppendChild(NewText("y").AsNode()); err == nil {
		t.Error("expected an error appending below a self-closing element")
	}
}

func TestReparentingMovesNode(t *testing.T) {
	first := NewElement("p").AsNode()
	second := NewElement("p").AsNode()
	text := NewText("x").AsNode()
	first.AppendChild(text)

	if err := second.AppendChild(text); err != nil {
		t.Fatalf("AppendChild returned error: %v", err)
	}
	if first.HasChildren() {
		t.Error("old parent still owns the moved node")
	}
	if text.Parent() != second {
		t.Error("moved node's parent pointer not updated")
	}
}

func TestText(t *testing.T) {
	p := NewElement("p").AsNode()
	p.AppendChild(NewText("A ").AsNode())
	b := NewElement("b").AsNode()
	p.AppendChild(b)
	b.AppendChild(NewText("bold").AsNode())
	p.AppendChild(NewComment("not text").AsNode())
	p.AppendChild(NewText(" statement.").AsNode())

	if got := p.Text(); got != "A bold statement." {
		t.Errorf("Text() = %q, want %q", got, "A bold statement.")
	}
}

func TestClone(t *testing.T) {
	p := NewElement("p")
	p.SetAttr("id", "1")
	p.AsNode().AppendChild(NewText("x").AsNode())

	clone := p.AsNode().Clone()
	if clone.Parent() != nil {
		t.Error("clone should be detached")
	}
	clone.AppendChild(NewText("y").AsNode())
	if p.AsNode().ChildCount() != 1 {
		t.Error("mutating the clone affected the original")
	}
	if got := clone.Render(); got != `<p id="1">xy</p>` {
		t.Errorf("clone Render() = %q", got)
	}
}
