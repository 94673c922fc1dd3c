package rawlex

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/chrisuehlinger/ladle/engine"
)

// recorder captures events as readable strings for comparison.
type recorder struct {
	events []string
}

func attrString(attrs []engine.Attr) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf("%s=%q", a.Name, a.Value)
	}
	return strings.Join(parts, " ")
}

func (r *recorder) OpenTag(name string, attrs []engine.Attr) error {
	r.events = append(r.events, strings.TrimSpace("open "+name+" "+attrString(attrs)))
	return nil
}

func (r *recorder) CloseTag(name string) error {
	r.events = append(r.events, "close "+name)
	return nil
}

func (r *recorder) EmptyTag(name string, attrs []engine.Attr) error {
	r.events = append(r.events, strings.TrimSpace("empty "+name+" "+attrString(attrs)))
	return nil
}

func (r *recorder) Text(content string) error {
	r.events = append(r.events, "text "+content)
	return nil
}

func (r *recorder) Comment(content string) error {
	r.events = append(r.events, "comment "+content)
	return nil
}

func (r *recorder) Declaration(content string) error {
	r.events = append(r.events, "decl "+content)
	return nil
}

func tokenize(t *testing.T, input string) []string {
	t.Helper()
	rec := &recorder{}
	if err := New().Tokenize(input, rec); err != nil {
		t.Fatalf("Tokenize(%q) = %v", input, err)
	}
	return rec.events
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"nested tags",
			`<p>one <b>two</b></p>`,
			[]string{"open p", "text one ", "open b", "text two", "close b", "close p"},
		},
		{
			"attributes",
			`<a href="x" title='y' checked data=raw>z</a>`,
			[]string{`open a href="x" title="y" checked="" data="raw"`, "text z", "close a"},
		},
		{
			"uppercase names lowered",
			`<DIV CLASS="a"></DIV>`,
			[]string{`open div class="a"`, "close div"},
		},
		{
			"void tag",
			`<br>`,
			[]string{"empty br"},
		},
		{
			"self-closing syntax",
			`<foo/>`,
			[]string{"empty foo"},
		},
		{
			"comment",
			`a<!-- hi -->b`,
			[]string{"text a", "comment  hi ", "text b"},
		},
		{
			"unterminated comment swallows rest",
			`a<!-- hi <b>`,
			[]string{"text a", "comment  hi <b>"},
		},
		{
			"declaration",
			`<!DOCTYPE html><p></p>`,
			[]string{"decl DOCTYPE html", "open p", "close p"},
		},
		{
			"processing instruction",
			`<?xml version="1.0"?><p></p>`,
			[]string{`decl ?xml version="1.0"?`, "open p", "close p"},
		},
		{
			"unterminated processing instruction swallows rest",
			`a<?php echo`,
			[]string{"text a", "decl ?php echo"},
		},
		{
			"lone angle bracket is text",
			`a < b`,
			[]string{"text a ", "text <", "text  b"},
		},
		{
			"unterminated start tag is text",
			`ok<p class`,
			[]string{"text ok", "text <p class"},
		},
		{
			"unterminated quoted value runs to end",
			`<p id="x>y`,
			[]string{`open p id="x>y"`},
		},
		{
			"bogus close tag dropped",
			`<p></3></p>`,
			[]string{"open p", "close p"},
		},
		{
			"script content is verbatim",
			`<script>if (a < b) { x(); }</script>`,
			[]string{"open script", "text if (a < b) { x(); }", "close script"},
		},
		{
			"textarea close is case-insensitive",
			`<textarea>a <b> c</TEXTAREA>`,
			[]string{"open textarea", "text a <b> c", "close textarea"},
		},
		{
			"unterminated container swallows rest",
			`<style>p { color: red }`,
			[]string{"open style", "text p { color: red }"},
		},
	}
	for _, tt := range tests {
		if got := tokenize(t, tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s:\n got %q\nwant %q", tt.name, got, tt.want)
		}
	}
}

func TestNamedReferencesStayLiteral(t *testing.T) {
	got := tokenize(t, `<p>AT&T &amp; more</p>`)
	want := []string{"open p", "text AT&T &amp; more", "close p"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDecodeNumericRefs(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&#100;&#100;&#100;", "ddd"},
		{"&#x64;", "d"},
		{"&#X64;", "d"},
		{"pi&#241ata", "piñata"},
		{"&#10000000000000;", "\uFFFD"},
		{"&#0;", "\uFFFD"},
		{"&#xD834;", "\uFFFD"},
		{"&#12", "&#12"},
		{"&#x; ok", "&#x; ok"},
		{"&#; and &#100;", "&#; and d"},
		{"no refs", "no refs"},
	}
	for _, tt := range tests {
		if got := decodeNumericRefs(tt.in); got != tt.want {
			t.Errorf("decodeNumericRefs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumericRefsInAttrValues(t *testing.T) {
	got := tokenize(t, `<p title="&#100;oor">x</p>`)
	want := []string{`open p title="door"`, "text x", "close p"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCapabilities(t *testing.T) {
	caps := New().Capabilities()
	if !caps.SupportsSelectiveBuild {
		t.Error("SupportsSelectiveBuild = false, want true")
	}
	if caps.DecodesEntities {
		t.Error("DecodesEntities = true, want false")
	}
	if !caps.SelfClosingTags["br"] || caps.SelfClosingTags["p"] {
		t.Error("SelfClosingTags should contain br and not p")
	}
	if caps.StringContainers["textarea"] != engine.CDataText {
		t.Error("textarea should be a CDATA container")
	}
}
