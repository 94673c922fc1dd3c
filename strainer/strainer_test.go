package strainer

import (
	"testing"

	"github.com/chrisuehlinger/ladle/dom"
)

func TestNewRequiresCriteria(t *testing.T) {
	_, err := New()
	if _, ok := err.(*FilterError); !ok {
		t.Fatalf("New() error = %v, want *FilterError", err)
	}
}

func TestNewRejectsEmptyValueSets(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"empty name set", Name()},
		{"empty string name", Name("")},
		{"empty attr name", Attr("", Present())},
		{"empty attr one-of", Attr("class", OneOf())},
		{"empty text one-of", Text(OneOf())},
	}
	for _, tt := range tests {
		if _, err := New(tt.opt); err == nil {
			t.Errorf("%s: New() accepted invalid criteria", tt.name)
		}
	}
}

func TestNewRejectsContradictoryExactValues(t *testing.T) {
	_, err := New(Attr("id", Exact("a")), Attr("id", Exact("b")))
	if err == nil {
		t.Fatal("New() accepted an attribute required to equal two different values")
	}
}

func TestSameExactValueTwiceIsFine(t *testing.T) {
	if _, err := New(Attr("id", Exact("a")), Attr("id", Exact("a"))); err != nil {
		t.Fatalf("New() = %v, want nil", err)
	}
}

func TestMatchByName(t *testing.T) {
	s, err := New(Name("b", "i"))
	if err != nil {
		t.Fatal(err)
	}
	if !s.MatchElement("b", nil) {
		t.Error("b should match")
	}
	if !s.MatchElement("B", nil) {
		t.Error("name matching should be case-insensitive")
	}
	if s.MatchElement("p", nil) {
		t.Error("p should not match")
	}
}

func TestMatchByAttr(t *testing.T) {
	attrs := []dom.Attribute{{Name: "id", Value: "main"}, {Name: "class", Value: "big cool"}}

	s, _ := New(Attr("id", Present()))
	if !s.MatchElement("div", attrs) {
		t.Error("present id should match")
	}
	if s.MatchElement("div", nil) {
		t.Error("missing id should not match")
	}

	s, _ = New(Attr("class", Exact("cool")))
	if !s.MatchElement("div", attrs) {
		t.Error("exact should match a space-separated token")
	}

	s, _ = New(Attr("id", Substring("ai")))
	if !s.MatchElement("div", attrs) {
		t.Error("substring should match")
	}

	s, _ = New(Attr("id", OneOf("nav", "main")))
	if !s.MatchElement("div", attrs) {
		t.Error("one-of should match any listed value")
	}
	s, _ = New(Attr("id", OneOf("nav", "footer")))
	if s.MatchElement("div", attrs) {
		t.Error("one-of with no listed value present should not match")
	}
}

func TestCriteriaANDTogether(t *testing.T) {
	s, err := New(Name("div"), Attr("id", Exact("main")))
	if err != nil {
		t.Fatal(err)
	}
	attrs := []dom.Attribute{{Name: "id", Value: "main"}}
	if !s.MatchElement("div", attrs) {
		t.Error("both criteria hold, should match")
	}
	if s.MatchElement("span", attrs) {
		t.Error("name criterion fails, should not match")
	}
	if s.MatchElement("div", nil) {
		t.Error("attribute criterion fails, should not match")
	}
}

func TestMatchText(t *testing.T) {
	s, err := New(Text(Substring("bold")))
	if err != nil {
		t.Fatal(err)
	}
	if !s.MatchesText() {
		t.Error("MatchesText() = false, want true")
	}
	if !s.MatchText("A bold statement") {
		t.Error("text with the substring should match")
	}
	if s.MatchText("plain") {
		t.Error("text without the substring should not match")
	}

	s, _ = New(Name("b"))
	if s.MatchesText() {
		t.Error("name-only filter should carry no text criteria")
	}
	if s.MatchText("anything") {
		t.Error("a filter without text criteria matches no text")
	}
}
