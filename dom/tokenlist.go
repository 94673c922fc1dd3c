package dom

import "strings"

// TokenList represents the space-separated tokens of a multi-valued
// attribute, such as class. It is a live view: reads split the current
// attribute value and writes join back to a single space-joined string.
type TokenList struct {
	element  *Element
	attrName string
}

func newTokenList(element *Element, attrName string) *TokenList {
	return &TokenList{element: element, attrName: attrName}
}

// tokens returns the current tokens, deduplicated, preserving order.
func (tl *TokenList) tokens() []string {
	value, ok := tl.element.Attr(tl.attrName)
	if !ok || value == "" {
		return nil
	}
	fields := strings.Fields(value)
	seen := make(map[string]bool, len(fields))
	result := make([]string, 0, len(fields))
	for _, tok := range fields {
		if !seen[tok] {
			seen[tok] = true
			result = append(result, tok)
		}
	}
	return result
}

func (tl *TokenList) setTokens(tokens []string) {
	tl.element.SetAttr(tl.attrName, strings.Join(tokens, " "))
}

// Len returns the number of tokens.
func (tl *TokenList) Len() int {
	return len(tl.tokens())
}

// Values returns the tokens as an ordered slice.
func (tl *TokenList) Values() []string {
	return tl.tokens()
}

// Contains reports whether the token is in the list.
func (tl *TokenList) Contains(token string) bool {
	for _, t := range tl.tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends tokens not already present.
func (tl *TokenList) Add(tokens ...string) {
	current := tl.tokens()
	for _, token := range tokens {
		found := false
		for _, t := range current {
			if t == token {
				found = true
				break
			}
		}
		if !found && token != "" {
			current = append(current, token)
		}
	}
	tl.setTokens(current)
}

// Remove deletes the given tokens if present.
func (tl *TokenList) Remove(tokens ...string) {
	current := tl.tokens()
	result := current[:0]
	for _, t := range current {
		keep := true
		for _, token := range tokens {
			if t == token {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, t)
		}
	}
	tl.setTokens(result)
}

// String returns the space-joined serialization of the list.
func (tl *TokenList) String() string {
	return strings.Join(tl.tokens(), " ")
}
