package css

import (
	"strings"
)

// Selector represents a parsed complex selector: one or more compound parts
// joined by combinators. Parts[i] and Parts[i+1] are related by
// Combinators[i].
type Selector struct {
	Raw         string
	Parts       []SelectorPart
	Combinators []Combinator
}

// SelectorPart is one compound selector: element, id, classes, attribute
// selectors and pseudo-classes that must all match the same node.
type SelectorPart struct {
	Element       string // "" or "*" matches any element
	ID            string
	Classes       []string
	Attributes    []AttributeSelector
	PseudoClasses []string
}

// AttributeSelector matches against one attribute, e.g. [data-scroll-color]
// or [rel~="stylesheet"].
type AttributeSelector struct {
	Name     string
	Operator string // "", "=", "^=", "$=", "*=", "~=", "|="
	Value    string
}

type Combinator int

const (
	DescendantCombinator Combinator = iota // whitespace
	ChildCombinator                        // >
	AdjacentSiblingCombinator              // +
	GeneralSiblingCombinator               // ~
)

// SplitSelectorGroup splits a selector group like "a, [data-x], .b" on
// top-level commas, respecting brackets.
func SplitSelectorGroup(group string) []string {
	var out []string
	var current strings.Builder
	depth := 0
	for _, ch := range group {
		switch {
		case ch == '[' || ch == '(':
			depth++
			current.WriteRune(ch)
		case ch == ']' || ch == ')':
			depth--
			current.WriteRune(ch)
		case ch == ',' && depth == 0:
			if s := strings.TrimSpace(current.String()); s != "" {
				out = append(out, s)
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// ParseSelector parses a single complex selector. Malformed trailing input
// is dropped rather than reported; a selector with no parts never matches.
func ParseSelector(raw string) Selector {
	sel := Selector{Raw: raw}
	tokens := tokenizeSelector(raw)

	expectPart := true
	for _, tok := range tokens {
		switch tok {
		case ">", "+", "~", " ":
			if expectPart {
				// combinator with no left-hand part; selector is broken
				return Selector{Raw: raw}
			}
			sel.Combinators = append(sel.Combinators, combinatorFor(tok))
			expectPart = true
		default:
			sel.Parts = append(sel.Parts, parseCompound(tok))
			expectPart = false
		}
	}
	if expectPart && len(sel.Combinators) > 0 {
		// trailing combinator
		return Selector{Raw: raw}
	}
	return sel
}

func combinatorFor(tok string) Combinator {
	switch tok {
	case ">":
		return ChildCombinator
	case "+":
		return AdjacentSiblingCombinator
	case "~":
		return GeneralSiblingCombinator
	}
	return DescendantCombinator
}

// tokenizeSelector splits a selector into compound parts and combinator
// tokens. Whitespace around explicit combinators is not itself a combinator.
func tokenizeSelector(raw string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	pendingSpace := false

	flush := func() {
		if current.Len() > 0 {
			if pendingSpace {
				tokens = append(tokens, " ")
				pendingSpace = false
			}
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, ch := range raw {
		switch {
		case ch == '[':
			depth++
			current.WriteRune(ch)
		case ch == ']':
			depth--
			current.WriteRune(ch)
		case depth > 0:
			current.WriteRune(ch)
		case ch == ' ' || ch == '\t':
			if current.Len() > 0 {
				flush()
				pendingSpace = true
			}
		case ch == '>' || ch == '+' || ch == '~':
			flush()
			pendingSpace = false
			tokens = append(tokens, string(ch))
		default:
			current.WriteRune(ch)
		}
	}
	flush()
	return tokens
}

// parseCompound parses one compound selector like div#id.a.b[x="y"]:hover.
func parseCompound(s string) SelectorPart {
	var part SelectorPart
	i := 0
	for i < len(s) {
		switch s[i] {
		case '#':
			j := i + 1
			for j < len(s) && !isSimpleBoundary(s[j]) {
				j++
			}
			part.ID = s[i+1 : j]
			i = j
		case '.':
			j := i + 1
			for j < len(s) && !isSimpleBoundary(s[j]) {
				j++
			}
			part.Classes = append(part.Classes, s[i+1:j])
			i = j
		case ':':
			j := i + 1
			for j < len(s) && !isSimpleBoundary(s[j]) {
				j++
			}
			part.PseudoClasses = append(part.PseudoClasses, s[i+1:j])
			i = j
		case '[':
			j := strings.IndexByte(s[i:], ']')
			if j < 0 {
				// Unterminated attribute selector. The empty attribute name
				// can never match, which disables the whole compound.
				part.Attributes = append(part.Attributes, AttributeSelector{})
				return part
			}
			part.Attributes = append(part.Attributes, parseAttributeSelector(s[i+1:i+j]))
			i += j + 1
		default:
			j := i
			for j < len(s) && !isSimpleBoundary(s[j]) {
				j++
			}
			part.Element = strings.ToLower(s[i:j])
			i = j
		}
	}
	return part
}

func isSimpleBoundary(c byte) bool {
	return c == '#' || c == '.' || c == ':' || c == '['
}

// parseAttributeSelector parses the inside of [...]: name, optional
// operator, optional quoted or bare value.
func parseAttributeSelector(s string) AttributeSelector {
	s = strings.TrimSpace(s)
	for _, op := range []string{"^=", "$=", "*=", "~=", "|=", "="} {
		if idx := strings.Index(s, op); idx >= 0 {
			name := strings.TrimSpace(s[:idx])
			value := strings.TrimSpace(s[idx+len(op):])
			value = strings.Trim(value, `"'`)
			return AttributeSelector{Name: strings.ToLower(name), Operator: op, Value: value}
		}
	}
	return AttributeSelector{Name: strings.ToLower(s)}
}
