package css

import (
	"strings"

	"scrollmarks/pkg/html"
)

// MatchesSelector returns true if the node matches the complex selector.
func MatchesSelector(node *html.Node, selector Selector) bool {
	if node.Type != html.ElementNode {
		return false
	}
	if len(selector.Parts) == 0 {
		return false
	}

	// Start matching from the rightmost part (the target element)
	return matchesCompoundSelector(node, selector, len(selector.Parts)-1)
}

// QueryAll returns all elements under root matching any selector in the
// group, in document order. The root itself is never included.
func QueryAll(root *html.Node, group string) []*html.Node {
	selectors := make([]Selector, 0)
	for _, raw := range SplitSelectorGroup(group) {
		selectors = append(selectors, ParseSelector(raw))
	}

	var results []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n == root {
			return false
		}
		for _, sel := range selectors {
			if MatchesSelector(n, sel) {
				results = append(results, n)
				break // don't add same node twice for multiple matching selectors
			}
		}
		return false
	})
	return results
}

// QueryFirst returns the first element under root matching any selector in
// the group, or nil.
func QueryFirst(root *html.Node, group string) *html.Node {
	selectors := make([]Selector, 0)
	for _, raw := range SplitSelectorGroup(group) {
		selectors = append(selectors, ParseSelector(raw))
	}

	var result *html.Node
	root.Walk(func(n *html.Node) bool {
		if n == root {
			return false
		}
		for _, sel := range selectors {
			if MatchesSelector(n, sel) {
				result = n
				return true
			}
		}
		return false
	})
	return result
}

// matchesCompoundSelector checks if the node matches the selector at the given
// part index and all ancestor requirements.
func matchesCompoundSelector(node *html.Node, selector Selector, partIndex int) bool {
	if !matchesSelectorPart(node, selector.Parts[partIndex]) {
		return false
	}

	if partIndex == 0 {
		return true
	}

	combinator := selector.Combinators[partIndex-1]
	prevPartIndex := partIndex - 1

	switch combinator {
	case DescendantCombinator:
		return matchesAncestor(node, selector, prevPartIndex)

	case ChildCombinator:
		// Match direct parent only (skip synthetic document node)
		if node.Parent != nil && node.Parent.TagName != "document" {
			return matchesCompoundSelector(node.Parent, selector, prevPartIndex)
		}
		return false

	case AdjacentSiblingCombinator:
		prevSibling := previousElementSibling(node)
		if prevSibling != nil {
			return matchesCompoundSelector(prevSibling, selector, prevPartIndex)
		}
		return false

	case GeneralSiblingCombinator:
		for sibling := previousElementSibling(node); sibling != nil; sibling = previousElementSibling(sibling) {
			if matchesCompoundSelector(sibling, selector, prevPartIndex) {
				return true
			}
		}
		return false
	}

	return false
}

// matchesSelectorPart checks if a node matches a single compound selector.
func matchesSelectorPart(node *html.Node, part SelectorPart) bool {
	if part.Element != "" && part.Element != "*" {
		if node.TagName != part.Element {
			return false
		}
	}

	if part.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != part.ID {
			return false
		}
	}

	if len(part.Classes) > 0 {
		classAttr, ok := node.GetAttribute("class")
		if !ok {
			return false
		}
		nodeClasses := strings.Fields(classAttr)
		for _, requiredClass := range part.Classes {
			found := false
			for _, nodeClass := range nodeClasses {
				if nodeClass == requiredClass {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}

	for _, attrSel := range part.Attributes {
		if !matchesAttributeSelector(node, attrSel) {
			return false
		}
	}

	// Dynamic pseudo-classes never match in a static tree
	if len(part.PseudoClasses) > 0 {
		return false
	}

	return true
}

// matchesAttributeSelector checks if a node matches an attribute selector.
func matchesAttributeSelector(node *html.Node, attr AttributeSelector) bool {
	value, ok := node.GetAttribute(attr.Name)
	if !ok {
		return false
	}

	switch attr.Operator {
	case "":
		// Existence check only
		return true
	case "=":
		return value == attr.Value
	case "^=":
		return strings.HasPrefix(value, attr.Value)
	case "$=":
		return strings.HasSuffix(value, attr.Value)
	case "*=":
		return strings.Contains(value, attr.Value)
	case "~=":
		for _, word := range strings.Fields(value) {
			if word == attr.Value {
				return true
			}
		}
		return false
	case "|=":
		return value == attr.Value || strings.HasPrefix(value, attr.Value+"-")
	}

	return false
}

// matchesAncestor checks if any ancestor matches the selector part.
func matchesAncestor(node *html.Node, selector Selector, partIndex int) bool {
	for ancestor := node.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor.Type == html.ElementNode && ancestor.TagName != "document" {
			if matchesCompoundSelector(ancestor, selector, partIndex) {
				return true
			}
		}
	}
	return false
}

// previousElementSibling returns the previous element sibling of a node.
func previousElementSibling(node *html.Node) *html.Node {
	if node.Parent == nil {
		return nil
	}

	var prev *html.Node
	for _, sibling := range node.Parent.Children {
		if sibling == node {
			return prev
		}
		if sibling.Type == html.ElementNode {
			prev = sibling
		}
	}
	return nil
}
