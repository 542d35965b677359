package layout

import (
	"scrollmarks/pkg/css"
	"scrollmarks/pkg/html"
)

// DefaultLineHeight is the height contributed by one text node when the
// containing element has no explicit height.
const DefaultLineHeight = 20.0

// Box holds the resolved vertical metrics of one element: its top offset
// relative to the document origin and its outer height.
type Box struct {
	Node   *html.Node
	Top    float64
	Height float64
}

// Result is the outcome of one measurement pass over a document.
type Result struct {
	boxes        map[*html.Node]*Box
	ScrollHeight float64
}

// BoxFor returns the measured box for node, if the node was measured.
func (r *Result) BoxFor(node *html.Node) (*Box, bool) {
	box, ok := r.boxes[node]
	return box, ok
}

// Engine performs the vertical block-flow measurement this system needs:
// elements stack top to bottom, an element's height comes from its inline
// style or from its content. No horizontal layout, no floats, no inline flow.
type Engine struct {
	viewportWidth  float64
	viewportHeight float64
}

func NewEngine(viewportWidth, viewportHeight float64) *Engine {
	return &Engine{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
	}
}

// ViewportHeight returns the configured viewport height.
func (e *Engine) ViewportHeight() float64 {
	return e.viewportHeight
}

// Measure computes document-relative vertical metrics for every element in
// the tree and the resulting total scroll height.
func (e *Engine) Measure(doc *html.Document) *Result {
	result := &Result{boxes: make(map[*html.Node]*Box)}

	y := 0.0
	for _, child := range contentChildren(doc) {
		h := e.measureElement(child, y, result)
		y += h
	}
	result.ScrollHeight = y
	return result
}

// contentChildren returns the elements that participate in vertical flow:
// the children of <body> when present, else the document's top-level
// elements.
func contentChildren(doc *html.Document) []*html.Node {
	if body := findTag(doc.Root, "body"); body != nil {
		return elementChildren(body)
	}
	return elementChildren(doc.Root)
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, child := range n.Children {
		if child.Type != html.ElementNode {
			continue
		}
		if isMetadataTag(child.TagName) {
			continue
		}
		out = append(out, child)
	}
	return out
}

func findTag(n *html.Node, tag string) *html.Node {
	var found *html.Node
	n.Walk(func(node *html.Node) bool {
		if node.TagName == tag {
			found = node
			return true
		}
		return false
	})
	return found
}

func isMetadataTag(tag string) bool {
	switch tag {
	case "head", "title", "meta", "link", "base":
		return true
	}
	return false
}

// measureElement records the box for node at the given top offset and
// returns its height. Children are measured inside regardless of whether the
// element's own height is explicit, so marked descendants always get
// geometry.
func (e *Engine) measureElement(node *html.Node, top float64, result *Result) float64 {
	explicit, hasExplicit := explicitHeight(node)

	contentHeight := 0.0
	y := top
	for _, child := range node.Children {
		switch child.Type {
		case html.ElementNode:
			if isMetadataTag(child.TagName) {
				continue
			}
			h := e.measureElement(child, y, result)
			y += h
			contentHeight += h
		case html.TextNode:
			y += DefaultLineHeight
			contentHeight += DefaultLineHeight
		}
	}

	height := contentHeight
	if hasExplicit {
		height = explicit
	}

	result.boxes[node] = &Box{Node: node, Top: top, Height: height}
	return height
}

// explicitHeight reads a pixel height from the element's inline style.
func explicitHeight(node *html.Node) (float64, bool) {
	styleAttr, ok := node.GetAttribute("style")
	if !ok {
		return 0, false
	}
	props := css.ParseDeclarations(styleAttr)
	val, ok := props["height"]
	if !ok {
		return 0, false
	}
	h, ok := css.ParseLength(val)
	if !ok || h < 0 {
		return 0, false
	}
	return h, true
}
