package html

import (
	"sort"
	"strings"
)

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// MutationType classifies a change reported to document observers.
type MutationType int

const (
	MutationChildList MutationType = iota
	MutationAttributes
)

// Mutation describes one observed change to the document tree.
type Mutation struct {
	Type          MutationType
	Target        *Node
	AttributeName string // set for MutationAttributes
}

// Document owns the tree plus the page's styles and scripts. Styles injected
// at runtime live in a separate keyed registry so each injector can update or
// remove its own entry without touching author styles.
type Document struct {
	Root        *Node
	Stylesheets []string // CSS from <style> tags, in document order
	Scripts     []string // JavaScript from <script> tags

	scopedStyles map[string]string
	observers    []func(Mutation)
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Stylesheets:  make([]string, 0),
		Scripts:      make([]string, 0),
		scopedStyles: make(map[string]string),
	}
}

// DocumentElement returns the root element of the page content: the <html>
// element when present, otherwise the synthetic root itself.
func (d *Document) DocumentElement() *Node {
	for _, child := range d.Root.Children {
		if child.Type == ElementNode && child.TagName == "html" {
			return child
		}
	}
	return d.Root
}

// Observe registers a callback invoked synchronously after every mutation
// performed through the document-level mutators below.
func (d *Document) Observe(fn func(Mutation)) {
	d.observers = append(d.observers, fn)
}

func (d *Document) notify(m Mutation) {
	for _, fn := range d.observers {
		fn(m)
	}
}

// SetAttribute sets an attribute through the document so observers see the
// change. Direct map writes on Node bypass observation; construction-time
// code may use them, runtime mutation must not.
func (d *Document) SetAttribute(n *Node, name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
	d.notify(Mutation{Type: MutationAttributes, Target: n, AttributeName: name})
}

// RemoveAttribute removes an attribute and reports the change.
func (d *Document) RemoveAttribute(n *Node, name string) {
	if n.Attributes == nil {
		return
	}
	if _, ok := n.Attributes[name]; !ok {
		return
	}
	delete(n.Attributes, name)
	d.notify(Mutation{Type: MutationAttributes, Target: n, AttributeName: name})
}

// AppendChild adds child under parent and reports the change.
func (d *Document) AppendChild(parent, child *Node) {
	parent.AddChild(child)
	d.notify(Mutation{Type: MutationChildList, Target: parent})
}

// RemoveNode removes child from parent and reports the change. Returns nil
// if child is not a child of parent.
func (d *Document) RemoveNode(parent, child *Node) *Node {
	removed := parent.RemoveChild(child)
	if removed != nil {
		d.notify(Mutation{Type: MutationChildList, Target: parent})
	}
	return removed
}

// SetScopedStyle installs or replaces the style text registered under id.
func (d *Document) SetScopedStyle(id, css string) {
	d.scopedStyles[id] = css
}

// RemoveScopedStyle deletes the style registered under id, if any.
func (d *Document) RemoveScopedStyle(id string) {
	delete(d.scopedStyles, id)
}

// ScopedStyle returns the style text registered under id.
func (d *Document) ScopedStyle(id string) (string, bool) {
	css, ok := d.scopedStyles[id]
	return css, ok
}

// ScopedStyleIDs returns all registered style ids in sorted order.
func (d *Document) ScopedStyleIDs() []string {
	ids := make([]string, 0, len(d.scopedStyles))
	for id := range d.scopedStyles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// AddChild adds a child node and sets up the parent relationship.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child.
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	textNode := &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	}
	n.Children = append(n.Children, textNode)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Walk performs a depth-first walk over element nodes in document order.
// The callback returns true to stop the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n.Type == ElementNode {
		if fn(n) {
			return true
		}
	}
	for _, child := range n.Children {
		if child.Walk(fn) {
			return true
		}
	}
	return false
}

// Serialize returns the serialized HTML of all child nodes, but not the
// node's own tags.
func (n *Node) Serialize() string {
	var sb strings.Builder
	for _, child := range n.Children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(escapeHTML(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.TagName)

	// Sort attributes for deterministic output
	if len(n.Attributes) > 0 {
		keys := make([]string, 0, len(n.Attributes))
		for k := range n.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteString(`="`)
			sb.WriteString(escapeAttr(n.Attributes[k]))
			sb.WriteByte('"')
		}
	}

	if isVoidElement(n.TagName) {
		sb.WriteString(">")
		return
	}

	sb.WriteByte('>')
	for _, child := range n.Children {
		serializeNode(sb, child)
	}
	sb.WriteString("</")
	sb.WriteString(n.TagName)
	sb.WriteByte('>')
}

func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}
