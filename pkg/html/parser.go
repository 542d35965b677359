package html

import (
	"fmt"
)

type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node // open-element stack
}

func NewParser(html string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(html),
		doc:       NewDocument(),
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			// <style> and <script> are raw text elements; their content is
			// collected on the document, not added to the tree.
			if token.TagName == "style" {
				p.doc.Stylesheets = append(p.doc.Stylesheets, p.tokenizer.ReadRawUntil("style"))
				continue
			}
			if token.TagName == "script" {
				p.doc.Scripts = append(p.doc.Scripts, p.tokenizer.ReadRawUntil("script"))
				continue
			}

			node := &Node{
				Type:       ElementNode,
				TagName:    token.TagName,
				Attributes: token.Attributes,
				Children:   make([]*Node, 0),
			}
			p.currentParent().AddChild(node)

			if !token.SelfClosing && !p.isSelfClosing(token.TagName) {
				p.push(node)
			}

		case TokenText:
			if token.Text != "" {
				p.currentParent().AppendText(token.Text)
			}

		case TokenEndTag:
			p.closeTag(token.TagName)
		}
	}

	return p.doc, nil
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

// push adds a node to the stack
func (p *Parser) push(node *Node) {
	p.stack = append(p.stack, node)
}

// isSelfClosing returns true for void/self-closing HTML elements
func (p *Parser) isSelfClosing(tagName string) bool {
	return isVoidElement(tagName)
}

// closeTag pops the stack until the matching tag is found and closed
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
	// Tag not found on stack; ignore the end tag
}

func Parse(html string) (*Document, error) {
	parser := NewParser(html)
	return parser.Parse()
}
