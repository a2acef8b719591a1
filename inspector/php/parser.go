package php

import (
	"context"
	"fmt"
	sitter "github.com/smacker/go-tree-sitter"
	phpsitter "github.com/smacker/go-tree-sitter/php"
	"unicode/utf8"
)

const snippetLimit = 40

// Tree represents a parsed PHP unit
type Tree struct {
	Unit   string
	Source []byte
	root   *sitter.Node
}

// Root returns tree-sitter root node
func (t *Tree) Root() *sitter.Node {
	return t.root
}

// Parser parses PHP source with tree-sitter, it is safe for concurrent use,
// each call creates its own tree-sitter parser
type Parser struct{}

// NewParser creates a PHP parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses src into a Tree, syntax errors are reported as *ParseError
func (p *Parser) Parse(ctx context.Context, unit string, src []byte) (*Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(phpsitter.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", unit, ctxErr)
		}
		return nil, &ParseError{Unit: unit, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
	}
	root := tree.RootNode()
	if root == nil {
		return nil, &ParseError{Unit: unit, Err: fmt.Errorf("%w: empty tree", ErrSyntax)}
	}
	if root.HasError() {
		return nil, syntaxError(unit, root, src)
	}
	return &Tree{Unit: unit, Source: src, root: root}, nil
}

// syntaxError locates the first error or missing node
func syntaxError(unit string, root *sitter.Node, src []byte) *ParseError {
	ret := &ParseError{Unit: unit, Err: ErrSyntax}
	node := firstErrorNode(root)
	if node == nil {
		return ret
	}
	point := node.StartPoint()
	ret.Line = int(point.Row) + 1
	ret.Column = int(point.Column) + 1
	snippet := node.Content(src)
	if node.IsMissing() {
		snippet = "missing " + node.Type()
	}
	ret.Snippet = truncate(snippet, snippetLimit)
	return ret
}

// truncate cuts text to at most limit bytes without splitting a rune
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	end := limit
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}
	return text[:end]
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}
