package php

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/phpda/inspector/name"
	"strconv"
	"strings"
	"unicode"
)

// Kind represents a node variant relevant to dependency collection
type Kind int

const (
	KindOther Kind = iota
	KindNamespace
	KindUse
	KindName
	KindVariable
	KindInclude
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindUse:
		return "use"
	case KindName:
		return "name"
	case KindVariable:
		return "variable"
	case KindInclude:
		return "include"
	}
	return "other"
}

// UseKind represents import flavour of a use clause
type UseKind string

const (
	UseClass    UseKind = "class"
	UseFunction UseKind = "function"
	UseConst    UseKind = "const"
)

// Position represents 1-based source location
type Position struct {
	Line   int `yaml:"line"`
	Column int `yaml:"column"`
}

// Include represents include or require operand
type Include struct {
	Operator string // include, include_once, require, require_once
	Literal  bool
	Path     string // literal path or raw expression text
}

// Node represents a visited syntax node, Kind selects which fields are set
type Node struct {
	Kind     Kind
	Type     string
	Position Position
	Text     string

	Name           name.Name
	FullyQualified bool
	Relative       bool
	Alias          string
	UseKind        UseKind
	Resolved       bool

	Variable string
	Include  *Include
}

var referenceParents = map[string]bool{
	"object_creation_expression": true,
	"base_clause":                true,
	"class_interface_clause":     true,
	"named_type":                 true,
	"type_list":                  true,
	"use_declaration":            true,
	"attribute":                  true,
}

var scopeParents = map[string]bool{
	"scoped_call_expression":            true,
	"class_constant_access_expression":  true,
	"scoped_property_access_expression": true,
}

var includeTypes = map[string]string{
	"include_expression":      "include",
	"include_once_expression": "include_once",
	"require_expression":      "require",
	"require_once_expression": "require_once",
}

// Classify converts tree-sitter node into a tagged Node
func Classify(node *sitter.Node, src []byte) *Node {
	point := node.StartPoint()
	ret := &Node{
		Kind:     KindOther,
		Type:     node.Type(),
		Position: Position{Line: int(point.Row) + 1, Column: int(point.Column) + 1},
	}
	switch ret.Type {
	case "namespace_definition":
		ret.Kind = KindNamespace
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			ret.Text = compact(nameNode.Content(src))
			ret.Name = name.Parse(ret.Text)
		}
		ret.Resolved = true
	case "namespace_use_clause", "namespace_use_group_clause":
		classifyUse(ret, node, src)
	case "name", "qualified_name":
		if parent := node.Parent(); parent != nil && isReference(node, parent) {
			ret.Kind = KindName
			setName(ret, node.Content(src))
		}
	case "variable_name":
		if isPropertyName(node) {
			break
		}
		ret.Kind = KindVariable
		ret.Text = node.Content(src)
		ret.Variable = strings.TrimPrefix(ret.Text, "$")
	default:
		if operator, ok := includeTypes[ret.Type]; ok {
			ret.Kind = KindInclude
			ret.Text = node.Content(src)
			ret.Include = classifyInclude(operator, node, src)
		}
	}
	return ret
}

func setName(node *Node, text string) {
	node.Text = compact(text)
	lower := strings.ToLower(node.Text)
	switch {
	case strings.HasPrefix(node.Text, name.Separator):
		node.FullyQualified = true
	case strings.HasPrefix(lower, "namespace"+name.Separator):
		node.Relative = true
		node.Name = name.Parse(node.Text[len("namespace"):])
		return
	}
	node.Name = name.Parse(node.Text)
}

func classifyUse(ret *Node, node *sitter.Node, src []byte) {
	ret.Kind = KindUse
	ret.UseKind = UseClass
	var target *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "name", "qualified_name", "namespace_name":
			if target == nil {
				target = child
			} else if ret.Alias == "" {
				ret.Alias = child.Content(src)
			}
		case "namespace_aliasing_clause":
			if aliasNode := child.NamedChild(0); aliasNode != nil {
				ret.Alias = aliasNode.Content(src)
			}
		}
	}
	if aliasNode := node.ChildByFieldName("alias"); aliasNode != nil {
		ret.Alias = aliasNode.Content(src)
	}
	if target == nil {
		return
	}
	ret.Text = compact(target.Content(src))
	ret.Name = name.Parse(ret.Text)
	ret.FullyQualified = true
	if kind := useKeyword(node); kind != "" {
		ret.UseKind = kind
	}

	parent := node.Parent()
	if parent == nil || parent.Type() != "namespace_use_group" {
		if parent != nil && parent.Type() == "namespace_use_declaration" {
			if kind := useKeyword(parent); kind != "" {
				ret.UseKind = kind
			}
		}
		return
	}
	declaration := parent.Parent()
	if declaration == nil {
		return
	}
	if kind := useKeyword(declaration); kind != "" {
		ret.UseKind = kind
	}
	for i := 0; i < int(declaration.NamedChildCount()); i++ {
		child := declaration.NamedChild(i)
		if child.Type() == "namespace_name" {
			ret.Name = name.Parse(compact(child.Content(src))).Append(ret.Name)
			ret.Text = ret.Name.String()
			break
		}
	}
}

func useKeyword(node *sitter.Node) UseKind {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || child.IsNamed() {
			continue
		}
		switch strings.ToLower(child.Type()) {
		case "function":
			return UseFunction
		case "const":
			return UseConst
		}
	}
	return ""
}

func classifyInclude(operator string, node *sitter.Node, src []byte) *Include {
	ret := &Include{Operator: operator}
	operand := node.NamedChild(0)
	for operand != nil && operand.Type() == "parenthesized_expression" {
		operand = operand.NamedChild(0)
	}
	if operand == nil {
		return ret
	}
	text := operand.Content(src)
	ret.Path = text
	switch operand.Type() {
	case "string":
		ret.Literal = true
		ret.Path = unescapeSingle(unquote(text, '\''))
	case "encapsed_string":
		if isPlainString(operand) {
			ret.Literal = true
			ret.Path = unescapeDouble(unquote(text, '"'))
		}
	}
	return ret
}

func isPlainString(node *sitter.Node) bool {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		switch node.NamedChild(i).Type() {
		case "string_content", "string_value", "escape_sequence":
		default:
			return false
		}
	}
	return true
}

func unquote(text string, quote byte) string {
	text = strings.TrimLeft(text, "bB")
	if len(text) >= 2 && text[0] == quote && text[len(text)-1] == quote {
		return text[1 : len(text)-1]
	}
	return text
}

// unescapeSingle decodes the two escapes of a single quoted literal
func unescapeSingle(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	return strings.NewReplacer(`\\`, `\`, `\'`, `'`).Replace(text)
}

var doubleEscapes = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'e': 0x1b, 'f': '\f',
	'\\': '\\', '$': '$', '"': '"',
}

// unescapeDouble decodes double quoted literal escapes, unknown sequences are kept as written
func unescapeDouble(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var builder strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 == len(text) {
			builder.WriteByte(text[i])
			continue
		}
		next := text[i+1]
		if decoded, ok := doubleEscapes[next]; ok {
			builder.WriteByte(decoded)
			i++
			continue
		}
		switch {
		case next == 'x' && i+2 < len(text) && isHex(text[i+2]):
			end := i + 3
			if end < len(text) && isHex(text[end]) {
				end++
			}
			value, _ := strconv.ParseUint(text[i+2:end], 16, 8)
			builder.WriteByte(byte(value))
			i = end - 1
		case next >= '0' && next <= '7':
			end := i + 2
			for end < len(text) && end < i+4 && text[end] >= '0' && text[end] <= '7' {
				end++
			}
			value, _ := strconv.ParseUint(text[i+1:end], 8, 16)
			builder.WriteByte(byte(value))
			i = end - 1
		case next == 'u' && i+2 < len(text) && text[i+2] == '{':
			closing := strings.IndexByte(text[i+3:], '}')
			value, err := strconv.ParseUint(text[i+3:i+3+max(closing, 0)], 16, 32)
			if closing <= 0 || err != nil {
				builder.WriteByte(text[i])
				continue
			}
			builder.WriteRune(rune(value))
			i += 3 + closing
		default:
			builder.WriteByte(text[i])
		}
	}
	return builder.String()
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isReference(node, parent *sitter.Node) bool {
	parentType := parent.Type()
	if referenceParents[parentType] {
		return true
	}
	if scopeParents[parentType] {
		return sameNode(parent.NamedChild(0), node)
	}
	if parentType == "binary_expression" && isInstanceOf(parent) {
		return sameNode(parent.NamedChild(int(parent.NamedChildCount())-1), node)
	}
	return false
}

// isPropertyName reports static property fetch names and property declarations, they are not variables
func isPropertyName(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "scoped_property_access_expression":
		return !sameNode(parent.NamedChild(0), node)
	case "property_element", "property_declaration":
		return true
	}
	return false
}

func isInstanceOf(node *sitter.Node) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && !child.IsNamed() && strings.EqualFold(child.Type(), "instanceof") {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

// compact removes whitespace tree-sitter keeps inside qualified names
func compact(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
}
