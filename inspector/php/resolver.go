package php

import (
	"fmt"
	"github.com/viant/phpda/inspector/name"
	"strings"
)

// specialNames are never prefixed with a namespace
var specialNames = map[string]bool{
	"self":   true,
	"parent": true,
	"static": true,
	"null":   true,
	"true":   true,
	"false":  true,
}

// NameResolver expands class references to fully qualified names,
// it tracks the current namespace and use aliases of one traversal
type NameResolver struct {
	namespace name.Name
	aliases   map[string]name.Name
}

// NewNameResolver creates a resolver starting in the global namespace
func NewNameResolver() *NameResolver {
	return &NameResolver{aliases: map[string]name.Name{}}
}

// Namespace returns current namespace
func (r *NameResolver) Namespace() name.Name {
	return r.namespace
}

// Resolve updates resolver state or expands node name in place,
// ErrUnresolved leaves node name as written
func (r *NameResolver) Resolve(node *Node) error {
	switch node.Kind {
	case KindNamespace:
		r.namespace = node.Name
		r.aliases = map[string]name.Name{}
		return nil
	case KindUse:
		return r.use(node)
	case KindName:
		return r.reference(node)
	}
	return nil
}

func (r *NameResolver) use(node *Node) error {
	if node.Name.IsEmpty() || node.Name.HasEmptySegment() {
		return fmt.Errorf("%w: use %q", ErrUnresolved, node.Text)
	}
	node.Resolved = true
	if node.UseKind != UseClass {
		return nil
	}
	alias := node.Alias
	if alias == "" {
		alias = node.Name.Last()
	}
	r.aliases[strings.ToLower(alias)] = node.Name
	return nil
}

func (r *NameResolver) reference(node *Node) error {
	if node.Name.IsEmpty() || node.Name.HasEmptySegment() {
		return fmt.Errorf("%w: %q", ErrUnresolved, node.Text)
	}
	switch {
	case node.FullyQualified:
	case node.Relative:
		node.Name = r.namespace.Append(node.Name)
	case node.Name.Len() == 1 && specialNames[strings.ToLower(node.Name.First())]:
	default:
		if target, ok := r.aliases[strings.ToLower(node.Name.First())]; ok {
			rest := node.Name.Slice(1, node.Name.Len())
			node.Name = target.Append(rest)
		} else {
			node.Name = r.namespace.Append(node.Name)
		}
	}
	node.Resolved = true
	return nil
}
