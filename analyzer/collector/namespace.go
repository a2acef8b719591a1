package collector

import (
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/php"
)

// Namespace collects class and namespace references, including class imports
type Namespace struct{}

// NewNamespace creates namespace reference collector
func NewNamespace() *Namespace {
	return &Namespace{}
}

func (c *Namespace) Name() string {
	return "namespace"
}

func (c *Namespace) Collect(node *php.Node, acc *usage.Accumulator) {
	switch node.Kind {
	case php.KindUse:
		if node.UseKind != php.UseClass {
			return
		}
	case php.KindName:
	default:
		return
	}
	if node.Name.IsEmpty() {
		return
	}
	fact := newFact(usage.NamespaceReference, node)
	fact.Name = node.Name
	if !node.Resolved {
		fact.Unresolved = true
		fact.Expression = node.Text
	}
	acc.Add(fact)
}
