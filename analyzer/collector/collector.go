package collector

import (
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/php"
)

// Collector reacts to visited nodes and records usage facts
type Collector interface {
	// Name returns collector name used in logs
	Name() string
	// Collect inspects a resolved node and appends zero or more facts
	Collect(node *php.Node, acc *usage.Accumulator)
}

// Default returns collectors in traversal order: namespace, superglobal, include
func Default() []Collector {
	return []Collector{
		NewNamespace(),
		NewSuperglobal(),
		NewInclude(),
	}
}

func newFact(kind usage.Kind, node *php.Node) *usage.Fact {
	return &usage.Fact{
		Kind:   kind,
		Line:   node.Position.Line,
		Column: node.Position.Column,
	}
}
