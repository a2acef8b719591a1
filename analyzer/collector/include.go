package collector

import (
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/name"
	"github.com/viant/phpda/inspector/php"
)

// Include collects include and require expressions
type Include struct{}

// NewInclude creates dynamic include collector
func NewInclude() *Include {
	return &Include{}
}

func (c *Include) Name() string {
	return "include"
}

// Collect records literal paths as one segment names, computed paths get the unresolved marker
func (c *Include) Collect(node *php.Node, acc *usage.Accumulator) {
	if node.Kind != php.KindInclude || node.Include == nil {
		return
	}
	fact := newFact(usage.DynamicInclude, node)
	fact.Operator = node.Include.Operator
	if node.Include.Literal && node.Include.Path != "" {
		fact.Name = name.New(node.Include.Path)
	} else {
		fact.Unresolved = true
		fact.Expression = node.Include.Path
	}
	acc.Add(fact)
}
