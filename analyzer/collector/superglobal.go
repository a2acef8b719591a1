package collector

import (
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/name"
	"github.com/viant/phpda/inspector/php"
)

// Superglobals lists reserved PHP request and environment variables
var Superglobals = map[string]bool{
	"GLOBALS":  true,
	"_SERVER":  true,
	"_GET":     true,
	"_POST":    true,
	"_FILES":   true,
	"_COOKIE":  true,
	"_SESSION": true,
	"_REQUEST": true,
	"_ENV":     true,
}

// Superglobal collects reads and writes of superglobal variables
type Superglobal struct{}

// NewSuperglobal creates superglobal collector
func NewSuperglobal() *Superglobal {
	return &Superglobal{}
}

func (c *Superglobal) Name() string {
	return "superglobal"
}

func (c *Superglobal) Collect(node *php.Node, acc *usage.Accumulator) {
	if node.Kind != php.KindVariable || !Superglobals[node.Variable] {
		return
	}
	fact := newFact(usage.SuperglobalUse, node)
	fact.Name = name.New(node.Variable)
	acc.Add(fact)
}
