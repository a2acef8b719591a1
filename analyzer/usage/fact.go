package usage

import (
	"github.com/viant/phpda/inspector/name"
)

// Kind represents usage fact category
type Kind string

const (
	NamespaceReference Kind = "namespace"
	SuperglobalUse     Kind = "superglobal"
	DynamicInclude     Kind = "include"
)

// Fact represents a dependency relevant occurrence found in a unit
type Fact struct {
	Kind       Kind      `yaml:"kind"`
	Name       name.Name `yaml:"name,omitempty"`       // resolved identifier, empty for unresolved includes
	Unresolved bool      `yaml:"unresolved,omitempty"` // name could not be resolved or include path is computed
	Operator   string    `yaml:"operator,omitempty"`   // include, include_once, require, require_once
	Expression string    `yaml:"expression,omitempty"` // raw source of computed include path or unresolved name
	Line       int       `yaml:"line"`
	Column     int       `yaml:"column"`
}
