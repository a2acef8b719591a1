package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by Options.Validate errors
var ErrInvalidOptions = errors.New("invalid filter options")

// Order controls whether slicing or custom namespace filter runs first
type Order string

const (
	SliceFirst  Order = "slice-first"
	CustomFirst Order = "custom-first"
)

// NamespaceFilter reorders or selects name segments
type NamespaceFilter interface {
	Filter(parts []string) []string
}

// NamespaceFilterFunc adapts a function to NamespaceFilter
type NamespaceFilterFunc func(parts []string) []string

func (f NamespaceFilterFunc) Filter(parts []string) []string {
	return f(parts)
}

// Options represents identifier normalization rules, options are read only once a NodeName is created
type Options struct {
	// MinDepth drops names with fewer segments, 0 disables the rule
	MinDepth int `yaml:"minDepth,omitempty"`
	// ExcludePattern drops names matching Perl compatible pattern, PHP style delimiters are accepted
	ExcludePattern string `yaml:"excludePattern,omitempty"`
	// SliceOffset selects the first segment, negative counts from the end
	SliceOffset int `yaml:"sliceOffset,omitempty"`
	// SliceLength limits number of segments, 0 means through the end
	SliceLength int `yaml:"sliceLength,omitempty"`
	// Order sets precedence of slicing and NamespaceFilter, SliceFirst by default
	Order Order `yaml:"order,omitempty"`
	// NamespaceFilter is an optional custom strategy, it must be safe for concurrent use
	NamespaceFilter NamespaceFilter `yaml:"-"`
}

// Slicing returns true if slicing is configured
func (o *Options) Slicing() bool {
	return o.SliceOffset != 0 || o.SliceLength != 0
}

// Validate checks option bounds
func (o *Options) Validate() error {
	if o.MinDepth < 0 {
		return fmt.Errorf("%w: minDepth %d must not be negative", ErrInvalidOptions, o.MinDepth)
	}
	if o.SliceLength < 0 {
		return fmt.Errorf("%w: sliceLength %d must not be negative", ErrInvalidOptions, o.SliceLength)
	}
	switch o.Order {
	case "", SliceFirst, CustomFirst:
	default:
		return fmt.Errorf("%w: unsupported order %q", ErrInvalidOptions, o.Order)
	}
	if o.ExcludePattern != "" {
		if _, err := compilePattern(o.ExcludePattern); err != nil {
			return fmt.Errorf("%w: excludePattern: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}
