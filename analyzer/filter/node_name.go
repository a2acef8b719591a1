package filter

import (
	"fmt"
	"github.com/dlclark/regexp2"
	"github.com/viant/phpda/inspector/name"
	"log/slog"
	"strings"
)

// AggregationIndicator marks edges produced by a slicing filter
const AggregationIndicator = "slice"

// Reason explains why a name was dropped
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonReserved Reason = "reserved"
	ReasonMinDepth Reason = "min-depth"
	ReasonExcluded Reason = "excluded"
	ReasonSlice    Reason = "slice"
	ReasonEmpty    Reason = "empty"
)

var reservedNames = map[string]bool{
	"self":   true,
	"parent": true,
	"null":   true,
	"true":   true,
	"false":  true,
}

// Option configures NodeName
type Option func(*NodeName)

// WithLogger sets filter logger
func WithLogger(logger *slog.Logger) Option {
	return func(f *NodeName) {
		f.logger = logger
	}
}

// NodeName normalizes resolved names into graph node keys, it is safe for concurrent use
type NodeName struct {
	options Options
	exclude *regexp2.Regexp
	logger  *slog.Logger
}

// New creates a filter for validated options
func New(options Options, opts ...Option) (*NodeName, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.Order == "" {
		options.Order = SliceFirst
	}
	ret := &NodeName{options: options, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	if options.ExcludePattern != "" {
		re, err := compilePattern(options.ExcludePattern)
		if err != nil {
			return nil, fmt.Errorf("%w: excludePattern: %v", ErrInvalidOptions, err)
		}
		ret.exclude = re
	}
	return ret, nil
}

// AggregationIndicator returns the constant slice label
func (f *NodeName) AggregationIndicator() string {
	return AggregationIndicator
}

// Options returns filter options
func (f *NodeName) Options() Options {
	return f.options
}

// Filter returns normalized key or false when the name must not produce a graph node
func (f *NodeName) Filter(n name.Name) (string, bool) {
	key, reason := f.Explain(n)
	return key, reason == ReasonNone
}

// Explain returns normalized key or the rule that dropped the name
func (f *NodeName) Explain(n name.Name) (string, Reason) {
	text := n.String()
	if reservedNames[strings.ToLower(text)] {
		return "", ReasonReserved
	}
	if f.options.MinDepth > 0 && n.Len() < f.options.MinDepth {
		return "", ReasonMinDepth
	}
	if f.exclude != nil && f.excluded(text) {
		return "", ReasonExcluded
	}

	parts := n.Parts()
	if f.options.Order == CustomFirst {
		parts = f.custom(parts)
	}
	if f.options.Slicing() {
		if parts = f.slice(parts); len(parts) == 0 {
			return "", ReasonSlice
		}
	}
	if f.options.Order != CustomFirst {
		parts = f.custom(parts)
	}

	key := strings.Join(parts, name.Separator)
	if key == "" {
		return "", ReasonEmpty
	}
	return key, ReasonNone
}

func (f *NodeName) excluded(text string) bool {
	matched, err := f.exclude.MatchString(text)
	if err != nil {
		f.logger.Warn("exclude pattern not evaluated",
			slog.String("name", text),
			slog.String("pattern", f.options.ExcludePattern),
			slog.String("error", err.Error()))
		return false
	}
	return matched
}

func (f *NodeName) custom(parts []string) []string {
	if f.options.NamespaceFilter == nil {
		return parts
	}
	return f.options.NamespaceFilter.Filter(parts)
}

// slice selects SliceLength segments from SliceOffset, 0 length means through the end
func (f *NodeName) slice(parts []string) []string {
	offset := f.options.SliceOffset
	if offset < 0 {
		if offset += len(parts); offset < 0 {
			offset = 0
		}
	}
	if offset >= len(parts) {
		return nil
	}
	end := len(parts)
	if length := f.options.SliceLength; length > 0 && offset+length < end {
		end = offset + length
	}
	return parts[offset:end]
}
