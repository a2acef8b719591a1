package name

import (
	"gopkg.in/yaml.v3"
	"strings"
)

// Separator joins namespace segments in canonical PHP form
const Separator = "\\"

// Name represents a resolved PHP identifier as ordered namespace segments
type Name struct {
	parts []string
}

// New creates a name from segments, the slice is copied
func New(parts ...string) Name {
	if len(parts) == 0 {
		return Name{}
	}
	return Name{parts: append([]string(nil), parts...)}
}

// Parse splits a PHP identifier such as \Foo\Bar into segments, a leading separator is dropped
func Parse(text string) Name {
	text = strings.TrimPrefix(strings.TrimSpace(text), Separator)
	if text == "" {
		return Name{}
	}
	return Name{parts: strings.Split(text, Separator)}
}

// Parts returns a copy of name segments
func (n Name) Parts() []string {
	return append([]string(nil), n.parts...)
}

// Len returns number of segments
func (n Name) Len() int {
	return len(n.parts)
}

// IsEmpty returns true if name has no segments
func (n Name) IsEmpty() bool {
	return len(n.parts) == 0
}

// First returns the first segment or empty string
func (n Name) First() string {
	if len(n.parts) == 0 {
		return ""
	}
	return n.parts[0]
}

// Last returns the last segment or empty string
func (n Name) Last() string {
	if len(n.parts) == 0 {
		return ""
	}
	return n.parts[len(n.parts)-1]
}

// Append returns a new name with other segments appended
func (n Name) Append(other Name) Name {
	parts := make([]string, 0, len(n.parts)+len(other.parts))
	parts = append(parts, n.parts...)
	parts = append(parts, other.parts...)
	return Name{parts: parts}
}

// Slice returns name segments from offset up to end (exclusive), bounds are clamped
func (n Name) Slice(offset, end int) Name {
	if offset < 0 {
		offset = 0
	}
	if end > len(n.parts) {
		end = len(n.parts)
	}
	if offset >= end {
		return Name{}
	}
	return New(n.parts[offset:end]...)
}

// HasEmptySegment returns true if any segment is blank
func (n Name) HasEmptySegment() bool {
	for _, part := range n.parts {
		if part == "" {
			return true
		}
	}
	return false
}

// String returns canonical joined form
func (n Name) String() string {
	return strings.Join(n.parts, Separator)
}

// IsZero reports empty name, it drives yaml omitempty
func (n Name) IsZero() bool {
	return len(n.parts) == 0
}

// MarshalYAML encodes name as its canonical string
func (n Name) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// UnmarshalYAML decodes name from its canonical string
func (n *Name) UnmarshalYAML(value *yaml.Node) error {
	var text string
	if err := value.Decode(&text); err != nil {
		return err
	}
	*n = Parse(text)
	return nil
}
