package php

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by ParseError
	ErrSyntax = errors.New("php syntax error")
	// ErrUnresolved is returned by NameResolver when a name can not be expanded
	ErrUnresolved = errors.New("unresolved name")
)

// ParseError identifies malformed source in a single unit
type ParseError struct {
	Unit    string
	Line    int
	Column  int
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("failed to parse %s: %v", e.Unit, e.Err)
	}
	return fmt.Sprintf("failed to parse %s:%d:%d near %q: %v", e.Unit, e.Line, e.Column, e.Snippet, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
