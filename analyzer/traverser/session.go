package traverser

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/phpda/analyzer/collector"
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/php"
	"log/slog"
)

// Resolver expands names on a visited node before collectors see it
type Resolver interface {
	Resolve(node *php.Node) error
}

// Option configures a Session
type Option func(*Session)

// WithResolver sets a resolver factory, a fresh resolver is used for every run
func WithResolver(factory func() Resolver) Option {
	return func(s *Session) {
		s.newResolver = factory
	}
}

// WithCollectors replaces default collectors, order is preserved
func WithCollectors(collectors ...collector.Collector) Option {
	return func(s *Session) {
		s.collectors = collectors
	}
}

// WithLogger sets session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session walks a syntax tree resolving names and running collectors at every node
type Session struct {
	newResolver func() Resolver
	collectors  []collector.Collector
	logger      *slog.Logger
}

// New creates a session with name resolution and default collectors
func New(options ...Option) *Session {
	ret := &Session{
		newResolver: func() Resolver { return php.NewNameResolver() },
		collectors:  collector.Default(),
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Run walks tree in source order and returns collected facts, unresolved names never stop the walk
func (s *Session) Run(tree *php.Tree) []*usage.Fact {
	acc := usage.NewAccumulator()
	if tree == nil || tree.Root() == nil {
		return acc.Facts()
	}
	w := &walker{
		session:  s,
		tree:     tree,
		resolver: s.newResolver(),
		acc:      acc,
	}
	w.visit(tree.Root())
	return acc.Facts()
}

type walker struct {
	session  *Session
	tree     *php.Tree
	resolver Resolver
	acc      *usage.Accumulator
}

func (w *walker) visit(node *sitter.Node) {
	classified := php.Classify(node, w.tree.Source)
	if classified.Kind != php.KindOther {
		if err := w.resolver.Resolve(classified); err != nil {
			w.session.logger.Debug("name not resolved",
				slog.String("unit", w.tree.Unit),
				slog.Int("line", classified.Position.Line),
				slog.String("error", err.Error()))
		}
		for _, c := range w.session.collectors {
			c.Collect(classified, w.acc)
		}
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child != nil {
			w.visit(child)
		}
	}
}
