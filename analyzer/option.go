package analyzer

import (
	"github.com/viant/phpda/analyzer/collector"
	"github.com/viant/phpda/analyzer/traverser"
	"log/slog"
)

type Option func(*Analyzer)

// WithLogger sets analyzer logger, it is also passed to traversal sessions
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithConcurrency limits number of units analyzed in parallel by AnalyzeUnits
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithResolver replaces name resolver used by every traversal session
func WithResolver(factory func() traverser.Resolver) Option {
	return func(a *Analyzer) {
		a.sessionOptions = append(a.sessionOptions, traverser.WithResolver(factory))
	}
}

// WithCollectors replaces default collectors, collectors must be stateless
func WithCollectors(collectors ...collector.Collector) Option {
	return func(a *Analyzer) {
		a.sessionOptions = append(a.sessionOptions, traverser.WithCollectors(collectors...))
	}
}
