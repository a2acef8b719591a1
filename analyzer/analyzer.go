package analyzer

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/phpda/analyzer/traverser"
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/inspector/php"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"log/slog"
	"runtime"
	"time"
)

var tracer = otel.Tracer(tracerName)

// Result represents usage facts of one unit in source order
type Result struct {
	Unit     string        `yaml:"unit"`
	Checksum uint64        `yaml:"checksum"`
	Facts    []*usage.Fact `yaml:"facts,omitempty"`
}

// Failure represents a unit that could not be analyzed
type Failure struct {
	Unit string `yaml:"unit"`
	Err  error  `yaml:"-"`
}

// Report represents outcome of analyzing many units
type Report struct {
	Results  []*Result
	Failures []*Failure
}

// Analyzer parses PHP units and collects namespace, superglobal and include usage facts.
// It is safe for concurrent use, every unit gets its own parser and traversal session
type Analyzer struct {
	parser         *php.Parser
	sessionOptions []traverser.Option
	concurrency    int
	logger         *slog.Logger
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		parser:      php.NewParser(),
		concurrency: runtime.GOMAXPROCS(0),
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Analyze parses src and returns usage facts, malformed source returns *php.ParseError
func (a *Analyzer) Analyze(ctx context.Context, unit string, src []byte) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Analyzer.Analyze",
		trace.WithAttributes(
			attribute.String("unit", unit),
			attribute.Int("size_bytes", len(src)),
		),
	)
	defer span.End()
	start := time.Now()

	if err := ctx.Err(); err != nil {
		recordUnit("canceled", time.Since(start), nil)
		return nil, fmt.Errorf("analyze %s canceled: %w", unit, err)
	}
	tree, err := a.parser.Parse(ctx, unit, src)
	if err != nil {
		status := "parse_error"
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = "canceled"
		}
		recordUnit(status, time.Since(start), nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return nil, err
	}
	checksum, err := (&Unit{Path: unit, Source: src}).Checksum()
	if err != nil {
		return nil, err
	}

	options := append([]traverser.Option{traverser.WithLogger(a.logger)}, a.sessionOptions...)
	facts := traverser.New(options...).Run(tree)
	recordUnit("ok", time.Since(start), facts)
	span.SetAttributes(attribute.Int("fact_count", len(facts)))

	return &Result{Unit: unit, Checksum: checksum, Facts: facts}, nil
}

// AnalyzeUnits analyzes units concurrently. A unit that fails is reported in Failures and
// never stops other units, only context cancellation is returned as error
func (a *Analyzer) AnalyzeUnits(ctx context.Context, units []*Unit) (*Report, error) {
	ctx, span := tracer.Start(ctx, "Analyzer.AnalyzeUnits",
		trace.WithAttributes(attribute.Int("unit_count", len(units))))
	defer span.End()

	results := make([]*Result, len(units))
	failures := make([]*Failure, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, unit := range units {
		g.Go(func() error {
			result, err := a.Analyze(gctx, unit.Path, unit.Source)
			if err == nil {
				results[i] = result
				return nil
			}
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			a.logger.Warn("unit skipped",
				slog.String("unit", unit.Path),
				slog.String("error", err.Error()))
			failures[i] = &Failure{Unit: unit.Path, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("analyze units: %w", err)
	}

	report := &Report{}
	for i := range units {
		if results[i] != nil {
			report.Results = append(report.Results, results[i])
		}
		if failures[i] != nil {
			report.Failures = append(report.Failures, failures[i])
		}
	}
	span.SetAttributes(
		attribute.Int("result_count", len(report.Results)),
		attribute.Int("failure_count", len(report.Failures)),
	)
	return report, nil
}
