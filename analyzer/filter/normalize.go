package filter

import (
	"context"
	"github.com/viant/phpda/analyzer/usage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"runtime"
)

var tracer = otel.Tracer("phpda.filter")

// Normalized represents a fact with its graph node key
type Normalized struct {
	Fact    usage.Fact `yaml:",inline"`
	Key     string     `yaml:"key,omitempty"`
	Dropped bool       `yaml:"dropped,omitempty"`
	Reason  Reason     `yaml:"reason,omitempty"`
}

// NormalizeFact computes a key for a single fact. Namespace references go through the filter,
// superglobals and literal includes keep their name, computed includes get no key
func (f *NodeName) NormalizeFact(fact *usage.Fact) *Normalized {
	ret := &Normalized{Fact: *fact}
	switch {
	case fact.Kind == usage.NamespaceReference:
		ret.Key, ret.Reason = f.Explain(fact.Name)
		ret.Dropped = ret.Reason != ReasonNone
	case fact.Name.IsEmpty():
	default:
		ret.Key = fact.Name.String()
	}
	return ret
}

// Normalize computes keys for facts in parallel, output order matches input order
func Normalize(ctx context.Context, f *NodeName, facts []*usage.Fact) ([]*Normalized, error) {
	ctx, span := tracer.Start(ctx, "filter.Normalize",
		trace.WithAttributes(attribute.Int("fact_count", len(facts))))
	defer span.End()

	ret := make([]*Normalized, len(facts))
	if len(facts) == 0 {
		return ret, nil
	}
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(facts) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(facts); start += chunk {
		from, to := start, min(start+chunk, len(facts))
		g.Go(func() error {
			for i := from; i < to; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				ret[i] = f.NormalizeFact(facts[i])
				recordOutcome(ret[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return ret, nil
}

// Keys returns distinct kept keys in first seen order
func Keys(items []*Normalized) []string {
	seen := map[string]bool{}
	var ret []string
	for _, item := range items {
		if item.Key == "" || seen[item.Key] {
			continue
		}
		seen[item.Key] = true
		ret = append(ret, item.Key)
	}
	return ret
}
