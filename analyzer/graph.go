package analyzer

import (
	"context"
	"fmt"
	"github.com/viant/phpda/analyzer/filter"
	"github.com/viant/phpda/analyzer/usage"
	"gopkg.in/yaml.v3"
	"io"
	"sort"
)

// Node types of a dependency graph
const (
	NodeUnit       = "unit"
	NodeDependency = "dependency"
)

// GraphNode represents a unit or a normalized dependency
type GraphNode struct {
	ID   string `yaml:"id"`
	Type string `yaml:"type"`
}

// GraphEdge represents usage of a dependency by a unit, repeated usages are collapsed into Weight.
// Aggregation is set when the target is a sliced namespace standing for many references
type GraphEdge struct {
	Source      string     `yaml:"source"`
	Target      string     `yaml:"target"`
	Type        usage.Kind `yaml:"type"`
	Aggregation string     `yaml:"aggregation,omitempty"`
	Weight      int        `yaml:"weight"`
}

// Graph holds units, dependency nodes and the edges between them
type Graph struct {
	Nodes []GraphNode `yaml:"nodes"`
	Edges []GraphEdge `yaml:"edges"`
}

// GraphExporter sends a dependency graph to a storage backend
type GraphExporter interface {
	Export(ctx context.Context, graph *Graph) error
}

// BuildGraph normalizes facts of every analyzed unit with f and links units to kept keys.
// Dropped references and computed includes produce no edge
func BuildGraph(ctx context.Context, report *Report, f *filter.NodeName) (*Graph, error) {
	graph := &Graph{}
	options := f.Options()
	aggregation := ""
	if options.Slicing() {
		aggregation = f.AggregationIndicator()
	}
	seen := map[string]bool{}
	addNode := func(id, kind string) {
		key := kind + ":" + id
		if seen[key] {
			return
		}
		seen[key] = true
		graph.Nodes = append(graph.Nodes, GraphNode{ID: id, Type: kind})
	}
	for _, result := range report.Results {
		normalized, err := filter.Normalize(ctx, f, result.Facts)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize %v: %w", result.Unit, err)
		}
		addNode(result.Unit, NodeUnit)
		weights := map[GraphEdge]int{}
		var edges []GraphEdge
		for _, item := range normalized {
			if item.Key == "" {
				continue
			}
			addNode(item.Key, NodeDependency)
			edge := GraphEdge{Source: result.Unit, Target: item.Key, Type: item.Fact.Kind}
			if item.Fact.Kind == usage.NamespaceReference {
				edge.Aggregation = aggregation
			}
			if weights[edge] == 0 {
				edges = append(edges, edge)
			}
			weights[edge]++
		}
		for _, edge := range edges {
			edge.Weight = weights[edge]
			graph.Edges = append(graph.Edges, edge)
		}
	}
	sort.SliceStable(graph.Nodes, func(i, j int) bool {
		if graph.Nodes[i].Type != graph.Nodes[j].Type {
			return graph.Nodes[i].Type == NodeUnit
		}
		return graph.Nodes[i].ID < graph.Nodes[j].ID
	})
	return graph, nil
}

// YAMLExporter writes a graph as a YAML document
type YAMLExporter struct {
	Writer io.Writer
}

// Export encodes graph to writer
func (e *YAMLExporter) Export(ctx context.Context, graph *Graph) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	encoder := yaml.NewEncoder(e.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(graph); err != nil {
		return fmt.Errorf("failed to export graph: %w", err)
	}
	return encoder.Close()
}
