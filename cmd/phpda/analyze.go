package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/viant/phpda/analyzer"
	"github.com/viant/phpda/analyzer/filter"
	"github.com/viant/phpda/config"
	"github.com/viant/phpda/inspector/repository"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"os"
)

// analyzeFlags hold flag values of the analyze command
type analyzeFlags struct {
	config      string
	minDepth    int
	exclude     string
	sliceOffset int
	sliceLength int
	order       string
	concurrency int
	graph       bool
	verbose     bool
}

func newAnalyzeCommand() *cobra.Command {
	flags := &analyzeFlags{}
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Collect namespace, superglobal and include usage of PHP units",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd, args)
			if err != nil {
				return err
			}
			level := slog.LevelInfo
			if flags.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if flags.graph {
				return runGraph(cmd.Context(), cfg, &analyzer.YAMLExporter{Writer: cmd.OutOrStdout()}, logger)
			}
			return runAnalyze(cmd.Context(), cfg, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "YAML config URL")
	cmd.Flags().IntVar(&flags.minDepth, "min-depth", 0, "drop namespace references with fewer segments")
	cmd.Flags().StringVar(&flags.exclude, "exclude", "", "PCRE pattern of namespace references to drop, e.g. %Test%")
	cmd.Flags().IntVar(&flags.sliceOffset, "slice-offset", 0, "first kept namespace segment")
	cmd.Flags().IntVar(&flags.sliceLength, "slice-length", 0, "number of kept namespace segments, 0 keeps the rest")
	cmd.Flags().StringVar(&flags.order, "order", "", "custom filter order: slice-first or custom-first")
	cmd.Flags().IntVar(&flags.concurrency, "concurrency", 0, "units analyzed in parallel")
	cmd.Flags().BoolVar(&flags.graph, "graph", false, "write unit to dependency graph instead of the fact report")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// load reads config file when given, explicitly set flags take precedence
func (f *analyzeFlags) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.config != "" {
		loaded, err := config.Load(cmd.Context(), f.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	changed := cmd.Flags().Changed
	if changed("min-depth") {
		cfg.Filter.MinDepth = f.minDepth
	}
	if changed("exclude") {
		cfg.Filter.ExcludePattern = f.exclude
	}
	if changed("slice-offset") {
		cfg.Filter.SliceOffset = f.sliceOffset
	}
	if changed("slice-length") {
		cfg.Filter.SliceLength = f.sliceLength
	}
	if changed("order") {
		cfg.Filter.Order = filter.Order(f.order)
	}
	if changed("concurrency") {
		cfg.Concurrency = f.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// unitReport represents normalized facts of one unit
type unitReport struct {
	Unit     string               `yaml:"unit"`
	Checksum uint64               `yaml:"checksum"`
	Facts    []*filter.Normalized `yaml:"facts,omitempty"`
}

// failureReport represents a unit skipped due to an error
type failureReport struct {
	Unit  string `yaml:"unit"`
	Error string `yaml:"error"`
}

// analysisReport is the YAML document written by the analyze command
type analysisReport struct {
	Repository *repository.Repository `yaml:"repository,omitempty"`
	Nodes      []string               `yaml:"nodes,omitempty"`
	Units      []*unitReport          `yaml:"units,omitempty"`
	Failures   []*failureReport       `yaml:"failures,omitempty"`
}

// analyzeSource discovers and analyzes units of cfg.Source
func analyzeSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*analyzer.Report, error) {
	sources, err := repository.NewLister(nil, cfg.Extensions, cfg.Ignore).Sources(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	logger.Info("discovered units", "source", cfg.Source, "count", len(sources))
	units := make([]*analyzer.Unit, 0, len(sources))
	for _, source := range sources {
		units = append(units, &analyzer.Unit{Path: source.Path, Source: source.Content})
	}
	return analyzer.New(
		analyzer.WithLogger(logger),
		analyzer.WithConcurrency(cfg.Concurrency),
	).AnalyzeUnits(ctx, units)
}

func runGraph(ctx context.Context, cfg *config.Config, exporter analyzer.GraphExporter, logger *slog.Logger) error {
	nodeName, err := filter.New(cfg.Filter, filter.WithLogger(logger))
	if err != nil {
		return err
	}
	analysis, err := analyzeSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	graph, err := analyzer.BuildGraph(ctx, analysis, nodeName)
	if err != nil {
		return err
	}
	return exporter.Export(ctx, graph)
}

func runAnalyze(ctx context.Context, cfg *config.Config, out io.Writer, logger *slog.Logger) error {
	nodeName, err := filter.New(cfg.Filter, filter.WithLogger(logger))
	if err != nil {
		return err
	}
	report := &analysisReport{}
	if _, statErr := os.Stat(cfg.Source); statErr == nil {
		if report.Repository, err = repository.New().DetectRepository(cfg.Source); err != nil {
			logger.Debug("repository detection failed", "source", cfg.Source, "error", err)
		}
	}
	analysis, err := analyzeSource(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var all []*filter.Normalized
	for _, result := range analysis.Results {
		normalized, err := filter.Normalize(ctx, nodeName, result.Facts)
		if err != nil {
			return err
		}
		for _, item := range normalized {
			if item.Fact.Unresolved {
				logger.Warn("unresolved reference", "unit", result.Unit, "kind", item.Fact.Kind,
					"expression", item.Fact.Expression, "line", item.Fact.Line)
			}
		}
		all = append(all, normalized...)
		report.Units = append(report.Units, &unitReport{Unit: result.Unit, Checksum: result.Checksum, Facts: normalized})
	}
	for _, failure := range analysis.Failures {
		report.Failures = append(report.Failures, &failureReport{Unit: failure.Unit, Error: failure.Err.Error()})
	}
	report.Nodes = filter.Keys(all)

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err = encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return encoder.Close()
}
