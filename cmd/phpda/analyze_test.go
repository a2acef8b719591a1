package main

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phpda/analyzer"
	"github.com/viant/phpda/analyzer/usage"
	"github.com/viant/phpda/config"
	"gopkg.in/yaml.v3"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const controllerCode = `<?php
namespace App\Http;

use Vendor\Lib\Client;

class Controller extends Base
{
    public function run()
    {
        $client = new Client();
        $query = $_GET['q'];
        include $dir . '/extra.php';
    }
}
`

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"composer.json":            `{"name": "acme/app"}`,
		".git/config":              "[remote \"origin\"]\n\turl = https://github.com/acme/app.git\n",
		"src/Http/Controller.php":  controllerCode,
		"src/broken.php":           "<?php\nclass {\n",
		"vendor/acme/lib/Skip.php": "<?php\nnew \\Skipped\\Type();\n",
	}
	for location, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(location))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	return root
}

func decodeReport(t *testing.T, data []byte) *analysisReport {
	t.Helper()
	ret := &analysisReport{}
	require.NoError(t, yaml.Unmarshal(data, ret))
	return ret
}

func TestRunAnalyze(t *testing.T) {
	root := writeProject(t)
	cfg := config.DefaultConfig()
	cfg.Source = root
	cfg.Filter.SliceLength = 2

	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, runAnalyze(context.Background(), cfg, out, logger))

	report := decodeReport(t, out.Bytes())
	require.NotNil(t, report.Repository)
	assert.Equal(t, "git", report.Repository.Kind)
	assert.Equal(t, "https://github.com/acme/app.git", report.Repository.Origin)
	require.NotNil(t, report.Repository.Project)
	assert.Equal(t, "acme/app", report.Repository.Project.Name)
	assert.Equal(t, []string{`Vendor\Lib`, `App\Http`, "_GET"}, report.Nodes)

	require.Len(t, report.Units, 1)
	assert.Equal(t, "src/Http/Controller.php", report.Units[0].Unit)
	require.Len(t, report.Units[0].Facts, 5)
	include := report.Units[0].Facts[4]
	assert.True(t, include.Fact.Unresolved)
	assert.Equal(t, "", include.Key)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, "src/broken.php", report.Failures[0].Unit)
}

func TestAnalyzeCommand(t *testing.T) {
	root := writeProject(t)
	configURL := filepath.Join(t.TempDir(), "phpda.yaml")
	require.NoError(t, os.WriteFile(configURL, []byte("filter:\n  minDepth: 3\n  excludePattern: '%Vendor%'\n"), 0644))

	tests := []struct {
		description string
		args        []string
		expectNodes []string
		wantErr     bool
	}{
		{
			description: "config only",
			args:        []string{root, "--config", configURL},
			expectNodes: []string{`App\Http\Base`, "_GET"},
		},
		{
			description: "flag overrides config",
			args:        []string{root, "--config", configURL, "--min-depth", "1", "--exclude", "%Http%"},
			expectNodes: []string{`Vendor\Lib\Client`, "_GET"},
		},
		{
			description: "invalid order",
			args:        []string{root, "--order", "sideways"},
			wantErr:     true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			cmd := newAnalyzeCommand()
			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tc.args)
			err := cmd.ExecuteContext(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectNodes, decodeReport(t, out.Bytes()).Nodes)
		})
	}
}

func TestAnalyzeCommand_Graph(t *testing.T) {
	root := writeProject(t)
	cmd := newAnalyzeCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{root, "--graph", "--slice-length", "1"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	graph := &analyzer.Graph{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), graph))
	assert.Equal(t, []analyzer.GraphNode{
		{ID: "src/Http/Controller.php", Type: analyzer.NodeUnit},
		{ID: "App", Type: analyzer.NodeDependency},
		{ID: "Vendor", Type: analyzer.NodeDependency},
		{ID: "_GET", Type: analyzer.NodeDependency},
	}, graph.Nodes)
	assert.Equal(t, []analyzer.GraphEdge{
		{Source: "src/Http/Controller.php", Target: "Vendor", Type: usage.NamespaceReference, Aggregation: "slice", Weight: 2},
		{Source: "src/Http/Controller.php", Target: "App", Type: usage.NamespaceReference, Aggregation: "slice", Weight: 1},
		{Source: "src/Http/Controller.php", Target: "_GET", Type: usage.SuperglobalUse, Weight: 1},
	}, graph.Edges)
}
