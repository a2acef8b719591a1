package config_test

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/phpda/analyzer/filter"
	"github.com/viant/phpda/config"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		description string
		content     string
		expect      *config.Config
		wantErr     bool
	}{
		{
			description: "filter options",
			content: `source: src
concurrency: 4
filter:
  minDepth: 2
  excludePattern: '%Test%'
  sliceOffset: 1
  sliceLength: 2
  order: custom-first
`,
			expect: &config.Config{
				Source:      "src",
				Extensions:  []string{".php"},
				Ignore:      []string{"vendor", ".git"},
				Concurrency: 4,
				Filter: filter.Options{
					MinDepth:       2,
					ExcludePattern: "%Test%",
					SliceOffset:    1,
					SliceLength:    2,
					Order:          filter.CustomFirst,
				},
			},
		},
		{
			description: "defaults kept",
			content:     `ignore: [vendor, tests]`,
			expect: &config.Config{
				Source:     ".",
				Extensions: []string{".php"},
				Ignore:     []string{"vendor", "tests"},
			},
		},
		{
			description: "invalid filter",
			content: `filter:
  sliceLength: -1
`,
			wantErr: true,
		},
		{
			description: "malformed yaml",
			content:     "filter: [",
			wantErr:     true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			location := filepath.Join(t.TempDir(), "phpda.yaml")
			require.NoError(t, os.WriteFile(location, []byte(tc.content), 0644))
			actual, err := config.Load(context.Background(), location)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, tc.expect, actual)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Concurrency = -1
	assert.True(t, errors.Is(cfg.Validate(), config.ErrInvalidConfig))

	cfg = config.DefaultConfig()
	cfg.Filter.MinDepth = -3
	err := cfg.Validate()
	assert.True(t, errors.Is(err, config.ErrInvalidConfig))
	assert.True(t, errors.Is(err, filter.ErrInvalidOptions))
}
