package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteDefaultConfigFileWritesRunnableStarter(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".promptqa.yaml")

	require.NoError(t, WriteDefaultConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var starter starterConfig
	require.NoError(t, yaml.Unmarshal(data, &starter))
	assert.Equal(t, "https://example.com", starter.BaseURL)
	assert.Equal(t, StrategyPlanOnce, starter.Strategy)
	require.Len(t, starter.Tests, 1)
	assert.Equal(t, "smoke", starter.Tests[0].Name)
}

func TestWriteDefaultConfigFileRefusesToOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".promptqa.yaml")
	require.NoError(t, WriteDefaultConfigFile(path))

	err := WriteDefaultConfigFile(path)
	assert.ErrorContains(t, err, "already exists")
}
