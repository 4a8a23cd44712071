package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "id3tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Name", c.Training.TargetCol)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "file", c.Storage.Backend)
	assert.Equal(t, 0, c.Inference.Jobs)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
training:
  targetCol: species
  directory: artifacts
  parallel: 4
inference:
  modelDir: artifacts
  outDir: out
  jobs: 2
  doEval: true
storage:
  backend: bolt
logging:
  level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "species", c.Training.TargetCol)
	assert.Equal(t, "artifacts", c.Training.Directory)
	assert.Equal(t, 4, c.Training.Parallel)
	assert.Equal(t, "out", c.Inference.OutDir)
	assert.Equal(t, 2, c.Inference.Jobs)
	assert.True(t, c.Inference.DoEval)
	assert.Equal(t, "bolt", c.Storage.Backend)
	assert.Equal(t, "debug", c.Logging.Level)
}

func TestLoadPartialYAMLKeepsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, "logging:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", c.Logging.Level)
	assert.Equal(t, "Name", c.Training.TargetCol)
	assert.Equal(t, "file", c.Storage.Backend)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvStore, "bolt")
	t.Setenv(EnvTargetCol, "label")
	t.Setenv(EnvJobs, "3")

	c, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "error", c.Logging.Level)
	assert.Equal(t, "bolt", c.Storage.Backend)
	assert.Equal(t, "label", c.Training.TargetCol)
	assert.Equal(t, 3, c.Inference.Jobs)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "bad yaml", content: "training: [\n"},
		{name: "bad level", content: "logging:\n  level: loud\n"},
		{name: "bad backend", content: "storage:\n  backend: s3\n"},
		{name: "negative jobs", content: "inference:\n  jobs: -1\n"},
		{name: "empty target", content: "training:\n  targetCol: \" \"\n"},
		{name: "bad jobs env", content: "", env: map[string]string{EnvJobs: "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateErrorType(t *testing.T) {
	c := Default()
	c.Storage.Backend = "s3"
	var ve *errors.ValidationError
	assert.True(t, errors.As(c.Validate(), &ve))
}
