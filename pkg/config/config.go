// Package config loads CLI settings from an optional YAML file with
// environment overrides. Command-line flags take precedence over both and
// are applied by the commands themselves.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/pkg/storage"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvLogLevel  = "ID3TREE_LOG_LEVEL"
	EnvStore     = "ID3TREE_STORE"
	EnvTargetCol = "ID3TREE_TARGET_COL"
	EnvJobs      = "ID3TREE_JOBS"
)

// DefaultTargetCol is the label column of the animal observation tables.
const DefaultTargetCol = "Name"

// Config is the merged configuration.
type Config struct {
	Training struct {
		TargetCol string `yaml:"targetCol"`
		Directory string `yaml:"directory"`
		Parallel  int    `yaml:"parallel"`
	} `yaml:"training"`

	Inference struct {
		ModelDir string `yaml:"modelDir"`
		OutDir   string `yaml:"outDir"`
		Jobs     int    `yaml:"jobs"`
		DoEval   bool   `yaml:"doEval"`
	} `yaml:"inference"`

	Storage struct {
		Backend string `yaml:"backend"`
	} `yaml:"storage"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	var c Config
	c.Training.TargetCol = DefaultTargetCol
	c.Storage.Backend = storage.BackendFile
	c.Logging.Level = "info"
	return c
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return Config{}, errors.Wrap(err, "failed to parse config file")
		}
	}

	c.Logging.Level = getEnvOrDefault(EnvLogLevel, c.Logging.Level)
	c.Storage.Backend = getEnvOrDefault(EnvStore, c.Storage.Backend)
	c.Training.TargetCol = getEnvOrDefault(EnvTargetCol, c.Training.TargetCol)
	jobs, err := getIntOrDefault(EnvJobs, c.Inference.Jobs)
	if err != nil {
		return Config{}, err
	}
	c.Inference.Jobs = jobs

	if err := c.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "configuration validation failed")
	}
	return c, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Training.TargetCol) == "" {
		return errors.NewValidationError("training.targetCol", "must not be empty", c.Training.TargetCol)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case storage.BackendFile, storage.BackendBolt:
	default:
		return errors.NewValidationError("storage.backend", "must be file or bolt", c.Storage.Backend)
	}
	if c.Training.Parallel < 0 {
		return errors.NewValidationError("training.parallel", "must not be negative", c.Training.Parallel)
	}
	if c.Inference.Jobs < 0 {
		return errors.NewValidationError("inference.jobs", "must not be negative", c.Inference.Jobs)
	}
	return nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntOrDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.NewValidationError(key, "not an integer", v)
	}
	return n, nil
}
