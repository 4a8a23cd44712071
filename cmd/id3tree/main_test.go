package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YuminosukeSato/id3tree/core/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/storage"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const animalsCSV = `Name,num_legs,color
Cat,4,white
cat,4,black
cat,4,black
dog,4,black
dog,4,black
dog,4,white
giraffe,4,white
zebra,2,white
chicken,4,white
duck,4,white
cow,4,white
bird,2,white
`

const queriesCSV = `Name,num_legs,color
bird,2,white
cat,4,green
cat,4,black
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Cleanup(func() { errors.SetZerologWarnFunc(nil) })
	var out, errOut bytes.Buffer
	cmd := cliParser()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTrainAndInfer(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "animals.csv", animalsCSV)
	modelDir := filepath.Join(dir, "model")

	_, logs, err := execute(t, "train", "--input-csv", input, "--target-col", "Name", "--directory", modelDir)
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "Tree built")

	copied, err := os.ReadFile(filepath.Join(modelDir, "input.csv"))
	require.NoError(t, err)
	assert.Equal(t, animalsCSV, string(copied), "input copy should keep the original casing")

	data, err := os.ReadFile(filepath.Join(modelDir, "decision_tree.json"))
	require.NoError(t, err)
	root, err := tree.UnmarshalTree(data)
	require.NoError(t, err)
	assert.Equal(t, "num_legs", root.Value())

	queries := writeFile(t, dir, "queries.csv", queriesCSV)
	outDir := filepath.Join(dir, "out")
	_, logs, err = execute(t, "infer", "--test-csv", queries, "--model-dir", modelDir, "--out-dir", outDir, "--do-eval", "--jobs", "2")
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "Evaluation")
	assert.Contains(t, logs, "UnseenValueWarning")

	out, err := dataset.ReadCSVFile(filepath.Join(outDir, "output.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "num_legs", "color", "prediction"}, out.Columns())
	assert.Equal(t, []string{"bird", "cat", "cat"}, out.Column("prediction"))
}

func TestInferDefaultsOutDirToModelDir(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "animals.csv", animalsCSV)
	_, logs, err := execute(t, "train", "-i", input, "-d", dir)
	require.NoError(t, err, logs)

	queries := writeFile(t, dir, "queries.csv", "num_legs\n2\n")
	_, logs, err = execute(t, "infer", "--test-csv", queries, "--model-dir", dir)
	require.NoError(t, err, logs)

	out, err := dataset.ReadCSVFile(filepath.Join(dir, "output.csv"))
	require.NoError(t, err)
	// the tree needs color below num_legs
	assert.Equal(t, []string{tree.NoClassification}, out.Column("prediction"))
	assert.Contains(t, logs, "MissingFeatureWarning")
}

func TestTrainBoltStore(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "animals.csv", animalsCSV)
	modelDir := filepath.Join(dir, "model")

	_, logs, err := execute(t, "train", "-i", input, "-d", modelDir, "--store", "bolt", "--parallel", "2")
	require.NoError(t, err, logs)

	s, err := storage.NewBoltStore(modelDir)
	require.NoError(t, err)
	root, err := s.Load(storage.DefaultName)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Equal(t, 2, root.Depth())

	stdout, _, err := execute(t, "show", "--model-dir", modelDir, "--store", "bolt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "num_legs\n"), stdout)
	assert.Contains(t, stdout, "  2 -> color")
}

func TestShowJSON(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "animals.csv", animalsCSV)
	_, _, err := execute(t, "train", "-i", input, "-d", dir)
	require.NoError(t, err)

	stdout, _, err := execute(t, "show", "--model-dir", dir, "--json")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "decision_tree.json"))
	require.NoError(t, err)
	assert.Equal(t, string(data), stdout)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "animals.csv", "species,legs\nCAT,4\nbird,2\n")
	modelDir := filepath.Join(dir, "model")
	cfg := writeFile(t, dir, "id3tree.yaml", "training:\n  targetCol: species\n  directory: "+modelDir+"\nlogging:\n  level: debug\n")

	_, logs, err := execute(t, "--config", cfg, "train", "-i", input)
	require.NoError(t, err, logs)
	assert.Contains(t, logs, "Tree structure")

	data, err := os.ReadFile(filepath.Join(modelDir, "decision_tree.json"))
	require.NoError(t, err)
	root, err := tree.UnmarshalTree(data)
	require.NoError(t, err)
	assert.Equal(t, "legs", root.Value())
	got := tree.Predict(dataset.Record{"legs": "4"}, root)
	assert.Equal(t, "cat", got.Label)
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.csv", "Name,num_legs,color\n")
	input := writeFile(t, dir, "animals.csv", animalsCSV)

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "train without input", args: []string{"train", "-d", dir}},
		{name: "train without directory", args: []string{"train", "-i", input}},
		{name: "train empty table", args: []string{"train", "-i", empty, "-d", dir}, is: errors.ErrEmptyData},
		{name: "train missing target", args: []string{"train", "-i", input, "-d", dir, "-t", "species"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "train", "-i", input, "-d", dir}},
		{name: "infer without model", args: []string{"infer", "--test-csv", input, "--model-dir", filepath.Join(dir, "none")}, is: errors.ErrTreeNotFound},
		{name: "infer without test csv", args: []string{"infer", "--model-dir", dir}},
		{name: "show without model dir", args: []string{"show"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}
