package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/entropic"
	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/tree/badgerstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = "../../testdata/weather.csv"

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := cliParser()
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestGrowExportTestPredict(t *testing.T) {
	treePath := filepath.Join(t.TempDir(), "tree.json")
	run(t, "grow", "-i", weatherCSV, "-k", "play", "-o", treePath, "--workers", "2")

	text := run(t, "export", "-t", treePath)
	assert.True(t, strings.HasPrefix(text, "┌── outlook\n"), text)
	assert.Contains(t, text, "└── class: yes [overcast]")

	dot := run(t, "export", "-t", treePath, "-f", "dot")
	assert.True(t, strings.HasPrefix(dot, "digraph {"), dot)

	result := run(t, "test", "-t", treePath, "-i", weatherCSV, "-k", "play")
	assert.Equal(t, "0.928571 success rate, mispredicted 1 of 14 samples\n", result)

	predictions := run(t, "predict", "-t", treePath, "-i", weatherCSV, "--proba")
	lines := strings.Split(strings.TrimSpace(predictions), "\n")
	require.Len(t, lines, 15)
	assert.Equal(t, "outlook,temperature,humidity,windy,play,prediction,p(no),p(yes)", lines[0])
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "entropic v0.1.0\n", run(t, "version"))
}

func TestGrowFlagValidation(t *testing.T) {
	config := &rootCmdConfig{}
	require.NoError(t, config.setup())
	gcc := &growCmdConfig{rootCmdConfig: config}
	cmd := growCmd(config)
	assert.ErrorContains(t, gcc.Validate(cmd), "class-column")

	gcc.classColumn = "play"
	require.NoError(t, cmd.ParseFlags([]string{"--max-depth", "2", "--workers", "3"}))
	gcc.maxDepth, gcc.workers = 2, 3
	require.NoError(t, gcc.Validate(cmd))
	require.NotNil(t, config.config.Estimator.MaxDepth)
	assert.Equal(t, 2, *config.config.Estimator.MaxDepth)
	assert.Equal(t, 3, config.config.Estimator.Workers)

	gcc.table = ""
	gcc.dataInput = "postgres://localhost/db"
	assert.ErrorContains(t, gcc.Validate(cmd), "table")

	gcc.dataInput = ""
	gcc.classColumn = ""
	config.config.ClassColumn = "outcome"
	require.NoError(t, gcc.Validate(cmd))
	assert.Equal(t, "outcome", gcc.classColumn)

	tcc := &testCmdConfig{rootCmdConfig: config, treeInput: "tree.json"}
	require.NoError(t, tcc.Validate())
	assert.Equal(t, "outcome", tcc.classColumn)
}

func TestClassColumnFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "entropic.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("class_column: play\n"), 0o600))
	treePath := filepath.Join(dir, "tree.json")

	run(t, "--config", configPath, "grow", "-i", weatherCSV, "-o", treePath)
	result := run(t, "--config", configPath, "test", "-t", treePath, "-i", weatherCSV)
	assert.Equal(t, "0.928571 success rate, mispredicted 1 of 14 samples\n", result)
}

func TestGrowClosesNodeStoreOnFailure(t *testing.T) {
	config := &rootCmdConfig{}
	require.NoError(t, config.setup())
	dir := t.TempDir()
	config.config.NodeStore.Kind = "badger"
	config.config.NodeStore.Path = dir
	gcc := &growCmdConfig{rootCmdConfig: config}
	cmd := growCmd(config)
	cmd.SetContext(context.Background())

	frame := dataset.NewFrame([]string{"x"}, [][]interface{}{{1.0}, {2.0}})
	code, err := gcc.grow(cmd, frame, []string{"a"})
	assert.Equal(t, 4, code)
	assert.ErrorIs(t, err, entropic.ErrMalformedInput)

	db, err := badgerstore.Open(dir)
	require.NoError(t, err, "the badger directory is still locked")
	require.NoError(t, db.Close())
}
