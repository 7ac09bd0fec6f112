package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/entropic/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	c, err := Read(strings.NewReader(`
estimator:
  max_depth: 3
  min_samples_split: 4
  workers: 2
class_column: play
node_store:
  kind: badger
log:
  level: debug
`))
	require.NoError(t, err)
	require.NotNil(t, c.Estimator.MaxDepth)
	assert.Equal(t, 3, *c.Estimator.MaxDepth)
	assert.Equal(t, 4, c.Estimator.MinSamplesSplit)
	assert.Equal(t, 2, c.Estimator.Workers)
	assert.Equal(t, "play", c.ClassColumn)
	assert.Equal(t, "badger", c.NodeStore.Kind)
	assert.Equal(t, "entropic", c.NodeStore.Prefix)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestReadKeepsDefaultsForMissingKeys(t *testing.T) {
	c, err := Read(strings.NewReader("class_column: label\n"))
	require.NoError(t, err)
	assert.Nil(t, c.Estimator.MaxDepth)
	assert.Equal(t, 2, c.Estimator.MinSamplesSplit)
	assert.Equal(t, 1, c.Estimator.Workers)
}

func TestReadRejectsInvalidConfigs(t *testing.T) {
	for _, doc := range []string{
		"estimator:\n  min_samples_split: 1\n",
		"estimator:\n  max_depth: -2\n",
		"node_store:\n  kind: cassandra\n",
		"node_store:\n  kind: redis\n",
		"log:\n  level: loud\n",
		"unknown_key: 1\n",
		"estimator: [",
	} {
		_, err := Read(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestReadFile(t *testing.T) {
	c, err := ReadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "entropic.yml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0600))
	c, err = ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Server.Addr)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	l, err := Log{Level: "warn"}.Logger()
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1))

	_, err = Log{Level: "loud"}.Logger()
	assert.Error(t, err)
}

func TestOpenNodeStores(t *testing.T) {
	ctx := context.Background()
	for _, ns := range []NodeStore{
		{Kind: "memory", Prefix: "test"},
		{Kind: "badger", Prefix: "test"},
	} {
		newStore, closeBackend, err := ns.Open(ctx)
		require.NoError(t, err, ns.Kind)
		first, second := newStore(), newStore()
		n := &tree.Node{Feature: "yes", Value: []int{1}, NSamples: 1}
		require.NoError(t, first.Create(ctx, n))
		got, err := first.Get(ctx, n.ID)
		require.NoError(t, err)
		assert.Equal(t, n, got)
		require.NoError(t, first.Close(ctx))

		if ns.Kind == "badger" {
			missing, err := second.Get(ctx, n.ID)
			require.NoError(t, err)
			assert.Nil(t, missing, "trees on a shared backend do not see each other")
		}
		require.NoError(t, closeBackend())
	}
}
