package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/entropic/tree"
	treejson "github.com/pbanos/entropic/tree/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	ns := New(redis.NewClient(&redis.Options{Addr: addr}), "entropic-test", treejson.NewNodeEncodeDecoder())
	defer ns.Close(ctx)

	n := &tree.Node{Feature: "yes", Value: []int{0, 2}, NSamples: 2}
	require.NoError(t, ns.Create(ctx, n))
	defer ns.Delete(ctx, n)

	got, err := ns.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got)

	missing, err := ns.Get(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
