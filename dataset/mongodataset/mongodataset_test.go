package mongodataset

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/pbanos/entropic/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

func TestFieldsOf(t *testing.T) {
	doc := bson.M{"_id": 1, "b": 2, "a": "x", "class": "yes"}
	assert.Equal(t, []string{"a", "b"}, fieldsOf(doc, "class"))
}

func TestWriteRejectsReservedNames(t *testing.T) {
	frame := dataset.NewFrame([]string{"a.b"}, [][]interface{}{{1}})
	_, err := Write(context.Background(), nil, "rows", frame, nil, "class")
	assert.ErrorContains(t, err, "reserved characters")
}

func TestWriteLoad(t *testing.T) {
	url := os.Getenv("MONGO_URL")
	if url == "" {
		t.Skip("MONGO_URL not set")
	}
	session, err := mgo.Dial(url)
	require.NoError(t, err)
	defer session.Close()
	collection := "entropic_test_" + uuid.NewString()
	defer session.DB("").C(collection).DropCollection()

	ctx := context.Background()
	frame := dataset.NewFrame([]string{"outlook", "humidity"}, [][]interface{}{{"sunny", 85.0}, {"rainy", 70.0}})
	n, err := Write(ctx, session, collection, frame, []string{"no", "yes"}, "play")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, labels, err := Load(ctx, session, collection, nil, "play")
	require.NoError(t, err)
	assert.Equal(t, []string{"humidity", "outlook"}, loaded.Columns)
	assert.ElementsMatch(t, []string{"no", "yes"}, labels)
	assert.Len(t, loaded.Rows, 2)
}
