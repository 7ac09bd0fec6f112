package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	featurejson "github.com/pbanos/entropic/feature/json"
	"github.com/pbanos/entropic/tree"
)

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree
a NodeEncodeDecoder and an io.Writer and serializes the given tree
as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "rootID": a string with the ID of the node at the root of the tree
* "classes": an array with the ordered classes the tree predicts
* "features": an array with the features the tree was fitted on
* "nodes": an array containing the nodes that can be traversed on the tree
  serialized by the given NodeEncodeDecoder.
An error is returned if the tree cannot be traversed, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, w io.Writer) error {
	err := marshalJSONTreeHeader(t, w)
	if err != nil {
		return err
	}
	var i int
	err = t.Traverse(ctx, func(ctx context.Context, n *tree.Node) error {
		err := writeNode(i, n, ned, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`]}`))
	return err
}

/*
ReadJSONTree takes a context.Context, a pointer to a tree.Tree, a
NodeEncodeDecoder and an io.Reader and unmarshals the contents of the
io.Reader onto the given tree, storing its nodes on the tree NodeStore.
The JSON is expected to have the format produced by WriteJSONTree.
An error is returned if the JSON cannot be read from the io.Reader or
unmarshalled onto the tree.
*/
func ReadJSONTree(ctx context.Context, t *tree.Tree, ned NodeEncodeDecoder, r io.Reader) error {
	dec := json.NewDecoder(r)
	jt := &struct {
		RootID   string             `json:"rootID"`
		Classes  []string           `json:"classes"`
		Features json.RawMessage    `json:"features"`
		Nodes    []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return err
	}
	if jt.RootID == "" {
		return fmt.Errorf("no root node id available")
	}
	if len(jt.Classes) == 0 {
		return fmt.Errorf("no classes defined")
	}
	features, err := featurejson.DecodeFeatures(jt.Features)
	if err != nil {
		return fmt.Errorf("decoding features: %w", err)
	}
	t.RootID = jt.RootID
	t.Classes = jt.Classes
	t.Features = features
	for _, jn := range jt.Nodes {
		n, err := ned.Decode(*jn)
		if err != nil {
			return err
		}
		err = t.NodeStore.Store(ctx, n)
		if err != nil {
			return err
		}
	}
	_, err = t.Node(ctx, t.RootID)
	return err
}

func marshalJSONTreeHeader(t *tree.Tree, w io.Writer) error {
	jrootID, err := json.Marshal(t.RootID)
	if err != nil {
		return err
	}
	jclasses, err := json.Marshal(t.Classes)
	if err != nil {
		return err
	}
	jfeatures, err := featurejson.EncodeFeatures(t.Features)
	if err != nil {
		return err
	}
	header := fmt.Sprintf(`{"rootID":%s,"classes":%s,"features":%s,"nodes":[`, jrootID, jclasses, jfeatures)
	_, err = w.Write([]byte(header))
	return err
}

func writeNode(i int, n *tree.Node, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(n)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}
