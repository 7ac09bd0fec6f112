/*
Package json provides the JSON encoding of trees and their nodes, used to
persist fitted trees and by the node stores that keep nodes as documents.
*/
package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/entropic/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	// and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct{}

type edge struct {
	Branch string `json:"b"`
	ID     string `json:"id"`
}

type node struct {
	ID        string   `json:"id"`
	ParentID  string   `json:"pId,omitempty"`
	Children  []edge   `json:"ch,omitempty"`
	Feature   string   `json:"f"`
	Threshold *float64 `json:"t,omitempty"`
	Branch    *string  `json:"b,omitempty"`
	Depth     int      `json:"d"`
	Value     []int    `json:"v"`
	NSamples  int      `json:"n"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes every node as
a JSON object with short property names.
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:        n.ID,
		ParentID:  n.ParentID,
		Feature:   n.Feature,
		Threshold: n.Threshold,
		Branch:    n.Branch,
		Depth:     n.Depth,
		Value:     n.Value,
		NSamples:  n.NSamples,
	}
	for _, e := range n.Children {
		jn.Children = append(jn.Children, edge{e.Branch, e.ID})
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	if jn.ID == "" {
		return nil, fmt.Errorf("unmarshalling node: no id")
	}
	n := &tree.Node{
		ID:        jn.ID,
		ParentID:  jn.ParentID,
		Feature:   jn.Feature,
		Threshold: jn.Threshold,
		Branch:    jn.Branch,
		Depth:     jn.Depth,
		Value:     jn.Value,
		NSamples:  jn.NSamples,
	}
	for _, e := range jn.Children {
		n.AddChild(e.Branch, e.ID)
	}
	return n, nil
}
