package tree

import (
	"fmt"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
)

// Edge links a node to one of its children through a branch label.
type Edge struct {
	Branch string
	ID     string
}

/*
Node is a vertex of the tree. Nodes live in a NodeStore and reference each
other by ID: a node owns the children listed in Children, and keeps the ID of
its parent only to look it up.
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree, empty for the root
	ParentID string
	// The children of the node, in the order their branches were created
	Children []Edge
	// For internal nodes, the name of the feature the node splits on.
	// For leaves, the predicted class.
	Feature string
	// The threshold of a split on a numerical feature, nil otherwise
	Threshold *float64
	// The label of the branch of the parent that leads to this node:
	// "True" or "False" under numerical splits, a level under categorical
	// ones. Nil for the root.
	Branch *string
	// The number of edges from the root to this node
	Depth int
	// The number of training labels reaching the node for each class,
	// aligned with the classes of the tree
	Value []int
	// The number of training rows reaching the node
	NSamples int
}

// IsLeaf returns whether the node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

/*
SetTarget takes the labels of the training rows reaching the node and the
ordered classes of the tree and sets the node Value and NSamples.
*/
func (n *Node) SetTarget(labels []string, classes []string) {
	n.Value = dataset.ClassCounts(labels, classes)
	n.NSamples = len(labels)
}

// AddChild appends an edge to the child with the given ID under the given branch
func (n *Node) AddChild(branch string, id string) {
	n.Children = append(n.Children, Edge{branch, id})
}

// ChildID returns the ID of the child under the given branch, if any
func (n *Node) ChildID(branch string) (string, bool) {
	for _, e := range n.Children {
		if e.Branch == branch {
			return e.ID, true
		}
	}
	return "", false
}

/*
Query takes the value a sample holds for the node feature and returns the ID
of the child the value routes to.

On numerical splits values at or below the threshold route to the "True"
child and the rest to the "False" one; a value that is not a number fails
with a RoutingError wrapping ErrNotNumeric. On categorical splits the value
routes to the child of its level, failing with a RoutingError wrapping
ErrUnseenValue if the level was never observed at fit time.
*/
func (n *Node) Query(value interface{}) (string, error) {
	var branch string
	if n.Threshold != nil {
		if _, ok := feature.Parse(value); !ok {
			return "", &RoutingError{Feature: n.Feature, Value: value, Err: ErrNotNumeric}
		}
		branch = feature.BranchFalse
		if feature.AtMost(*n.Threshold).SatisfiedBy(value) {
			branch = feature.BranchTrue
		}
	} else {
		branch = feature.Level(value)
	}
	id, ok := n.ChildID(branch)
	if !ok {
		return "", &RoutingError{Feature: n.Feature, Value: value, Err: ErrUnseenValue}
	}
	return id, nil
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("{Node %s class: %s %v}", n.ID, n.Feature, n.Value)
	}
	if n.Threshold != nil {
		return fmt.Sprintf("{Node %s %s <= %v}", n.ID, n.Feature, *n.Threshold)
	}
	return fmt.Sprintf("{Node %s %s}", n.ID, n.Feature)
}
