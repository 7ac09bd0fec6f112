package queue

import (
	"fmt"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed, already created
	// on the tree NodeStore
	Node *tree.Node
	// The training rows reaching the node, with
	// the columns still available for splitting
	Partition *dataset.Partition
	// The index, among the features of the tree,
	// of every column of the partition
	FeatureIndices []int
	// The labels of the training rows reaching
	// the parent of the node, used to label the
	// node when its partition is empty. Nil for
	// the root.
	ParentLabels []string
}

// ID returns a string that identifies the
// task, the ID of its Node.
func (t *Task) ID() string {
	return t.Node.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s %v}", t.Node.ID, t.Partition)
}
