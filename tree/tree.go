package tree

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
)

// Tree represents a decision tree classifier. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree, the features it was fitted on and the
// ordered classes it predicts.
type Tree struct {
	NodeStore
	RootID   string
	Features []feature.Feature
	Classes  []string
}

// New takes the ID for the root Node, a NodeStore, the features and the
// classes of the tree and returns a tree composed of the nodes in the
// NodeStore connected to the node with the given root ID.
func New(rootID string, nodeStore NodeStore, features []feature.Feature, classes []string) *Tree {
	return &Tree{nodeStore, rootID, features, classes}
}

// Node takes an id and returns the node with that id on the tree
// NodeStore or an error wrapping ErrNodeNotFound if there is none.
func (t *Tree) Node(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %v: %w", id, err)
	}
	if n == nil {
		return nil, fmt.Errorf("retrieving node %v: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

// Feature returns the feature of the tree with the given name, or nil.
func (t *Tree) Feature(name string) feature.Feature {
	for _, f := range t.Features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

/*
Route takes a sample and walks the tree from its root, resolving at every
split the value of the sample for the node feature by name, until a leaf
is reached. It returns the leaf or an error if the sample cannot be routed.
*/
func (t *Tree) Route(ctx context.Context, s dataset.Sample) (*Node, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tree cannot route samples")
	}
	n, err := t.Node(ctx, t.RootID)
	if err != nil {
		return nil, err
	}
	for !n.IsLeaf() {
		f := t.Feature(n.Feature)
		if f == nil {
			return nil, fmt.Errorf("node %v splits on unknown feature %s", n.ID, n.Feature)
		}
		v, err := s.ValueFor(ctx, f)
		if err != nil {
			return nil, err
		}
		id, err := n.Query(v)
		if err != nil {
			return nil, err
		}
		n, err = t.Node(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Predict takes a sample and returns the class of the leaf it routes to.
func (t *Tree) Predict(ctx context.Context, s dataset.Sample) (string, error) {
	n, err := t.Route(ctx, s)
	if err != nil {
		return "", err
	}
	return n.Feature, nil
}

/*
PredictProba takes a sample and returns the class distribution of the leaf it
routes to, aligned with the tree classes. A leaf no training row reached
takes the distribution of its parent.
*/
func (t *Tree) PredictProba(ctx context.Context, s dataset.Sample) ([]float64, error) {
	n, err := t.Route(ctx, s)
	if err != nil {
		return nil, err
	}
	if n.NSamples == 0 && n.ParentID != "" {
		n, err = t.Node(ctx, n.ParentID)
		if err != nil {
			return nil, err
		}
	}
	p := Probabilities(n)
	if p == nil {
		return nil, fmt.Errorf("node %v has no samples to compute probabilities from", n.ID)
	}
	return p, nil
}

/*
Score takes a slice of samples and their expected labels and returns the
fraction of samples whose predicted class matches their label, or an error if
a prediction could not be made.
*/
func (t *Tree) Score(ctx context.Context, samples []dataset.Sample, labels []string) (float64, error) {
	if len(samples) != len(labels) {
		return 0.0, fmt.Errorf("found %d samples but %d labels", len(samples), len(labels))
	}
	if len(samples) == 0 {
		return 0.0, fmt.Errorf("cannot score an empty set of samples")
	}
	var hits float64
	for i, s := range samples {
		p, err := t.Predict(ctx, s)
		if err != nil {
			return 0.0, err
		}
		if p == labels[i] {
			hits += 1.0
		}
	}
	return hits / float64(len(samples)), nil
}

// Children takes a node and returns its children in branch creation order.
func (t *Tree) Children(ctx context.Context, n *Node) ([]*Node, error) {
	children := make([]*Node, 0, len(n.Children))
	for _, e := range n.Children {
		c, err := t.Node(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

// Traverse takes a context and an error-returning function that takes a
// context and a node as parameters, and goes depth-first through the tree
// running the function with the context and every traversed node.
// The traversal keeps an explicit stack: a visited node pushes its leaf
// children before its internal ones, so that among siblings internal nodes
// are explored first.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, f func(context.Context, *Node) error) error {
	root, err := t.Node(ctx, t.RootID)
	if err != nil {
		return err
	}
	frontier := []*Node{root}
	for len(frontier) > 0 {
		if err = ctx.Err(); err != nil {
			return err
		}
		n := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		if err = f(ctx, n); err != nil {
			return err
		}
		children, err := t.Children(ctx, n)
		if err != nil {
			return err
		}
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].IsLeaf() && !children[j].IsLeaf()
		})
		frontier = append(frontier, children...)
	}
	return nil
}

// BreadthFirst takes a context and an error-returning function that takes a
// context, a node and its children, and goes breadth-first through the tree
// running the function for every traversed node. Errors are handled as in
// Traverse.
func (t *Tree) BreadthFirst(ctx context.Context, f func(context.Context, *Node, []*Node) error) error {
	root, err := t.Node(ctx, t.RootID)
	if err != nil {
		return err
	}
	queue := []*Node{root}
	for len(queue) > 0 {
		if err = ctx.Err(); err != nil {
			return err
		}
		n := queue[0]
		queue = queue[1:]
		children, err := t.Children(ctx, n)
		if err != nil {
			return err
		}
		if err = f(ctx, n, children); err != nil {
			return err
		}
		queue = append(queue, children...)
	}
	return nil
}

/*
Render returns the text rendering of the tree: one line per node in Traverse
order, prefixed by one "│  " per level of depth and a glyph for the root,
internal and leaf nodes, followed by the node feature (or class) and the
branch leading to it.
*/
func (t *Tree) Render(ctx context.Context) (string, error) {
	var lines []string
	err := t.Traverse(ctx, func(ctx context.Context, n *Node) error {
		line, err := t.renderNode(ctx, n)
		if err != nil {
			return err
		}
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func (t *Tree) renderNode(ctx context.Context, n *Node) (string, error) {
	glyph := "├──"
	if n.IsLeaf() {
		glyph = "└──"
	} else if n.Depth == 0 {
		glyph = "┌──"
	}
	prefix := strings.Repeat("│  ", n.Depth) + glyph
	info := n.Feature
	if n.IsLeaf() {
		info = "class: " + n.Feature
	}
	if n.ParentID == "" {
		return fmt.Sprintf("%s %s", prefix, info), nil
	}
	parent, err := t.Node(ctx, n.ParentID)
	if err != nil {
		return "", err
	}
	var branch string
	if n.Branch != nil {
		branch = *n.Branch
	}
	if parent.Threshold != nil {
		if branch == feature.BranchTrue {
			branch = fmt.Sprintf("<= %.2f", *parent.Threshold)
		} else {
			branch = fmt.Sprintf("> %.2f", *parent.Threshold)
		}
	}
	return fmt.Sprintf("%s %s [%s]", prefix, info, branch), nil
}

func (t *Tree) String() string {
	s, err := t.Render(context.TODO())
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return s
}
