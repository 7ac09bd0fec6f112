package entropic

import (
	"context"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	"github.com/pbanos/entropic/queue"
	"github.com/pbanos/entropic/tree"
	"go.uber.org/zap"
)

/*
Inducer is an interface wrapping the BranchOut method, which develops the
node of a task on a tree: it either turns the node into a leaf or splits it,
creating its children on the tree NodeStore and returning the tasks to
develop them.
*/
type Inducer interface {
	BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree) ([]*queue.Task, error)
}

/*
ClassificationInducer grows classification trees, splitting nodes on the
feature with the highest information gain.
*/
type ClassificationInducer struct {
	*Config
	Logger  *zap.Logger
	Metrics *Metrics
}

/*
RegressionInducer would grow regression trees. There is no impurity measure
for numerical targets yet, so BranchOut always fails with ErrNotImplemented.
*/
type RegressionInducer struct{}

type branch struct {
	label          string
	partition      *dataset.Partition
	featureIndices []int
}

// BranchOut takes a context, a task and a tree, develops the node in the
// task using the task's partition and available features to predict the
// tree classes and returns a set of tasks to develop the resulting children
// nodes or an error. The developed node is stored on the tree NodeStore.
func (ci *ClassificationInducer) BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree) (tasks []*queue.Task, e error) {
	n := task.Node
	p := task.Partition
	n.SetTarget(p.Labels(), t.Classes)
	defer func() {
		err := t.NodeStore.Store(ctx, n)
		if e == nil {
			e = err
		}
	}()
	if leaf, class, reason := ci.stop(p, task.ParentLabels, n.Depth); leaf {
		ci.leaf(n, class, reason)
		return nil, nil
	}
	features := make([]feature.Feature, len(task.FeatureIndices))
	for j, fi := range task.FeatureIndices {
		features[j] = t.Features[fi]
	}
	split := BestSplit(p, features)
	f := features[split.Column]
	var branches []branch
	if split.Threshold != nil {
		in, out := p.Split(split.Column, feature.LessThan(*split.Threshold))
		if in.Count() == 0 || out.Count() == 0 {
			ci.leaf(n, p.Mode(), "degenerate")
			return nil, nil
		}
		branches = []branch{
			{feature.BranchTrue, in, copyIndices(task.FeatureIndices, -1)},
			{feature.BranchFalse, out, copyIndices(task.FeatureIndices, -1)},
		}
	} else {
		for _, level := range f.Domain() {
			sub := p.SubsetWith(split.Column, feature.Equals(level)).Without(split.Column)
			branches = append(branches, branch{level, sub, copyIndices(task.FeatureIndices, split.Column)})
		}
	}
	n.Feature = f.Name()
	n.Threshold = split.Threshold
	for _, b := range branches {
		label := b.label
		child := &tree.Node{ParentID: n.ID, Branch: &label, Depth: n.Depth + 1}
		err := t.NodeStore.Create(ctx, child)
		if err != nil {
			return nil, err
		}
		n.AddChild(label, child.ID)
		tasks = append(tasks, &queue.Task{
			Node:           child,
			Partition:      b.partition,
			FeatureIndices: b.featureIndices,
			ParentLabels:   p.Labels(),
		})
	}
	ci.logger().Debug("split node",
		zap.String("node", n.ID),
		zap.String("feature", n.Feature),
		zap.Float64("gain", split.Gain),
		zap.Int("samples", n.NSamples),
		zap.Int("children", len(tasks)))
	ci.Metrics.nodeGrown("split_" + string(f.Kind()))
	return tasks, nil
}

func (ci *ClassificationInducer) leaf(n *tree.Node, class string, reason string) {
	n.Feature = class
	ci.logger().Debug("leaf node",
		zap.String("node", n.ID),
		zap.String("class", class),
		zap.String("reason", reason),
		zap.Int("samples", n.NSamples),
		zap.Int("depth", n.Depth))
	ci.Metrics.nodeGrown(reason)
}

func (ci *ClassificationInducer) logger() *zap.Logger {
	if ci.Logger == nil {
		return zap.NewNop()
	}
	return ci.Logger
}

// BranchOut always returns ErrNotImplemented
func (ri *RegressionInducer) BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree) ([]*queue.Task, error) {
	return nil, ErrNotImplemented
}

// copyIndices returns a copy of the given indices without the one at
// position skip, or with all of them if skip is negative.
func copyIndices(indices []int, skip int) []int {
	result := make([]int, 0, len(indices))
	for i, fi := range indices {
		if i != skip {
			result = append(result, fi)
		}
	}
	return result
}
