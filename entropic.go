/*
Package entropic grows decision trees that classify rows of mixed
categorical and numerical features, splitting nodes on the feature with the
highest information gain.

Trees are grown by workers that consume tasks from a queue.Queue: Seed
creates the root of the tree and pushes the task to develop it, and Work
pulls tasks, develops their nodes with an Inducer and pushes the tasks for
their children until no task is left. Grow puts it all together. Most users
will rather use a Classifier, which wraps the growth of a tree and its
queries.
*/
package entropic

import (
	"context"
	"time"

	"github.com/pbanos/entropic/dataset"
	"github.com/pbanos/entropic/feature"
	"github.com/pbanos/entropic/queue"
	"github.com/pbanos/entropic/tree"
	"golang.org/x/sync/errgroup"
)

const emptyQueueSleep = 5 * time.Millisecond

// Seed takes a context, a partition of training rows, the features of its
// columns, the ordered classes of its labels, a queue and a node store and
// sets everything up so that workers that consume from the queue afterwards
// grow a tree that predicts the classes according to the training data.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue (in the amount of time allowed by the given
// context).
func Seed(ctx context.Context, p *dataset.Partition, features []feature.Feature, classes []string, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	n := &tree.Node{}
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, err
	}
	indices := make([]int, len(features))
	for i := range indices {
		indices[i] = i
	}
	task := &queue.Task{Node: n, Partition: p, FeatureIndices: indices}
	t := tree.New(n.ID, ns, features, classes)
	err = q.Push(ctx, task)
	if err != nil {
		ns.Delete(ctx, n)
		return nil, err
	}
	return t, nil
}

// Work takes a context, a tree, a queue, an inducer and an
// emptyQueueSleep duration and enters a loop in which it:
//   - pulls a task from the queue,
//   - branches its node out into new subnodes using the inducer
//   - pushes the tasks for the new subnodes into the queue
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, then the worker will sleep for the given
// emptyQueueSleep duration and then retry.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, in Inducer, emptyQueueSleep time.Duration) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if r+p == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		err = workTask(ctx, task, t, q, in)
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, in Inducer) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := in.BranchOut(ctx, task, t)
	if err != nil {
		return err
	}
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}

/*
Grow takes a context, a partition of training rows, the features of its
columns, the ordered classes of its labels, a node store, an inducer and a
number of workers and grows a tree on the node store, with the given number
of workers developing its nodes concurrently. The structure of the resulting
tree does not depend on the number of workers.
It returns the grown tree or the first error found by any worker, in which
case the rest of the workers are cancelled.
*/
func Grow(ctx context.Context, p *dataset.Partition, features []feature.Feature, classes []string, ns tree.NodeStore, in Inducer, workers int) (*tree.Tree, error) {
	q := queue.New()
	defer q.Stop(ctx)
	t, err := Seed(ctx, p, features, classes, q, ns)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			return Work(gctx, t, q, in, emptyQueueSleep)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return t, nil
}
