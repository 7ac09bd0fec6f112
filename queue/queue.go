package queue

import (
	"context"
	"fmt"
	"sync"
)

// Queue represents a queue where tasks to develop
// tree nodes can be pushed and pulled. The idea
// is a worker will use the Pull method to obtain
// a task. It will start processing it and will then
// either complete it or drop it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	Push(context.Context, *Task) error
	// Pull returns the oldest pending task or an error.
	// The pulled task will be counted as running from
	// then on. If there are no tasks to pull it returns
	// nil values.
	Pull(context.Context) (*Task, error)
	// Drop takes the ID for a task and makes it available
	// for pulling from the Queue again, unless it has
	// been completed. Workers should use this to return
	// to the queue tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task and removes it
	// from the running state.
	Complete(context.Context, string) error
	// Count returns the number of pending and running
	// tasks in the queue or an error
	Count(context.Context) (int, int, error)
	// Stop stops the queue: any later operation on it
	// fails with ErrStopped.
	Stop(context.Context) error
}

// ErrStopped is returned by the operations of a stopped queue
const ErrStopped = queueError("queue stopped")

type queueError string

func (qe queueError) Error() string {
	return string(qe)
}

type memQueue struct {
	pending []*Task
	running map[string]*Task
	stopped bool
	lock    sync.Mutex
}

// New returns a queue backed only by the process memory
func New() Queue {
	return &memQueue{running: make(map[string]*Task)}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.withLock(ctx, func() error {
		mq.pending = append(mq.pending, t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	var task *Task
	err := mq.withLock(ctx, func() error {
		if len(mq.pending) == 0 {
			return nil
		}
		task = mq.pending[0]
		mq.pending[0] = nil
		mq.pending = mq.pending[1:]
		mq.running[task.ID()] = task
		return nil
	})
	return task, err
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		t, ok := mq.running[id]
		if !ok {
			return nil
		}
		delete(mq.running, id)
		mq.pending = append(mq.pending, t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.withLock(ctx, func() error {
		delete(mq.running, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.withLock(ctx, func() error {
		pending = len(mq.pending)
		running = len(mq.running)
		return nil
	})
	return pending, running, err
}

func (mq *memQueue) Stop(ctx context.Context) error {
	mq.lock.Lock()
	defer mq.lock.Unlock()
	mq.stopped = true
	mq.pending = nil
	return nil
}

func (mq *memQueue) String() string {
	mq.lock.Lock()
	defer mq.lock.Unlock()
	return fmt.Sprintf("{Queue pending: %d running: %d}", len(mq.pending), len(mq.running))
}

func (mq *memQueue) withLock(ctx context.Context, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.lock.Lock()
	defer mq.lock.Unlock()
	if mq.stopped {
		return ErrStopped
	}
	return f()
}
