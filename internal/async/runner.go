// Package async runs background work whose results come back to the event
// loop as ordinary actions.
package async

import (
	"context"
	"sync"

	"github.com/kk-code-lab/fluxdir/internal/state"
)

// Task produces the completion action for one piece of background work.
// It should return promptly once ctx is done; a nil action is dropped.
type Task func(ctx context.Context) state.Action

// Runner starts tasks tagged with an epoch. Starting a task for a new epoch
// cancels every task of the previous ones, so only one generation is in
// flight. Epochs are compared for equality only: undo can move the load
// epoch backwards.
type Runner struct {
	mu      sync.Mutex
	results chan state.Action
	cancels map[int]context.CancelFunc
	current int
	nextID  int
	tasks   map[int]int // task id -> epoch
	wg      sync.WaitGroup
	closed  bool
}

// NewRunner creates a runner whose result channel holds buffer actions.
func NewRunner(buffer int) *Runner {
	if buffer < 1 {
		buffer = 1
	}
	return &Runner{
		results: make(chan state.Action, buffer),
		cancels: make(map[int]context.CancelFunc),
		tasks:   make(map[int]int),
	}
}

// Results delivers completion actions. It is never closed; select on it
// from the event loop.
func (r *Runner) Results() <-chan state.Action {
	return r.results
}

// Go runs fn in a new goroutine, first cancelling tasks that belong to a
// different epoch.
func (r *Runner) Go(epoch int, fn Task) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if epoch != r.current {
		r.current = epoch
		r.cancelOthersLocked(epoch)
	}
	ctx, cancel := context.WithCancel(context.Background())
	id := r.nextID
	r.nextID++
	r.cancels[id] = cancel
	r.tasks[id] = epoch
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.finish(id)

		action := fn(ctx)
		if action == nil || ctx.Err() != nil {
			return
		}
		select {
		case r.results <- action:
		case <-ctx.Done():
		}
	}()
}

func (r *Runner) cancelOthersLocked(epoch int) {
	for id, e := range r.tasks {
		if e != epoch {
			r.cancels[id]()
			delete(r.cancels, id)
			delete(r.tasks, id)
		}
	}
}

func (r *Runner) finish(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.cancels[id]; ok {
		cancel()
		delete(r.cancels, id)
		delete(r.tasks, id)
	}
}

// Pending reports how many tasks are still running.
func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

// Cancel stops every in-flight task. Their results are discarded.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cancel := range r.cancels {
		cancel()
		delete(r.cancels, id)
		delete(r.tasks, id)
	}
}

// Close cancels everything, waits for the goroutines to exit and refuses
// further tasks.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.Cancel()
	r.wg.Wait()
}
