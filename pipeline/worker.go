package pipeline

import (
	"context"

	"github.com/visionlab/patchkit/errors"
)

// message is the tagged union flowing through the batch queue.
// A message is either a batch or the sentinel, never both; the sentinel is
// enqueued exactly once, after the last batch of a run.
type message[T any] struct {
	batch []T
	done  bool
}

// worker is the single consumer of a run's batch queue. It owns the results
// accumulator exclusively until finished is closed; the orchestrator reads
// results and err only after that.
type worker[I, O any] struct {
	queue    <-chan message[I]
	infer    InferFunc[I, O]
	results  [][]O
	err      error
	finished chan struct{}
}

func newWorker[I, O any](queue <-chan message[I], batches int, infer InferFunc[I, O]) *worker[I, O] {
	return &worker[I, O]{
		queue:    queue,
		infer:    infer,
		results:  make([][]O, 0, batches),
		finished: make(chan struct{}),
	}
}

// run consumes messages in FIFO order until it dequeues the sentinel, which
// is the sole normal exit path. An inference failure is fatal: the worker
// stops consuming immediately and the run surfaces the error at the join.
// A result count that does not match the batch is treated the same way:
// a short result must never silently truncate the output.
func (w *worker[I, O]) run(ctx context.Context) {
	defer close(w.finished)
	for {
		msg := <-w.queue
		if msg.done {
			return
		}
		out, err := w.infer(ctx, msg.batch)
		if err != nil {
			w.err = errors.InferenceFailed(len(w.results), err)
			return
		}
		if len(out) != len(msg.batch) {
			w.err = errors.ShortInference(len(w.results), len(msg.batch), len(out))
			return
		}
		w.results = append(w.results, out)
	}
}
