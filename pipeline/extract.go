package pipeline

import (
	"context"
	"fmt"

	"github.com/visionlab/patchkit/errors"
)

// DefaultBatchSize is the inference batch size used when none is configured.
const DefaultBatchSize = 512

// InferFunc computes one output per input item for a batch, preserving order.
// It is treated as opaque: the pipeline never retries it and never calls it
// concurrently with itself.
type InferFunc[I, O any] func(ctx context.Context, batch []I) ([]O, error)

// Config configures one extraction run.
type Config struct {
	// BatchSize is the maximum number of items per inference batch.
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`
	// QueueSize bounds the batch queue. Zero sizes the queue to hold the
	// whole run plus the sentinel, so the producer never blocks; a positive
	// value is an accepted backpressure point.
	QueueSize int `json:"queue_size" yaml:"queue_size" mapstructure:"queue_size"`
}

// DefaultConfig returns a config with the default batch size and an
// unbounded queue.
func DefaultConfig() Config {
	return Config{BatchSize: DefaultBatchSize}
}

// Validate checks the config. Both failures are InvalidConfiguration errors
// reported before any queue or worker exists.
func (c Config) Validate() error {
	if c.BatchSize <= 0 {
		return errors.InvalidConfiguration("batch_size",
			fmt.Sprintf("batch size must be positive (got %d)", c.BatchSize))
	}
	if c.QueueSize < 0 {
		return errors.InvalidConfiguration("queue_size",
			fmt.Sprintf("queue size must not be negative (got %d)", c.QueueSize))
	}
	return nil
}

// Extract splits items into batches of at most cfg.BatchSize, streams them to
// a single inference worker, and returns the concatenated outputs in input
// order: output i derives from items[i] for every i. An empty input returns
// an empty result without calling infer. On any inference failure the run
// aborts and returns no result.
//
// ctx is forwarded to infer; the run itself has no timeout. It is a closed,
// single-shot operation, so the final join waits as long as the last
// inference call does.
func Extract[I, O any](ctx context.Context, cfg Config, items []I, infer InferFunc[I, O]) ([]O, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	splitter, err := NewSplitter(items, cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	batches := splitter.Count()
	depth := cfg.QueueSize
	if depth == 0 {
		depth = batches + 1
	}
	queue := make(chan message[I], depth)
	w := newWorker(queue, batches, infer)
	go w.run(ctx)

	// Enqueue every batch, then the sentinel. Nothing is ever sent after the
	// sentinel, so sentinel-is-last holds structurally. Selecting on finished
	// keeps a failed worker from stranding the producer on a bounded queue.
enqueue:
	for {
		batch, ok := splitter.Next()
		if !ok {
			break
		}
		select {
		case queue <- message[I]{batch: batch}:
		case <-w.finished:
			break enqueue
		}
	}
	select {
	case queue <- message[I]{done: true}:
	case <-w.finished:
	}

	// Join. The worker has either consumed the sentinel or failed.
	<-w.finished
	if w.err != nil {
		return nil, w.err
	}

	out := make([]O, 0, len(items))
	for _, r := range w.results {
		out = append(out, r...)
	}
	return out, nil
}
