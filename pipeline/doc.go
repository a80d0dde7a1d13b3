// Package pipeline implements the batched extraction core: it partitions an
// ordered item sequence into bounded-size batches, streams them over a
// channel to exactly one inference worker, and reassembles the per-batch
// outputs into a single ordered result.
//
// The package is generic and knows nothing about patches or feature vectors;
// the descriptor package binds it to the image-descriptor domain.
//
// # Guarantees
//
//   - Batches are contiguous, non-overlapping, and at most BatchSize long;
//     only the final batch of a run may be shorter.
//   - Enqueue order == dequeue order == result order. The single worker calls
//     the inference function sequentially, never concurrently with itself.
//   - Termination is signalled by an explicit sentinel message enqueued
//     exactly once, after the last batch. Channel close is deliberately not
//     used as the end-of-stream signal so the invariant stays visible in the
//     message type.
//   - An inference failure aborts the run: no retry, no partial results.
//
// # Usage
//
//	feats, err := pipeline.Extract(ctx, pipeline.DefaultConfig(), patches,
//	    func(ctx context.Context, batch []Patch) ([]Vec, error) {
//	        return model.Infer(ctx, batch)
//	    })
package pipeline
