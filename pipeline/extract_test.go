package pipeline

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"

	"github.com/visionlab/patchkit/errors"
)

// doubler is an inference function that maps each item to item*2.
func doubler(_ context.Context, batch []int) ([]int, error) {
	out := make([]int, len(batch))
	for i, v := range batch {
		out[i] = v * 2
	}
	return out, nil
}

func TestExtract_OrderPreserved(t *testing.T) {
	items := seq(10)
	got, err := Extract(context.Background(), Config{BatchSize: 4}, items, doubler)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(items) {
		t.Fatalf("got %d results, want %d", len(got), len(items))
	}
	for i, v := range got {
		if v != i*2 {
			t.Errorf("result %d = %d, want %d", i, v, i*2)
		}
	}
}

func TestExtract_BatchBoundaries(t *testing.T) {
	var sizes []int
	_, err := Extract(context.Background(), Config{BatchSize: 4}, seq(10),
		func(_ context.Context, batch []int) ([]int, error) {
			sizes = append(sizes, len(batch))
			return make([]int, len(batch)), nil
		})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("got %d batches, want %d", len(sizes), len(want))
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("batch %d size = %d, want %d", i, sizes[i], want[i])
		}
	}
}

func TestExtract_SingleFullBatch(t *testing.T) {
	calls := 0
	got, err := Extract(context.Background(), Config{BatchSize: 5}, seq(5),
		func(ctx context.Context, batch []int) ([]int, error) {
			calls++
			if len(batch) != 5 {
				t.Errorf("batch size = %d, want 5", len(batch))
			}
			return doubler(ctx, batch)
		})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one inference call, got %d", calls)
	}
	if len(got) != 5 {
		t.Errorf("got %d results, want 5", len(got))
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	called := false
	got, err := Extract(context.Background(), Config{BatchSize: 4}, []int{},
		func(_ context.Context, batch []int) ([]int, error) {
			called = true
			return nil, nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if called {
		t.Error("inference must not run for an empty input")
	}
}

func TestExtract_InvalidBatchSize(t *testing.T) {
	called := false
	for _, size := range []int{0, -1} {
		_, err := Extract(context.Background(), Config{BatchSize: size}, seq(10),
			func(_ context.Context, batch []int) ([]int, error) {
				called = true
				return nil, nil
			})
		if err == nil {
			t.Fatalf("expected error for batch size %d", size)
		}
		if errors.CodeOf(err) != errors.ErrCodeInvalidConfiguration {
			t.Errorf("got code %s, want %s", errors.CodeOf(err), errors.ErrCodeInvalidConfiguration)
		}
	}
	if called {
		t.Error("inference must not run on invalid configuration")
	}
}

func TestExtract_NegativeQueueSize(t *testing.T) {
	_, err := Extract(context.Background(), Config{BatchSize: 4, QueueSize: -1}, seq(10), doubler)
	if errors.CodeOf(err) != errors.ErrCodeInvalidConfiguration {
		t.Fatalf("got %v, want InvalidConfiguration", err)
	}
}

func TestExtract_InferenceFailureIsFatal(t *testing.T) {
	boom := stderrors.New("model crashed")
	calls := 0
	got, err := Extract(context.Background(), Config{BatchSize: 4}, seq(10),
		func(_ context.Context, batch []int) ([]int, error) {
			calls++
			if calls == 2 {
				return nil, boom
			}
			return make([]int, len(batch)), nil
		})
	if got != nil {
		t.Errorf("expected no partial result, got %d entries", len(got))
	}
	if errors.CodeOf(err) != errors.ErrCodeInferenceFailed {
		t.Fatalf("got code %s, want %s", errors.CodeOf(err), errors.ErrCodeInferenceFailed)
	}
	if !stderrors.Is(err, boom) {
		t.Error("expected the backend error in the chain")
	}
	if calls != 2 {
		t.Errorf("worker must stop after the failing batch, got %d calls", calls)
	}
}

func TestExtract_ShortInferenceResult(t *testing.T) {
	_, err := Extract(context.Background(), Config{BatchSize: 4}, seq(10),
		func(_ context.Context, batch []int) ([]int, error) {
			return make([]int, len(batch)-1), nil
		})
	if errors.CodeOf(err) != errors.ErrCodeShortInference {
		t.Fatalf("got %v, want ShortInference", err)
	}
}

func TestExtract_SingleConsumer(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	_, err := Extract(context.Background(), Config{BatchSize: 2}, seq(40),
		func(ctx context.Context, batch []int) ([]int, error) {
			cur := inFlight.Add(1)
			if cur > maxInFlight.Load() {
				maxInFlight.Store(cur)
			}
			defer inFlight.Add(-1)
			return doubler(ctx, batch)
		})
	if err != nil {
		t.Fatal(err)
	}
	if maxInFlight.Load() != 1 {
		t.Errorf("inference ran with concurrency %d, want 1", maxInFlight.Load())
	}
}

func TestExtract_FIFO(t *testing.T) {
	var firsts []int
	_, err := Extract(context.Background(), Config{BatchSize: 3}, seq(20),
		func(_ context.Context, batch []int) ([]int, error) {
			firsts = append(firsts, batch[0])
			return make([]int, len(batch)), nil
		})
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(firsts); i++ {
		if firsts[i] <= firsts[i-1] {
			t.Fatalf("batches dequeued out of order: %v", firsts)
		}
	}
}

func TestExtract_BoundedQueue(t *testing.T) {
	items := seq(50)
	got, err := Extract(context.Background(), Config{BatchSize: 4, QueueSize: 1}, items, doubler)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range got {
		if v != i*2 {
			t.Fatalf("result %d = %d, want %d", i, v, i*2)
		}
	}
}

func TestExtract_BoundedQueueFailureDoesNotDeadlock(t *testing.T) {
	// First batch fails while the producer still has plenty to enqueue into a
	// depth-1 queue; the run must still return.
	boom := stderrors.New("dead on arrival")
	_, err := Extract(context.Background(), Config{BatchSize: 1, QueueSize: 1}, seq(1000),
		func(_ context.Context, batch []int) ([]int, error) {
			return nil, boom
		})
	if errors.CodeOf(err) != errors.ErrCodeInferenceFailed {
		t.Fatalf("got %v, want InferenceFailed", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"bounded queue", Config{BatchSize: 8, QueueSize: 2}, false},
		{"zero batch size", Config{}, true},
		{"negative batch size", Config{BatchSize: -4}, true},
		{"negative queue size", Config{BatchSize: 4, QueueSize: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("default batch size = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if cfg.QueueSize != 0 {
		t.Errorf("default queue size = %d, want 0 (unbounded)", cfg.QueueSize)
	}
}
