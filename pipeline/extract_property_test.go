package pipeline

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_SplitterBatchCount(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("splitting n items yields ceil(n/size) batches, all full except possibly the last", prop.ForAll(
		func(n, size int) bool {
			s, err := NewSplitter(seq(n), size)
			if err != nil {
				return false
			}
			want := (n + size - 1) / size
			var batches [][]int
			for {
				b, ok := s.Next()
				if !ok {
					break
				}
				batches = append(batches, b)
			}
			if len(batches) != want || s.Count() != want {
				return false
			}
			for i, b := range batches {
				if len(b) == 0 {
					return false
				}
				if i < len(batches)-1 && len(b) != size {
					return false
				}
				if len(b) > size {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 300),
		gen.IntRange(1, 64),
	))

	properties.TestingRun(t)
}

func TestProperty_ExtractOrderPreservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("output i derives from input i for every (n, batch_size, queue_size)", prop.ForAll(
		func(n, size, queue int) bool {
			items := seq(n)
			got, err := Extract(context.Background(), Config{BatchSize: size, QueueSize: queue}, items,
				func(_ context.Context, batch []int) ([]int, error) {
					out := make([]int, len(batch))
					for i, v := range batch {
						out[i] = v + 1000
					}
					return out, nil
				})
			if err != nil {
				return false
			}
			if len(got) != n {
				return false
			}
			for i, v := range got {
				if v != i+1000 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 200),
		gen.IntRange(1, 50),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
