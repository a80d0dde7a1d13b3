package pipeline

import (
	"fmt"

	"github.com/visionlab/patchkit/errors"
)

// Splitter lazily partitions an ordered item sequence into contiguous
// batches of at most size items. The final batch may be shorter. Batches are
// subslices of the input; the caller must not mutate the items while a run
// is in flight.
type Splitter[T any] struct {
	items []T
	size  int
	off   int
}

// NewSplitter creates a splitter over items with the given batch size.
// A non-positive size is an InvalidConfiguration error.
func NewSplitter[T any](items []T, size int) (*Splitter[T], error) {
	if size <= 0 {
		return nil, errors.InvalidConfiguration("batch_size",
			fmt.Sprintf("batch size must be positive (got %d)", size))
	}
	return &Splitter[T]{items: items, size: size}, nil
}

// Count returns the total number of batches the splitter produces:
// ceil(len(items)/size), 0 for an empty input.
func (s *Splitter[T]) Count() int {
	return (len(s.items) + s.size - 1) / s.size
}

// Next returns the next batch in order, or false when exhausted.
// Every returned batch is non-empty.
func (s *Splitter[T]) Next() ([]T, bool) {
	if s.off >= len(s.items) {
		return nil, false
	}
	end := s.off + s.size
	if end > len(s.items) {
		end = len(s.items)
	}
	batch := s.items[s.off:end:end]
	s.off = end
	return batch, true
}
