package pipeline

import (
	"testing"

	"github.com/visionlab/patchkit/errors"
)

func collectBatches(t *testing.T, items []int, size int) [][]int {
	t.Helper()
	s, err := NewSplitter(items, size)
	if err != nil {
		t.Fatalf("NewSplitter(%d items, size %d): %v", len(items), size, err)
	}
	var out [][]int
	for {
		b, ok := s.Next()
		if !ok {
			return out
		}
		out = append(out, b)
	}
}

func seq(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestSplitter_Sizes(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		size      int
		wantSizes []int
	}{
		{"10 items size 4", 10, 4, []int{4, 4, 2}},
		{"exact multiple", 8, 4, []int{4, 4}},
		{"single full batch", 5, 5, []int{5}},
		{"size larger than input", 3, 10, []int{3}},
		{"size 1", 3, 1, []int{1, 1, 1}},
		{"empty input", 0, 4, nil},
		{"one item", 1, 512, []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := collectBatches(t, seq(tt.n), tt.size)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			for i, b := range batches {
				if len(b) != tt.wantSizes[i] {
					t.Errorf("batch %d has %d items, want %d", i, len(b), tt.wantSizes[i])
				}
			}
		})
	}
}

func TestSplitter_Count(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{10, 4, 3},
		{512, 512, 1},
		{513, 512, 2},
	}
	for _, tt := range tests {
		s, err := NewSplitter(seq(tt.n), tt.size)
		if err != nil {
			t.Fatal(err)
		}
		if got := s.Count(); got != tt.want {
			t.Errorf("Count(n=%d, size=%d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestSplitter_PreservesOrderAndCoverage(t *testing.T) {
	items := seq(23)
	var rebuilt []int
	for _, b := range collectBatches(t, items, 7) {
		rebuilt = append(rebuilt, b...)
	}
	if len(rebuilt) != len(items) {
		t.Fatalf("rebuilt %d items, want %d", len(rebuilt), len(items))
	}
	for i, v := range rebuilt {
		if v != i {
			t.Fatalf("item %d out of order: got %d", i, v)
		}
	}
}

func TestSplitter_Idempotent(t *testing.T) {
	items := seq(17)
	first := collectBatches(t, items, 5)
	second := collectBatches(t, items, 5)
	if len(first) != len(second) {
		t.Fatalf("batch counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if len(first[i]) != len(second[i]) || &first[i][0] != &second[i][0] {
			t.Errorf("batch %d boundaries differ between runs", i)
		}
	}
}

func TestNewSplitter_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, -512} {
		_, err := NewSplitter(seq(10), size)
		if err == nil {
			t.Fatalf("expected error for size %d", size)
		}
		if errors.CodeOf(err) != errors.ErrCodeInvalidConfiguration {
			t.Errorf("got code %s, want %s", errors.CodeOf(err), errors.ErrCodeInvalidConfiguration)
		}
	}
}
