package descriptor

import (
	"context"

	"github.com/visionlab/patchkit/provider"
)

// Inferencer is the interface inference backends must implement. Infer
// computes one FeatureVector per Patch in the batch, preserving order. The
// pipeline calls it sequentially from a single worker, so implementations
// need not be safe for concurrent use within one run.
type Inferencer interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Dimensions returns the length of the feature vectors this backend
	// produces.
	Dimensions() int
	// Infer computes descriptors for one batch of patches.
	Infer(ctx context.Context, batch []Patch) ([]FeatureVector, error)
}

// NewRegistry creates an empty registry for inference backends.
func NewRegistry() *provider.Registry[Inferencer] {
	return provider.NewRegistry[Inferencer]()
}

// FuncInferencer adapts a bare function into an Inferencer. Useful in tests
// and for callers that already hold a session-bound closure.
type FuncInferencer struct {
	// InferName identifies the backend; defaults to "func".
	InferName string
	// Dims is the feature dimensionality reported by Dimensions.
	Dims int
	// Fn is the inference function. Required.
	Fn func(ctx context.Context, batch []Patch) ([]FeatureVector, error)
}

func (f *FuncInferencer) Name() string {
	if f.InferName == "" {
		return "func"
	}
	return f.InferName
}

func (f *FuncInferencer) IsAvailable(_ context.Context) bool { return f.Fn != nil }

func (f *FuncInferencer) Dimensions() int { return f.Dims }

func (f *FuncInferencer) Infer(ctx context.Context, batch []Patch) ([]FeatureVector, error) {
	return f.Fn(ctx, batch)
}
