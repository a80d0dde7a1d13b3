package descriptor

// PatchSize is the side length of a square input patch. Patches are cropped
// to 32x32 grayscale by the upstream collaborator.
const PatchSize = 32

// PatchLen is the flattened length of a Patch.
const PatchLen = PatchSize * PatchSize

// Patch is one fixed-shape grayscale image patch, row-major, length PatchLen.
// Patches are immutable once produced: the pipeline shares subslices of the
// input across goroutines and never copies them.
type Patch []float32

// FeatureVector is the per-patch numeric output of inference.
type FeatureVector []float32

// QuantizedVector is a FeatureVector quantized to uint8 for compact storage
// and Hamming-friendly matching downstream.
type QuantizedVector []uint8
