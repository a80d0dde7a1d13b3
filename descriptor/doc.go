// Package descriptor binds the generic batching pipeline to the image-patch
// descriptor domain: fixed-shape patches in, one feature vector per patch
// out, computed by a pluggable inference backend.
//
// Keypoint detection, patch cropping, and descriptor matching are external
// collaborators; this package owns only the extraction contract around the
// opaque backend.
package descriptor
