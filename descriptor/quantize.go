package descriptor

// Quantize maps float descriptors to uint8 with q = f*128 + 128, clamped to
// [0, 255]. GeoDesc-style descriptors live in [-1, 1], so the mapping uses
// the full byte range.
func Quantize(feats []FeatureVector) []QuantizedVector {
	out := make([]QuantizedVector, len(feats))
	for i, f := range feats {
		q := make(QuantizedVector, len(f))
		for j, v := range f {
			s := v*128 + 128
			switch {
			case s <= 0:
				q[j] = 0
			case s >= 255:
				q[j] = 255
			default:
				q[j] = uint8(s)
			}
		}
		out[i] = q
	}
	return out
}
