package word2vec

import "math"

// pow075 returns x^0.75. Negative-sampling's frequency smoothing
// exponent is fixed by the data model, so this is a named helper
// rather than a repeated math.Pow(x, 0.75) literal scattered through
// negsample.go.
func pow075(x float64) float64 {
	return math.Pow(x, 0.75)
}
