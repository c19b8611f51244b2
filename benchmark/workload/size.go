package workload

import (
	"math/rand"

	"github.com/pkg/errors"
)

// MaxSizeDraws bounds the number of normal draws NextSize makes before it
// gives up on finding a non-negative value.
const MaxSizeDraws = 10000

var ErrSizeSampling = errors.New("cannot draw a non-negative size")

// NextSize draws a non-negative integer from a normal distribution around
// mean. A zero sigma means mean/4. A zero mean always yields 0.
func NextSize(r *rand.Rand, mean float64, sigma float64) (int, error) {
	if mean == 0 {
		return 0, nil
	}
	if sigma == 0 {
		sigma = mean / 4
	}
	for i := 0; i < MaxSizeDraws; i++ {
		v := r.NormFloat64()*sigma + mean
		if v >= 0 {
			return int(v), nil
		}
	}
	return 0, errors.Wrapf(ErrSizeSampling, "mean %v sigma %v after %v draws", mean, sigma, MaxSizeDraws)
}
