package workload

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSize_ZeroMean(t *testing.T) {
	r := NewRand(1)
	for _, sigma := range []float64{0, 1, 100} {
		n, err := NextSize(r, 0, sigma)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	}
}

func TestNextSize_NonNegative(t *testing.T) {
	r := NewRand(2)
	for _, mean := range []float64{0.1, 1, 4, 10, 1000} {
		sum := 0
		for i := 0; i < 2000; i++ {
			n, err := NextSize(r, mean, 0)
			require.NoError(t, err)
			require.GreaterOrEqual(t, n, 0)
			sum += n
		}
		// truncation pulls the average a little under the mean
		avg := float64(sum) / 2000
		assert.InDelta(t, mean, avg, mean*0.1+1, "mean %v", mean)
	}
}

func TestNextSize_WideSigma(t *testing.T) {
	// with sigma far above the mean most draws are negative and get redrawn
	r := NewRand(3)
	for i := 0; i < 500; i++ {
		n, err := NextSize(r, 1, 50)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 0)
	}
}

func TestNextSize_GivesUp(t *testing.T) {
	// a negative mean with a tiny sigma never yields a non-negative draw
	_, err := NextSize(NewRand(4), -1000, 1)
	require.Error(t, err)
	assert.Equal(t, ErrSizeSampling, errors.Cause(err))
}

func TestResolveSeed(t *testing.T) {
	seed := int64(12345)
	s, err := ResolveSeed(&seed, true)
	require.NoError(t, err)
	assert.Equal(t, seed, s)

	s1, err := ResolveSeed(nil, true)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s1, int64(0))

	assert.Equal(t, NewRand(9).Int63(), NewRand(9).Int63())
}
