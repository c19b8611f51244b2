package workload

import (
	crand "crypto/rand"
	"math"
	"math/big"
	"math/rand"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ResolveSeed returns *seed, or a seed drawn from system entropy when seed is
// nil. Unless quiet is set the seed is logged so the run can be reproduced.
func ResolveSeed(seed *int64, quiet bool) (int64, error) {
	var s int64
	if seed != nil {
		s = *seed
	} else {
		n, err := crand.Int(crand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			return 0, errors.Wrap(err, "cannot draw a seed from system entropy")
		}
		s = n.Int64()
	}
	if !quiet {
		log.WithField("seed", s).Infof("Used seed value: %v", s)
	}
	return s, nil
}

// NewRand returns the generator every draw of a run goes through.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
