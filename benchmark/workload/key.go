package workload

import (
	"math/rand"

	"TxnKV-Trace/configuration"
	"TxnKV-Trace/utils"

	"github.com/go-faster/city"
	"github.com/pkg/errors"
)

const (
	KeySize   = 4
	ValueSize = 8
	// values are drawn in [0, MaxValue)
	MaxValue = 1<<63 - 1
)

// HashKey spreads a dense numeric key id over the key space. The result is
// the little-endian CityHash32 of the id's little-endian bytes.
func HashKey(id uint32) [KeySize]byte {
	b := utils.EncodeUint32(id)
	return utils.EncodeUint32(city.Hash32(b[:]))
}

// KeyRange is the half-open interval [Begin, Begin+Count) of numeric key ids
// a run addresses.
type KeyRange struct {
	Begin uint32
	Count uint32
}

// NewKeyRange places numKeys consecutive ids uniformly in the key space.
func NewKeyRange(r *rand.Rand, numKeys int64) (KeyRange, error) {
	if numKeys < 1 || numKeys >= configuration.MaxKey {
		return KeyRange{}, errors.Errorf("invalid number of keys %v", numKeys)
	}
	begin := r.Int63n(configuration.MaxKey - numKeys)
	return KeyRange{Begin: uint32(begin), Count: uint32(numKeys)}, nil
}

// End is the first id past the range.
func (k KeyRange) End() uint64 {
	return uint64(k.Begin) + uint64(k.Count)
}

func (k KeyRange) Contains(id uint32) bool {
	return id >= k.Begin && uint64(id) < k.End()
}

// Pick draws an id uniformly from the range.
func (k KeyRange) Pick(r *rand.Rand) uint32 {
	return k.Begin + uint32(r.Int63n(int64(k.Count)))
}
