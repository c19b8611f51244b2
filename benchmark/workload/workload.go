package workload

import (
	"math/rand"

	"TxnKV-Trace/configuration"
	"TxnKV-Trace/rpc"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidParallelism = errors.New("max parallelism must be at least 1")

// Generator builds transactions over one key range. It is not safe for
// concurrent use: every draw goes through the same *rand.Rand so that a seed
// fully determines the output.
type Generator struct {
	rand        *rand.Rand
	sampler     *OpSampler
	keys        KeyRange
	maxParallel int
	fill        bool
}

func NewGenerator(
	r *rand.Rand,
	sampler *OpSampler,
	keys KeyRange,
	maxParallel int,
	fill bool,
) (*Generator, error) {
	if maxParallel < 1 {
		return nil, errors.Wrapf(ErrInvalidParallelism, "got %v", maxParallel)
	}
	if keys.Count == 0 {
		return nil, errors.New("empty key range")
	}
	return &Generator{
		rand:        r,
		sampler:     sampler,
		keys:        keys,
		maxParallel: maxParallel,
		fill:        fill,
	}, nil
}

func (g *Generator) KeyRange() KeyRange {
	return g.keys
}

// BuildTxn appends random operations until targetSize of them are GETs or
// PUTs. dependsOn is kept as given.
func (g *Generator) BuildTxn(id uint64, targetSize int, dependsOn []uint64) *Txn {
	if targetSize < 0 {
		targetSize = 0
	}
	txn := &Txn{
		IsTxn:     true,
		Id:        id,
		DependsOn: dependsOn,
		Ops:       make([]Op, 0, targetSize),
	}
	for n := 0; n < targetSize; {
		key := HashKey(g.keys.Pick(g.rand))
		value := uint64(g.rand.Int63n(MaxValue))
		kind := g.sampler.Sample(g.rand)
		txn.Ops = append(txn.Ops, Op{Key: key, Value: value, Kind: kind})
		if kind.CountsTowardSize() {
			n++
		}
	}
	log.Debugf("txn %v: %v ops, target size %v, depends on %v", id, len(txn.Ops), targetSize, dependsOn)
	return txn
}

// BuildFill returns the non-transactional batch that PUTs every key of the
// range once, in range order.
func (g *Generator) BuildFill() *Txn {
	txn := &Txn{
		IsTxn:     false,
		Id:        FillTxnId,
		DependsOn: []uint64{},
		Ops:       make([]Op, 0, g.keys.Count),
	}
	for i := uint64(g.keys.Begin); i < g.keys.End(); i++ {
		txn.Ops = append(txn.Ops, Op{
			Key:   HashKey(uint32(i)),
			Value: uint64(g.rand.Int63n(MaxValue)),
			Kind:  rpc.OpType_OP_PUT,
		})
	}
	return txn
}

// BuildWorkload turns the per-transaction target sizes into waves of
// independent transactions. Ids start at 1. Every transaction of a wave
// depends on all ids of the previous wave; the first wave depends on the
// fill transaction when the generator fills the store, and on nothing
// otherwise.
func (g *Generator) BuildWorkload(sizes []int) (*Workload, error) {
	w := &Workload{
		Txns:  make([]*Txn, 0, len(sizes)),
		Waves: make([][]uint64, 0),
	}
	for i, size := range sizes {
		if size < 0 {
			return nil, errors.Errorf("txn %v has negative size %v", i+1, size)
		}
	}
	frontier := []uint64{}
	if g.fill {
		frontier = []uint64{FillTxnId}
	}

	for i := 0; i < len(sizes); {
		width, err := NextSize(g.rand, float64(g.maxParallel-1), 0)
		if err != nil {
			return nil, errors.Wrap(err, "cannot draw a wave width")
		}
		width++
		if remaining := len(sizes) - i; width > remaining {
			width = remaining
		}

		wave := make([]uint64, 0, width)
		for j := 0; j < width; j++ {
			id := uint64(i + j + 1)
			deps := make([]uint64, len(frontier))
			copy(deps, frontier)
			w.Txns = append(w.Txns, g.BuildTxn(id, sizes[i+j], deps))
			wave = append(wave, id)
		}
		w.Waves = append(w.Waves, wave)
		log.Debugf("wave %v: txns %v", len(w.Waves)-1, wave)

		frontier = wave
		i += width
	}
	return w, nil
}

// Generate runs the whole pipeline for c: seed, key range, transaction
// sizes, the optional fill transaction, then the waves. It returns the
// workload and the seed it was generated with.
func Generate(c *configuration.TraceConfig, quiet bool) (*Workload, int64, error) {
	if err := c.Validate(); err != nil {
		return nil, 0, err
	}
	seed, err := ResolveSeed(c.Seed, quiet)
	if err != nil {
		return nil, 0, err
	}
	sampler, err := NewOpSamplerFromConfig(c)
	if err != nil {
		return nil, seed, err
	}

	r := NewRand(seed)
	keys, err := NewKeyRange(r, c.NumKeys)
	if err != nil {
		return nil, seed, err
	}
	sizes := make([]int, c.NumTxns)
	for i := range sizes {
		if sizes[i], err = NextSize(r, float64(c.NumOps), 0); err != nil {
			return nil, seed, errors.Wrapf(err, "cannot draw the size of txn %v", i+1)
		}
	}

	g, err := NewGenerator(r, sampler, keys, c.NumParallel, c.FillKvStore)
	if err != nil {
		return nil, seed, err
	}

	var fill *Txn
	if c.FillKvStore {
		fill = g.BuildFill()
	}
	w, err := g.BuildWorkload(sizes)
	if err != nil {
		return nil, seed, err
	}
	if fill != nil {
		w.Txns = append([]*Txn{fill}, w.Txns...)
	}

	log.WithFields(log.Fields{
		"seed":  seed,
		"txns":  len(w.Txns),
		"waves": len(w.Waves),
		"ops":   w.NumOps(),
		"keys":  keys.Count,
		"begin": keys.Begin,
	}).Info("generated workload")
	return w, seed, nil
}
