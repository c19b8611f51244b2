package workload

import (
	"math"
	"math/rand"
	"sort"

	"TxnKV-Trace/configuration"
	"TxnKV-Trace/rpc"

	"github.com/pkg/errors"
)

var ErrEmptyProbability = errors.New("probability table has no GET or PUT weight")

// OpSampler draws operation kinds from a fixed probability table by inverse
// CDF over the cumulative weights. It is never modified after construction,
// reconfiguring means building a new one.
type OpSampler struct {
	table      map[rpc.OpType]float64
	ops        []rpc.OpType
	cumulative []float64
	total      float64
}

// NewOpSampler validates table and builds its cumulative-weight table in enum
// order. Weights need not sum to one. Kinds with zero weight are never drawn.
func NewOpSampler(table map[rpc.OpType]float64) (*OpSampler, error) {
	s := &OpSampler{
		table: make(map[rpc.OpType]float64, len(table)),
	}
	for op, w := range table {
		if !op.IsGenerated() {
			return nil, errors.Wrapf(configuration.ErrUnknownOpType, "%v", op)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Errorf("invalid weight %v for %v", w, op)
		}
		s.table[op] = w
	}

	sizeWeight := 0.0
	for _, op := range rpc.GeneratedOpTypes() {
		w := s.table[op]
		if w == 0 {
			continue
		}
		if op.CountsTowardSize() {
			sizeWeight += w
		}
		s.total += w
		s.ops = append(s.ops, op)
		s.cumulative = append(s.cumulative, s.total)
	}
	if sizeWeight == 0 {
		return nil, ErrEmptyProbability
	}
	return s, nil
}

// NewOpSamplerFromConfig builds the sampler described by c's table.
func NewOpSamplerFromConfig(c *configuration.TraceConfig) (*OpSampler, error) {
	table, err := c.OpTable()
	if err != nil {
		return nil, err
	}
	return NewOpSampler(table)
}

func DefaultOpSampler() *OpSampler {
	s, err := NewOpSamplerFromConfig(configuration.NewTraceConfig())
	if err != nil {
		panic(err)
	}
	return s
}

// Sample returns the first kind whose cumulative weight reaches a uniform
// draw over the total weight.
func (s *OpSampler) Sample(r *rand.Rand) rpc.OpType {
	u := r.Float64() * s.total
	i := sort.SearchFloat64s(s.cumulative, u)
	if i == len(s.cumulative) {
		i--
	}
	return s.ops[i]
}

// Table returns a copy of the probability table.
func (s *OpSampler) Table() map[rpc.OpType]float64 {
	t := make(map[rpc.OpType]float64, len(s.table))
	for op, w := range s.table {
		t[op] = w
	}
	return t
}

func (s *OpSampler) Total() float64 {
	return s.total
}
