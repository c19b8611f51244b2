package workload

import (
	"bytes"
	"testing"

	"TxnKV-Trace/configuration"
	"TxnKV-Trace/rpc"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(seed int64, txns int, parallel int, fill bool) *configuration.TraceConfig {
	c := configuration.NewTraceConfig()
	c.Seed = &seed
	c.NumTxns = txns
	c.NumParallel = parallel
	c.FillKvStore = fill
	return c
}

func newTestGenerator(t *testing.T, seed int64, parallel int, fill bool) *Generator {
	g, err := NewGenerator(NewRand(seed), DefaultOpSampler(), KeyRange{Begin: 1000, Count: 64}, parallel, fill)
	require.NoError(t, err)
	return g
}

func TestGenerate_SequentialWaves(t *testing.T) {
	w, seed, err := Generate(newTestConfig(11, 3, 1, false), true)
	require.NoError(t, err)
	assert.Equal(t, int64(11), seed)

	require.Len(t, w.Txns, 3)
	assert.Nil(t, w.Fill())
	assert.Equal(t, [][]uint64{{1}, {2}, {3}}, w.Waves)
	assert.Equal(t, []uint64{}, w.Txns[0].DependsOn)
	assert.Equal(t, []uint64{1}, w.Txns[1].DependsOn)
	assert.Equal(t, []uint64{2}, w.Txns[2].DependsOn)
	for i, txn := range w.Txns {
		assert.True(t, txn.IsTxn)
		assert.Equal(t, uint64(i+1), txn.Id)
	}
	require.NoError(t, Validate(w))
}

func TestGenerate_ParallelWithFill(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		w, _, err := Generate(newTestConfig(seed, 5, 5, true), true)
		require.NoError(t, err)
		require.NoError(t, Validate(w))

		fill := w.Fill()
		require.NotNil(t, fill)
		assert.False(t, fill.IsTxn)
		assert.Equal(t, uint64(0), fill.Id)
		assert.Len(t, fill.Ops, configuration.DefaultNumKeys)
		require.Len(t, w.Txns, 6)

		require.NotEmpty(t, w.Waves)
		first := w.Waves[0]
		assert.LessOrEqual(t, len(first), 5)
		for _, id := range first {
			assert.Equal(t, []uint64{0}, w.Txns[id].DependsOn)
		}
		for k := 1; k < len(w.Waves); k++ {
			for _, id := range w.Waves[k] {
				assert.Equal(t, w.Waves[k-1], w.Txns[id].DependsOn)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	build := func(seed int64) []byte {
		c := newTestConfig(seed, 50, 4, true)
		c.NumKeys = 200
		c.OpProbability["add"] = 0.2
		w, _, err := Generate(c, true)
		require.NoError(t, err)
		data, err := Encode(w)
		require.NoError(t, err)
		return data
	}

	a := build(123)
	b := build(123)
	assert.True(t, bytes.Equal(a, b))
	assert.False(t, bytes.Equal(a, build(124)))
}

func TestGenerate_InvalidConfig(t *testing.T) {
	_, _, err := Generate(newTestConfig(1, 3, 0, false), true)
	require.Error(t, err)

	c := newTestConfig(1, 3, 1, false)
	c.OpProbability = map[string]float64{"add": 1}
	_, _, err = Generate(c, true)
	assert.Equal(t, ErrEmptyProbability, errors.Cause(err))
}

func TestGenerate_NoTxns(t *testing.T) {
	w, _, err := Generate(newTestConfig(3, 0, 3, true), true)
	require.NoError(t, err)
	require.Len(t, w.Txns, 1)
	assert.Empty(t, w.Waves)
	require.NoError(t, Validate(w))
}

func TestNewGenerator_InvalidParallelism(t *testing.T) {
	for _, p := range []int{0, -3} {
		_, err := NewGenerator(NewRand(1), DefaultOpSampler(), KeyRange{Begin: 0, Count: 1}, p, false)
		assert.Equal(t, ErrInvalidParallelism, errors.Cause(err))
	}
}

func TestBuildTxn_SizeCounting(t *testing.T) {
	table := map[rpc.OpType]float64{
		rpc.OpType_OP_GET: 1,
		rpc.OpType_OP_PUT: 1,
		rpc.OpType_OP_SET: 3,
		rpc.OpType_OP_NAND: 3,
	}
	s, err := NewOpSampler(table)
	require.NoError(t, err)
	keys := KeyRange{Begin: 40, Count: 8}
	g, err := NewGenerator(NewRand(21), s, keys, 1, false)
	require.NoError(t, err)

	others := 0
	for size := 0; size < 30; size++ {
		deps := []uint64{7, 8}
		txn := g.BuildTxn(uint64(size+1), size, deps)
		assert.Equal(t, size, txn.Size())
		assert.Equal(t, deps, txn.DependsOn)
		assert.True(t, txn.IsTxn)
		others += len(txn.Ops) - txn.Size()
		if size > 0 {
			assert.True(t, txn.Ops[len(txn.Ops)-1].Kind.CountsTowardSize(), "txn ends on the op reaching its size")
		}
		for _, op := range txn.Ops {
			assert.Less(t, op.Value, uint64(MaxValue))
			assert.Contains(t, table, op.Kind)
		}
	}
	assert.Greater(t, others, 0)
}

func TestBuildTxn_KeysInRange(t *testing.T) {
	g := newTestGenerator(t, 2, 1, false)
	valid := make(map[[KeySize]byte]bool)
	for id := uint64(1000); id < 1064; id++ {
		valid[HashKey(uint32(id))] = true
	}
	txn := g.BuildTxn(1, 200, []uint64{})
	for _, op := range txn.Ops {
		assert.True(t, valid[op.Key])
	}
}

func TestBuildFill(t *testing.T) {
	g := newTestGenerator(t, 3, 1, true)
	fill := g.BuildFill()
	assert.False(t, fill.IsTxn)
	assert.Equal(t, uint64(FillTxnId), fill.Id)
	assert.Empty(t, fill.DependsOn)
	require.Len(t, fill.Ops, 64)
	for i, op := range fill.Ops {
		assert.Equal(t, rpc.OpType_OP_PUT, op.Kind)
		assert.Equal(t, HashKey(uint32(1000+i)), op.Key)
		assert.Less(t, op.Value, uint64(MaxValue))
	}
	assert.True(t, fill.IsFill())
}

func TestBuildWorkload_Waves(t *testing.T) {
	sizes := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}
	for _, fill := range []bool{false, true} {
		g := newTestGenerator(t, 4, 4, fill)
		w, err := g.BuildWorkload(sizes)
		require.NoError(t, err)
		require.Len(t, w.Txns, len(sizes))

		next := uint64(1)
		prev := []uint64{}
		if fill {
			prev = []uint64{FillTxnId}
		}
		for _, wave := range w.Waves {
			require.NotEmpty(t, wave)
			for _, id := range wave {
				require.Equal(t, next, id, "ids are consecutive")
				txn := w.Txns[id-1]
				assert.Equal(t, prev, txn.DependsOn)
				assert.Equal(t, sizes[id-1], txn.Size())
				next++
			}
			prev = wave
		}
		assert.Equal(t, uint64(len(sizes)+1), next)
	}
}

func TestBuildWorkload_DependsOnAreCopies(t *testing.T) {
	g := newTestGenerator(t, 5, 8, true)
	w, err := g.BuildWorkload([]int{1, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	w.Txns[0].DependsOn[0] = 99
	for _, txn := range w.Txns[1:] {
		assert.NotContains(t, txn.DependsOn, uint64(99))
	}
}

func TestBuildWorkload_SingleWaveTakesRest(t *testing.T) {
	// the width draw is clipped to what is left
	g := newTestGenerator(t, 6, 1000, false)
	w, err := g.BuildWorkload([]int{2, 2, 2})
	require.NoError(t, err)
	require.Len(t, w.Waves, 1)
	assert.Equal(t, []uint64{1, 2, 3}, w.Waves[0])
}

func TestBuildWorkload_NegativeSize(t *testing.T) {
	g := newTestGenerator(t, 6, 2, false)
	_, err := g.BuildWorkload([]int{3, -1})
	require.Error(t, err)

	w, err := g.BuildWorkload([]int{0, 2})
	require.NoError(t, err)
	assert.Len(t, w.Txns, 2)
}
