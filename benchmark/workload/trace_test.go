package workload

import (
	"bytes"
	"path/filepath"
	"testing"

	"TxnKV-Trace/rpc"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_RoundTrip(t *testing.T) {
	for _, fill := range []bool{false, true} {
		c := newTestConfig(77, 40, 3, fill)
		c.NumKeys = 100
		c.OpProbability["xor"] = 0.3
		w, _, err := Generate(c, true)
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "trace.bin")
		require.NoError(t, WriteTrace(path, w))
		back, err := ReadTrace(path)
		require.NoError(t, err)

		assert.Equal(t, w.Waves, back.Waves)
		require.Len(t, back.Txns, len(w.Txns))
		for i := range w.Txns {
			assert.Equal(t, w.Txns[i], back.Txns[i])
		}
		require.NoError(t, Validate(back))
	}
}

func TestTrace_EncodingWidths(t *testing.T) {
	w, _, err := Generate(newTestConfig(5, 20, 2, true), true)
	require.NoError(t, err)
	data, err := Encode(w)
	require.NoError(t, err)

	test := &rpc.Test{}
	require.NoError(t, proto.Unmarshal(data, test))
	require.Len(t, test.GetTxns(), len(w.Txns))
	for _, txn := range test.GetTxns() {
		for _, kv := range txn.GetCmds() {
			require.Len(t, kv.GetKey(), KeySize)
			require.Len(t, kv.GetValue(), ValueSize)
			assert.Zero(t, kv.GetValue()[ValueSize-1]&0x80, "value must stay below 2^63")
		}
	}
	assert.False(t, test.GetTxns()[0].GetIsTxn())
	assert.Equal(t, uint64(0), test.GetTxns()[0].GetTxnId())
}

func TestTrace_WriteTo(t *testing.T) {
	w, _, err := Generate(newTestConfig(8, 4, 1, false), true)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, w))
	data, err := Encode(w)
	require.NoError(t, err)
	assert.Equal(t, data, buf.Bytes())
}

func TestDecode_BadWidths(t *testing.T) {
	for name, kv := range map[string]*rpc.KVPair{
		"short key":  {Key: []byte{1, 2}, Value: make([]byte, ValueSize)},
		"long value": {Key: make([]byte, KeySize), Value: make([]byte, ValueSize+1)},
	} {
		t.Run(name, func(t *testing.T) {
			data, err := proto.Marshal(&rpc.Test{Txns: []*rpc.Txn{{IsTxn: true, TxnId: 1, Cmds: []*rpc.KVPair{kv}}}})
			require.NoError(t, err)
			_, err = Decode(data)
			require.Error(t, err)
		})
	}

	_, err := Decode([]byte{0xff, 0xff, 0xff})
	require.Error(t, err)
}

func TestValidate_Rejects(t *testing.T) {
	fresh := func() *Workload {
		w, _, err := Generate(newTestConfig(9, 12, 3, true), true)
		require.NoError(t, err)
		require.NoError(t, Validate(w))
		return w
	}

	tests := map[string]func(w *Workload){
		"forward reference": func(w *Workload) { w.Txns[1].DependsOn = []uint64{5} },
		"wrong id":          func(w *Workload) { w.Txns[2].Id = 9 },
		"not transactional": func(w *Workload) { w.Txns[3].IsTxn = false },
		"fill with get": func(w *Workload) {
			w.Txns[0].Ops[0].Kind = rpc.OpType_OP_GET
		},
		"control op": func(w *Workload) {
			w.Txns[1].Ops = append(w.Txns[1].Ops, Op{Kind: rpc.OpType_OP_KILL})
		},
		"value too large": func(w *Workload) {
			w.Txns[1].Ops = append(w.Txns[1].Ops, Op{Kind: rpc.OpType_OP_PUT, Value: 1 << 63})
		},
		"fill with deps": func(w *Workload) { w.Txns[0].DependsOn = []uint64{5} },
		"missing wave": func(w *Workload) { w.Waves = w.Waves[:len(w.Waves)-1] },
		"skipped wave": func(w *Workload) {
			last := w.Txns[len(w.Txns)-1]
			last.DependsOn = []uint64{FillTxnId}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			w := fresh()
			mutate(w)
			require.Error(t, Validate(w))
		})
	}
}

func TestComputeStats(t *testing.T) {
	w, _, err := Generate(newTestConfig(10, 30, 4, true), true)
	require.NoError(t, err)
	s := ComputeStats(w)
	assert.Equal(t, 30, s.Txns)
	assert.Equal(t, 1000, s.FillOps)
	assert.Equal(t, len(w.Waves), s.Waves)
	assert.LessOrEqual(t, s.MaxWaveWidth, 30)
	assert.Equal(t, s.SizedOps, s.Ops[rpc.OpType_OP_GET]+s.Ops[rpc.OpType_OP_PUT])
}
