package workload

import (
	"io"
	"io/ioutil"
	"reflect"

	"TxnKV-Trace/rpc"
	"TxnKV-Trace/utils"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
)

// ToProto converts w into the message the replay client reads.
func ToProto(w *Workload) *rpc.Test {
	test := &rpc.Test{
		Txns: make([]*rpc.Txn, 0, len(w.Txns)),
	}
	for _, t := range w.Txns {
		txn := &rpc.Txn{
			IsTxn:     t.IsTxn,
			TxnId:     t.Id,
			DependsOn: t.DependsOn,
			Cmds:      make([]*rpc.KVPair, 0, len(t.Ops)),
		}
		for _, op := range t.Ops {
			key := op.Key
			value := utils.EncodeUint64(op.Value)
			txn.Cmds = append(txn.Cmds, &rpc.KVPair{
				Key:   key[:],
				Value: value[:],
				Op:    op.Kind,
			})
		}
		test.Txns = append(test.Txns, txn)
	}
	return test
}

// FromProto converts a decoded trace back into a Workload. Waves are
// recovered from runs of transactions sharing the same dependency set.
func FromProto(test *rpc.Test) (*Workload, error) {
	w := &Workload{
		Txns:  make([]*Txn, 0, len(test.GetTxns())),
		Waves: make([][]uint64, 0),
	}
	var prevDeps []uint64
	for i, pt := range test.GetTxns() {
		t := &Txn{
			IsTxn:     pt.GetIsTxn(),
			Id:        pt.GetTxnId(),
			DependsOn: pt.GetDependsOn(),
			Ops:       make([]Op, 0, len(pt.GetCmds())),
		}
		if t.DependsOn == nil {
			t.DependsOn = []uint64{}
		}
		for j, kv := range pt.GetCmds() {
			if len(kv.GetKey()) != KeySize {
				return nil, errors.Errorf("txn %v op %v: key has %v bytes, want %v", t.Id, j, len(kv.GetKey()), KeySize)
			}
			if len(kv.GetValue()) != ValueSize {
				return nil, errors.Errorf("txn %v op %v: value has %v bytes, want %v", t.Id, j, len(kv.GetValue()), ValueSize)
			}
			op := Op{
				Value: utils.DecodeUint64(kv.GetValue()),
				Kind:  kv.GetOp(),
			}
			copy(op.Key[:], kv.GetKey())
			t.Ops = append(t.Ops, op)
		}
		w.Txns = append(w.Txns, t)

		if t.IsFill() && i == 0 {
			continue
		}
		if len(w.Waves) == 0 || !reflect.DeepEqual(prevDeps, t.DependsOn) {
			w.Waves = append(w.Waves, []uint64{})
			prevDeps = t.DependsOn
		}
		last := len(w.Waves) - 1
		w.Waves[last] = append(w.Waves[last], t.Id)
	}
	return w, nil
}

// Encode serializes w in one piece.
func Encode(w *Workload) ([]byte, error) {
	data, err := proto.Marshal(ToProto(w))
	if err != nil {
		return nil, errors.Wrap(err, "cannot encode the workload")
	}
	return data, nil
}

func Decode(data []byte) (*Workload, error) {
	test := &rpc.Test{}
	if err := proto.Unmarshal(data, test); err != nil {
		return nil, errors.Wrap(err, "cannot decode the workload")
	}
	return FromProto(test)
}

func WriteTo(out io.Writer, w *Workload) error {
	data, err := Encode(w)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return errors.Wrap(err, "cannot write the workload")
}

func WriteTrace(path string, w *Workload) error {
	data, err := Encode(w)
	if err != nil {
		return err
	}
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "cannot write trace file %v", path)
	}
	return nil
}

func ReadTrace(path string) (*Workload, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read trace file %v", path)
	}
	return Decode(data)
}
