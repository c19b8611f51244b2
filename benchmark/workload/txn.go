package workload

import (
	"TxnKV-Trace/rpc"
)

// FillTxnId is the id of the non-transactional batch that pre-populates the
// store before the generated transactions run.
const FillTxnId = 0

type Op struct {
	Key   [KeySize]byte
	Value uint64
	Kind  rpc.OpType
}

type Txn struct {
	IsTxn     bool
	Id        uint64
	DependsOn []uint64
	Ops       []Op
}

// Size is the number of GET and PUT operations; the other kinds ride along
// without counting.
func (t *Txn) Size() int {
	n := 0
	for _, op := range t.Ops {
		if op.Kind.CountsTowardSize() {
			n++
		}
	}
	return n
}

func (t *Txn) IsFill() bool {
	return !t.IsTxn && t.Id == FillTxnId
}

// Workload is a generated trace. Txns are in emission order, starting with
// the fill transaction when there is one. Waves lists the ids of every wave
// of generated transactions; the fill transaction is not part of any wave.
type Workload struct {
	Txns  []*Txn
	Waves [][]uint64
}

// Fill returns the fill transaction, or nil.
func (w *Workload) Fill() *Txn {
	if len(w.Txns) > 0 && w.Txns[0].IsFill() {
		return w.Txns[0]
	}
	return nil
}

func (w *Workload) NumOps() int {
	n := 0
	for _, t := range w.Txns {
		n += len(t.Ops)
	}
	return n
}
