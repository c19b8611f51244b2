package workload

import (
	"reflect"

	"TxnKV-Trace/rpc"
	"TxnKV-Trace/utils"

	"github.com/pkg/errors"
)

// Validate checks the structural invariants of a trace: the fill
// transaction comes first, generated ids run 1..N, dependencies only point
// backwards and form a layered DAG in which every wave depends on exactly
// the previous wave.
func Validate(w *Workload) error {
	fill := w.Fill()
	txns := w.Txns
	if fill != nil {
		if len(fill.DependsOn) != 0 {
			return errors.Errorf("fill txn depends on %v, want no dependencies", fill.DependsOn)
		}
		for j, op := range fill.Ops {
			if op.Kind != rpc.OpType_OP_PUT {
				return errors.Errorf("fill op %v is %v, want %v", j, op.Kind, rpc.OpType_OP_PUT)
			}
		}
		txns = txns[1:]
	}

	// node 0 is the fill txn (present or not), node i is txn i
	g := utils.NewDepGraph(len(txns) + 1)
	for i, t := range txns {
		want := uint64(i + 1)
		if !t.IsTxn {
			return errors.Errorf("txn at position %v is not transactional", i)
		}
		if t.Id != want {
			return errors.Errorf("txn at position %v has id %v, want %v", i, t.Id, want)
		}
		for _, d := range t.DependsOn {
			if d >= t.Id {
				return errors.Errorf("txn %v depends on later txn %v", t.Id, d)
			}
			if d == FillTxnId && fill == nil {
				return errors.Errorf("txn %v depends on a missing fill txn", t.Id)
			}
			g.AddEdge(int(d), int(t.Id))
		}
		for j, op := range t.Ops {
			if !op.Kind.IsGenerated() {
				return errors.Errorf("txn %v op %v has kind %v", t.Id, j, op.Kind)
			}
			if op.Value >= 1<<63 {
				return errors.Errorf("txn %v op %v value %v does not fit in 63 bits", t.Id, j, op.Value)
			}
		}
	}
	if g.IsCyclic() {
		return errors.New("dependency graph has a cycle")
	}

	return validateWaves(w.Waves, txns, fill != nil, g)
}

func validateWaves(waves [][]uint64, txns []*Txn, hasFill bool, g *utils.DepGraph) error {
	byId := make(map[uint64]*Txn, len(txns))
	for _, t := range txns {
		byId[t.Id] = t
	}

	prev := []uint64{}
	if hasFill {
		prev = []uint64{FillTxnId}
	}
	seen := 0
	for k, wave := range waves {
		if len(wave) == 0 {
			return errors.Errorf("wave %v is empty", k)
		}
		for _, id := range wave {
			t, ok := byId[id]
			if !ok {
				return errors.Errorf("wave %v names unknown txn %v", k, id)
			}
			if !reflect.DeepEqual(t.DependsOn, prev) {
				return errors.Errorf("txn %v in wave %v depends on %v, want %v", id, k, t.DependsOn, prev)
			}
		}
		seen += len(wave)
		prev = wave
	}
	if seen != len(txns) {
		return errors.Errorf("waves cover %v txns, trace has %v", seen, len(txns))
	}

	// every wave depends on the whole previous one, so the longest path to a
	// txn is its wave index (shifted by one behind the fill txn)
	levels := g.Levels()
	offset := 0
	if hasFill {
		offset = 1
	}
	for k, wave := range waves {
		if k+offset >= len(levels) {
			return errors.Errorf("wave %v is missing from the dependency graph", k)
		}
		level := make(map[int]bool, len(levels[k+offset]))
		for _, n := range levels[k+offset] {
			level[n] = true
		}
		for _, id := range wave {
			if !level[int(id)] {
				return errors.Errorf("txn %v is not at depth %v of the dependency graph", id, k+offset)
			}
		}
	}
	return nil
}

// Stats summarises a trace.
type Stats struct {
	Txns         int
	FillOps      int
	Waves        int
	MaxWaveWidth int
	Ops          map[rpc.OpType]int
	SizedOps     int
}

func ComputeStats(w *Workload) *Stats {
	s := &Stats{
		Waves: len(w.Waves),
		Ops:   make(map[rpc.OpType]int),
	}
	for _, t := range w.Txns {
		if t.IsFill() {
			s.FillOps = len(t.Ops)
			continue
		}
		s.Txns++
		s.SizedOps += t.Size()
		for _, op := range t.Ops {
			s.Ops[op.Kind]++
		}
	}
	for _, wave := range w.Waves {
		if len(wave) > s.MaxWaveWidth {
			s.MaxWaveWidth = len(wave)
		}
	}
	return s
}
