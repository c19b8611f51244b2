package configuration

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"math"
	"sort"

	"TxnKV-Trace/rpc"

	"github.com/pkg/errors"
)

// MaxKey is the largest numeric key id a trace may address.
const MaxKey = math.MaxUint32

const (
	DefaultNumTxns     = 100
	DefaultNumOps      = 10
	DefaultNumKeys     = 1000
	DefaultNumParallel = 1
)

var ErrUnknownOpType = errors.New("unknown operation kind")

// TraceConfig holds every knob of a generation run. It is the object written
// by --dump-config and read back by --config.
type TraceConfig struct {
	NumTxns       int                `json:"num_txns"`
	NumOps        int                `json:"num_ops"`
	NumKeys       int64              `json:"num_keys"`
	NumParallel   int                `json:"num_parallel"`
	FillKvStore   bool               `json:"fill_kv_store"`
	Seed          *int64             `json:"seed"`
	OpProbability map[string]float64 `json:"op_probability"`
}

// DefaultOpProbability returns the operation mix used when no table is
// configured: mostly reads, some writes and a few send-and-execute ops.
func DefaultOpProbability() map[string]float64 {
	p := make(map[string]float64)
	for _, op := range rpc.GeneratedOpTypes() {
		p[op.ConfigName()] = 0
	}
	p[rpc.OpType_OP_GET.ConfigName()] = 0.9
	p[rpc.OpType_OP_PUT.ConfigName()] = 0.1
	p[rpc.OpType_OP_SEND_AND_EXECUTE.ConfigName()] = 0.05
	return p
}

func NewTraceConfig() *TraceConfig {
	return &TraceConfig{
		NumTxns:       DefaultNumTxns,
		NumOps:        DefaultNumOps,
		NumKeys:       DefaultNumKeys,
		NumParallel:   DefaultNumParallel,
		OpProbability: DefaultOpProbability(),
	}
}

// LoadTraceConfig reads a config written by DumpTraceConfig. Fields missing
// from the file keep their defaults and a partial op_probability table is
// laid over the default one.
func LoadTraceConfig(path string) (*TraceConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read the configuration file %v", path)
	}
	return ParseTraceConfig(data)
}

func ParseTraceConfig(data []byte) (*TraceConfig, error) {
	c := NewTraceConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, errors.Wrap(err, "cannot parse the json configuration")
	}
	if c.OpProbability == nil {
		// an explicit null resets the table to the defaults
		c.OpProbability = DefaultOpProbability()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// DumpTraceConfig writes c as indented JSON.
func DumpTraceConfig(path string, c *TraceConfig) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return errors.Wrap(err, "cannot encode the configuration")
	}
	if err := ioutil.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(err, "cannot write the configuration file %v", path)
	}
	return nil
}

func (c *TraceConfig) Validate() error {
	if c.NumTxns < 0 {
		return errors.Errorf("num_txns must not be negative, got %v", c.NumTxns)
	}
	if c.NumOps < 0 {
		return errors.Errorf("num_ops must not be negative, got %v", c.NumOps)
	}
	if c.NumKeys < 1 || c.NumKeys >= MaxKey {
		return errors.Errorf("num_keys must be in [1, %v), got %v", int64(MaxKey), c.NumKeys)
	}
	if c.NumParallel < 1 {
		return errors.Errorf("num_parallel must be at least 1, got %v", c.NumParallel)
	}
	_, err := c.OpTable()
	return err
}

// OpTable converts the named probability table into one keyed by OpType.
func (c *TraceConfig) OpTable() (map[rpc.OpType]float64, error) {
	names := make([]string, 0, len(c.OpProbability))
	for name := range c.OpProbability {
		names = append(names, name)
	}
	sort.Strings(names)

	table := make(map[rpc.OpType]float64, len(names))
	for _, name := range names {
		op, ok := rpc.ParseOpType(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownOpType, "op_probability entry %q", name)
		}
		w := c.OpProbability[name]
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, errors.Errorf("op_probability entry %q has invalid weight %v", name, w)
		}
		table[op] = w
	}
	return table, nil
}

// SetOpTable replaces the named probability table with table.
func (c *TraceConfig) SetOpTable(table map[rpc.OpType]float64) {
	c.OpProbability = make(map[string]float64, len(table))
	for op, w := range table {
		c.OpProbability[op.ConfigName()] = w
	}
}
