package rpc

import (
	"sort"
)

// Names used for operation kinds in trace configuration files.
var opTypeToConfigName = map[OpType]string{
	OpType_OP_PUT:              "put",
	OpType_OP_GET:              "get",
	OpType_OP_SEND_AND_EXECUTE: "send_and_execute",
	OpType_OP_SET:              "set",
	OpType_OP_ADD:              "add",
	OpType_OP_SUB:              "sub",
	OpType_OP_MULT:             "mul",
	OpType_OP_DIV:              "div",
	OpType_OP_MOD:              "mod",
	OpType_OP_AND:              "and",
	OpType_OP_OR:               "or",
	OpType_OP_XOR:              "xor",
	OpType_OP_NOT:              "not",
	OpType_OP_NAND:             "nand",
	OpType_OP_NOR:              "nor",
}

var configNameToOpType = func() map[string]OpType {
	m := make(map[string]OpType, len(opTypeToConfigName))
	for op, name := range opTypeToConfigName {
		m[name] = op
	}
	return m
}()

// GeneratedOpTypes lists the operation kinds a trace may be generated with,
// in enum order.
func GeneratedOpTypes() []OpType {
	ops := make([]OpType, 0, len(opTypeToConfigName))
	for op := range opTypeToConfigName {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// IsGenerated reports whether op may appear in a generated trace.
func (x OpType) IsGenerated() bool {
	_, ok := opTypeToConfigName[x]
	return ok
}

// CountsTowardSize reports whether op advances a transaction's target size.
func (x OpType) CountsTowardSize() bool {
	return x == OpType_OP_GET || x == OpType_OP_PUT
}

// ConfigName returns the configuration name of op, or "" for control ops.
func (x OpType) ConfigName() string {
	return opTypeToConfigName[x]
}

// ParseOpType maps a configuration name such as "send_and_execute" to its
// OpType.
func ParseOpType(name string) (OpType, bool) {
	op, ok := configNameToOpType[name]
	return op, ok
}
