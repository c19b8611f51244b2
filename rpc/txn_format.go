// Message types for txn_format.proto. The replay client reads a serialized
// Test message, so field numbers and wire types must stay in sync with the
// .proto file.

package rpc

import (
	"github.com/golang/protobuf/proto"
)

const _ = proto.ProtoPackageIsVersion3

type OpType int32

const (
	OpType_OP_PUT              OpType = 0
	OpType_OP_GET              OpType = 1
	OpType_OP_SEND_AND_EXECUTE OpType = 2
	OpType_OP_SET              OpType = 3
	OpType_OP_ADD              OpType = 4
	OpType_OP_SUB              OpType = 5
	OpType_OP_MULT             OpType = 6
	OpType_OP_DIV              OpType = 7
	OpType_OP_MOD              OpType = 8
	OpType_OP_AND              OpType = 9
	OpType_OP_OR               OpType = 10
	OpType_OP_XOR              OpType = 11
	OpType_OP_NOT              OpType = 12
	OpType_OP_NAND             OpType = 13
	OpType_OP_NOR              OpType = 14
	OpType_OP_PREPARE          OpType = 15
	OpType_OP_COMMIT           OpType = 16
	OpType_OP_ABORT            OpType = 17
	OpType_OP_KILL             OpType = 18
	OpType_OP_PAUSE            OpType = 19
)

var OpType_name = map[int32]string{
	0:  "OP_PUT",
	1:  "OP_GET",
	2:  "OP_SEND_AND_EXECUTE",
	3:  "OP_SET",
	4:  "OP_ADD",
	5:  "OP_SUB",
	6:  "OP_MULT",
	7:  "OP_DIV",
	8:  "OP_MOD",
	9:  "OP_AND",
	10: "OP_OR",
	11: "OP_XOR",
	12: "OP_NOT",
	13: "OP_NAND",
	14: "OP_NOR",
	15: "OP_PREPARE",
	16: "OP_COMMIT",
	17: "OP_ABORT",
	18: "OP_KILL",
	19: "OP_PAUSE",
}

var OpType_value = map[string]int32{
	"OP_PUT":              0,
	"OP_GET":              1,
	"OP_SEND_AND_EXECUTE": 2,
	"OP_SET":              3,
	"OP_ADD":              4,
	"OP_SUB":              5,
	"OP_MULT":             6,
	"OP_DIV":              7,
	"OP_MOD":              8,
	"OP_AND":              9,
	"OP_OR":               10,
	"OP_XOR":              11,
	"OP_NOT":              12,
	"OP_NAND":             13,
	"OP_NOR":              14,
	"OP_PREPARE":          15,
	"OP_COMMIT":           16,
	"OP_ABORT":            17,
	"OP_KILL":             18,
	"OP_PAUSE":            19,
}

func (x OpType) String() string {
	return proto.EnumName(OpType_name, int32(x))
}

type KVPair struct {
	Key                  []byte   `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Value                []byte   `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
	Op                   OpType   `protobuf:"varint,3,opt,name=op,proto3,enum=txn_test.OpType" json:"op,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *KVPair) Reset()         { *m = KVPair{} }
func (m *KVPair) String() string { return proto.CompactTextString(m) }
func (*KVPair) ProtoMessage()    {}

func (m *KVPair) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_KVPair.Unmarshal(m, b)
}
func (m *KVPair) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_KVPair.Marshal(b, m, deterministic)
}
func (m *KVPair) XXX_Merge(src proto.Message) {
	xxx_messageInfo_KVPair.Merge(m, src)
}
func (m *KVPair) XXX_Size() int {
	return xxx_messageInfo_KVPair.Size(m)
}
func (m *KVPair) XXX_DiscardUnknown() {
	xxx_messageInfo_KVPair.DiscardUnknown(m)
}

var xxx_messageInfo_KVPair proto.InternalMessageInfo

func (m *KVPair) GetKey() []byte {
	if m != nil {
		return m.Key
	}
	return nil
}

func (m *KVPair) GetValue() []byte {
	if m != nil {
		return m.Value
	}
	return nil
}

func (m *KVPair) GetOp() OpType {
	if m != nil {
		return m.Op
	}
	return OpType_OP_PUT
}

type Txn struct {
	IsTxn                bool      `protobuf:"varint,1,opt,name=is_txn,json=isTxn,proto3" json:"is_txn,omitempty"`
	TxnId                uint64    `protobuf:"varint,2,opt,name=txn_id,json=txnId,proto3" json:"txn_id,omitempty"`
	DependsOn            []uint64  `protobuf:"varint,3,rep,packed,name=depends_on,json=dependsOn,proto3" json:"depends_on,omitempty"`
	Cmds                 []*KVPair `protobuf:"bytes,4,rep,name=cmds,proto3" json:"cmds,omitempty"`
	XXX_NoUnkeyedLiteral struct{}  `json:"-"`
	XXX_unrecognized     []byte    `json:"-"`
	XXX_sizecache        int32     `json:"-"`
}

func (m *Txn) Reset()         { *m = Txn{} }
func (m *Txn) String() string { return proto.CompactTextString(m) }
func (*Txn) ProtoMessage()    {}

func (m *Txn) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_Txn.Unmarshal(m, b)
}
func (m *Txn) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_Txn.Marshal(b, m, deterministic)
}
func (m *Txn) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Txn.Merge(m, src)
}
func (m *Txn) XXX_Size() int {
	return xxx_messageInfo_Txn.Size(m)
}
func (m *Txn) XXX_DiscardUnknown() {
	xxx_messageInfo_Txn.DiscardUnknown(m)
}

var xxx_messageInfo_Txn proto.InternalMessageInfo

func (m *Txn) GetIsTxn() bool {
	if m != nil {
		return m.IsTxn
	}
	return false
}

func (m *Txn) GetTxnId() uint64 {
	if m != nil {
		return m.TxnId
	}
	return 0
}

func (m *Txn) GetDependsOn() []uint64 {
	if m != nil {
		return m.DependsOn
	}
	return nil
}

func (m *Txn) GetCmds() []*KVPair {
	if m != nil {
		return m.Cmds
	}
	return nil
}

type Test struct {
	Txns                 []*Txn   `protobuf:"bytes,1,rep,name=txns,proto3" json:"txns,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Test) Reset()         { *m = Test{} }
func (m *Test) String() string { return proto.CompactTextString(m) }
func (*Test) ProtoMessage()    {}

func (m *Test) XXX_Unmarshal(b []byte) error {
	return xxx_messageInfo_Test.Unmarshal(m, b)
}
func (m *Test) XXX_Marshal(b []byte, deterministic bool) ([]byte, error) {
	return xxx_messageInfo_Test.Marshal(b, m, deterministic)
}
func (m *Test) XXX_Merge(src proto.Message) {
	xxx_messageInfo_Test.Merge(m, src)
}
func (m *Test) XXX_Size() int {
	return xxx_messageInfo_Test.Size(m)
}
func (m *Test) XXX_DiscardUnknown() {
	xxx_messageInfo_Test.DiscardUnknown(m)
}

var xxx_messageInfo_Test proto.InternalMessageInfo

func (m *Test) GetTxns() []*Txn {
	if m != nil {
		return m.Txns
	}
	return nil
}

func init() {
	proto.RegisterEnum("txn_test.OpType", OpType_name, OpType_value)
	proto.RegisterType((*KVPair)(nil), "txn_test.KVPair")
	proto.RegisterType((*Txn)(nil), "txn_test.Txn")
	proto.RegisterType((*Test)(nil), "txn_test.Test")
}
