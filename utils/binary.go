package utils

import (
	"encoding/binary"
)

func EncodeUint32(v uint32) [4]byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b
}

func DecodeUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func EncodeUint64(v uint64) [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b
}

func DecodeUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}
