package gfx

import (
	"encoding/binary"

	"golang.org/x/mobile/exp/f32"
)

// Buffer contents are little-endian, which is the byte order of every
// platform the drivers run on.

// Float32Bytes encodes vertex data for BufferData.
func Float32Bytes(values ...float32) []byte {
	return f32.Bytes(binary.LittleEndian, values...)
}

// Uint16Bytes encodes index data for BufferData.
func Uint16Bytes(values ...uint16) []byte {
	b := make([]byte, 0, len(values)*2)
	for _, v := range values {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}
