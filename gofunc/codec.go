package gofunc

import "encoding/binary"

// AppendUvarint appends the varint encoding of v to buf.
func AppendUvarint(buf []byte, v uint64) []byte {
	var scrap [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scrap[:], v)
	return append(buf, scrap[:n]...)
}

// ReadUvarint reads a varint from the head of buf, returning the value and
// the remaining bytes.
func ReadUvarint(buf []byte) (uint64, []byte, error) {
	v, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, buf, ErrUnmarshal
	}
	return v, buf[n:], nil
}
