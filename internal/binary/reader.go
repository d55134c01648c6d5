// Package binary decodes the fixed-layout JFFS2 node structures from a
// byte slice under a chosen endianness, without ever panicking on a short
// buffer — callers get an error instead so the scanner can fall back to
// its one-byte advance.
package binary

import (
	"encoding/binary"
	"fmt"
)

// ErrShortBuffer is returned whenever fewer bytes remain than a field
// (or structure) requires.
var ErrShortBuffer = fmt.Errorf("binary: short buffer")

// Reader decodes fixed-width fields from a byte slice in a single,
// unchanging byte order. It never mutates global state, so two Readers
// with different Order values can be used concurrently over the same
// underlying buffer.
type Reader struct {
	buf   []byte
	pos   int
	Order binary.ByteOrder
}

// NewReader wraps buf for sequential decoding in the given order.
func NewReader(buf []byte, order binary.ByteOrder) *Reader {
	return &Reader{buf: buf, Order: order}
}

// Len returns the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Pos returns the current read offset within buf.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Uint8 reads one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a 16-bit field in the reader's byte order.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return r.Order.Uint16(b), nil
}

// Uint32 reads a 32-bit field in the reader's byte order.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return r.Order.Uint32(b), nil
}

// Bytes reads n raw bytes without interpreting them.
func (r *Reader) Bytes(n int) ([]byte, error) {
	return r.take(n)
}

// PeekUint16 reads a 16-bit field at the current position without
// advancing the reader.
func (r *Reader) PeekUint16() (uint16, error) {
	save := r.pos
	v, err := r.Uint16()
	r.pos = save
	return v, err
}

// Uint16Encode encodes v in order; used by the scanner to build the
// two-byte magic needle for a given endianness.
func Uint16Encode(order binary.ByteOrder, v uint16) []byte {
	b := make([]byte, 2)
	order.PutUint16(b, v)
	return b
}
