package jffs2

import (
	"encoding/binary"
	"fmt"

	jbin "github.com/deploymenttheory/go-jffs2extract/internal/binary"
	"github.com/deploymenttheory/go-jffs2extract/internal/checksum"
)

// ErrBadMagic is returned when the two bytes at a candidate position do
// not match the JFFS2 magic for the scan's endianness.
var ErrBadMagic = fmt.Errorf("jffs2: bad magic")

// ErrHeaderCRC is returned when a header decodes but its hdr_crc field
// does not match the MTD CRC-32 of the preceding 8 bytes.
var ErrHeaderCRC = fmt.Errorf("jffs2: header CRC mismatch")

// DecodeHeader reads and validates the 12-byte common header starting at
// buf[0]. It returns jbin.ErrShortBuffer, ErrBadMagic or ErrHeaderCRC on
// failure; in every case the caller (the scanner) rejects this candidate
// position and advances by one byte, never by TotLen.
func DecodeHeader(buf []byte, order binary.ByteOrder) (CommonHeader, error) {
	var hdr CommonHeader

	if len(buf) < HeaderSize {
		return hdr, jbin.ErrShortBuffer
	}

	r := jbin.NewReader(buf[:HeaderSize], order)

	magic, _ := r.Uint16()
	if magic != Magic {
		return hdr, ErrBadMagic
	}

	nodeType, _ := r.Uint16()
	totLen, _ := r.Uint32()
	hdrCRC, _ := r.Uint32()

	hdr = CommonHeader{Magic: magic, NodeType: nodeType, TotLen: totLen, HdrCRC: hdrCRC}

	if !checksum.Verify(buf[0:8], hdrCRC) {
		return hdr, ErrHeaderCRC
	}

	return hdr, nil
}

// Pad4 rounds totlen up to the next 4-byte boundary, the step the scanner
// takes after a node whose header passed, whatever the outcome of decoding
// its body.
func Pad4(totLen uint32) uint32 {
	return (totLen + 3) &^ 3
}
