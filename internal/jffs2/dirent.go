package jffs2

import (
	"encoding/binary"
	"fmt"

	jbin "github.com/deploymenttheory/go-jffs2extract/internal/binary"
	"github.com/deploymenttheory/go-jffs2extract/internal/checksum"
)

// DirentBodySize is the on-disk size of a DIRENT node excluding the common
// header and the variable-length name that follows it (40 - 12 = 28).
const DirentBodySize = 28

// DecodeDirent decodes a DIRENT node whose common header has already been
// validated. buf must start at the header (offset 0 == hdr.Magic) and
// contain at least hdr.TotLen bytes; nothing past hdr.TotLen is read.
func DecodeDirent(buf []byte, hdr CommonHeader, order binary.ByteOrder, offset int64) (*Dirent, error) {
	if uint32(len(buf)) < hdr.TotLen || hdr.TotLen < HeaderSize+DirentBodySize {
		return nil, jbin.ErrShortBuffer
	}

	r := jbin.NewReader(buf[HeaderSize:hdr.TotLen], order)

	pino, _ := r.Uint32()
	version, _ := r.Uint32()
	ino, _ := r.Uint32()
	mctime, _ := r.Uint32()
	nsize, _ := r.Uint8()
	dtype, _ := r.Uint8()
	_, _ = r.Uint16() // unused
	nodeCRC, _ := r.Uint32()
	nameCRC, _ := r.Uint32()

	name, err := r.Bytes(int(nsize))
	if err != nil {
		return nil, fmt.Errorf("jffs2: dirent name truncated: %w", err)
	}
	nameCopy := append([]byte(nil), name...)

	d := &Dirent{
		Hdr:     hdr,
		Offset:  offset,
		Pino:    pino,
		Version: version,
		Ino:     ino,
		MCTime:  mctime,
		NSize:   nsize,
		Type:    dtype,
		NodeCRC: nodeCRC,
		NameCRC: nameCRC,
		Name:    nameCopy,
	}

	// node_crc covers the 32 bytes preceding it: the 12-byte header plus
	// pino/version/ino/mctime/nsize/type/unused.
	d.NodeCRCOK = checksum.Verify(buf[0:32], nodeCRC)
	d.NameCRCOK = checksum.Verify(nameCopy, nameCRC)

	return d, nil
}

// Unlinked reports whether this dirent is a tombstone (ino == 0), meaning
// the name was removed rather than bound to a file.
func (d *Dirent) Unlinked() bool {
	return d.Ino == 0
}
