package jffs2

import (
	"encoding/binary"
	"fmt"

	jbin "github.com/deploymenttheory/go-jffs2extract/internal/binary"
	"github.com/deploymenttheory/go-jffs2extract/internal/checksum"
)

// InodeBodySize is the on-disk size of an INODE node excluding the common
// header and the variable-length compressed payload (68 - 12 = 56).
const InodeBodySize = 56

// Decompressor decodes compressed is the function signature the scanner
// calls into the decompress package with; kept here (rather than imported
// from there) so this package has no dependency on the decompression
// layer — callers inject the behavior.
type Decompressor func(compr uint8, data []byte, dsize uint32) ([]byte, error)

// DecodeInode decodes an INODE node whose common header has already been
// validated, and immediately decompresses its payload via decompress.
// Decompression failure is non-fatal per spec.md §7 (DECOMPRESS class): the
// inode is still returned, with DecompError set and Data holding a
// deterministic all-zero placeholder of length DSize so that later
// offset-based overlay writes stay consistent.
func DecodeInode(buf []byte, hdr CommonHeader, order binary.ByteOrder, offset int64, decompress Decompressor) (*Inode, error) {
	if uint32(len(buf)) < hdr.TotLen || hdr.TotLen < HeaderSize+InodeBodySize {
		return nil, jbin.ErrShortBuffer
	}

	r := jbin.NewReader(buf[HeaderSize:hdr.TotLen], order)

	ino, _ := r.Uint32()
	version, _ := r.Uint32()
	mode, _ := r.Uint32()
	uid, _ := r.Uint16()
	gid, _ := r.Uint16()
	isize, _ := r.Uint32()
	atime, _ := r.Uint32()
	mtime, _ := r.Uint32()
	ctime, _ := r.Uint32()
	dataOffset, _ := r.Uint32()
	csize, _ := r.Uint32()
	dsize, _ := r.Uint32()
	compr, _ := r.Uint8()
	usercompr, _ := r.Uint8()
	flags, _ := r.Uint16()
	dataCRC, _ := r.Uint32()
	nodeCRC, _ := r.Uint32()

	payload, err := r.Bytes(int(csize))
	if err != nil {
		return nil, fmt.Errorf("jffs2: inode payload truncated: %w", err)
	}
	payloadCopy := append([]byte(nil), payload...)

	n := &Inode{
		Hdr:        hdr,
		Offset:     offset,
		Ino:        ino,
		Version:    version,
		Mode:       mode,
		UID:        uid,
		GID:        gid,
		ISize:      isize,
		ATime:      atime,
		MTime:      mtime,
		CTime:      ctime,
		DataOffset: dataOffset,
		CSize:      csize,
		DSize:      dsize,
		Compr:      compr,
		UserCompr:  usercompr,
		Flags:      flags,
		DataCRC:    dataCRC,
		NodeCRC:    nodeCRC,
	}

	// node_crc covers the first 60 bytes of the node: the header plus every
	// field up to and including flags; data_crc (bytes 60-63) is excluded.
	n.NodeCRCOK = checksum.Verify(buf[0:60], nodeCRC)
	n.DataCRCOK = checksum.Verify(payloadCopy, dataCRC)

	decoded, decErr := decompress(compr, payloadCopy, dsize)
	if decErr != nil {
		n.DecompError = decErr
		n.Data = make([]byte, dsize)
	} else {
		n.Data = decoded
	}
	n.DSizeOK = uint32(len(n.Data)) == dsize

	return n, nil
}

// IsDir, IsSymlink, IsRegular and IsDevice classify an inode by the file
// type bits of its mode field, independent of the host OS.
func (n *Inode) IsDir() bool     { return n.Mode&ModeFmt == ModeDir }
func (n *Inode) IsSymlink() bool { return n.Mode&ModeFmt == ModeLnk }
func (n *Inode) IsRegular() bool { return n.Mode&ModeFmt == ModeReg }
func (n *Inode) IsChr() bool     { return n.Mode&ModeFmt == ModeChr }
func (n *Inode) IsBlk() bool     { return n.Mode&ModeFmt == ModeBlk }
func (n *Inode) IsFifo() bool    { return n.Mode&ModeFmt == ModeFifo }
func (n *Inode) IsSock() bool    { return n.Mode&ModeFmt == ModeSock }

// Perm returns the permission bits (mode & 07777).
func (n *Inode) Perm() uint32 { return n.Mode & ModePerm }
