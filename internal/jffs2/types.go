// Package jffs2 holds the on-disk node layouts, node-type and
// compression-code constants, and the in-memory representation of a
// logical JFFS2 filesystem that the scanner and materializer share.
package jffs2

import "github.com/google/uuid"

// Magic is the two-byte value every JFFS2 node begins with, in the scan
// pass's endianness.
const Magic uint16 = 0x1985

// Node types. Values match the real JFFS2 on-disk format so that images
// produced by actual JFFS2-capable kernels or mkfs.jffs2 decode correctly.
const (
	NodeTypeDirent       uint16 = 0xe001
	NodeTypeInode        uint16 = 0xe002
	NodeTypeCleanMarker  uint16 = 0x2003
	NodeTypePadding      uint16 = 0x2004
	NodeTypeSummary      uint16 = 0x2006
	NodeTypeXattr        uint16 = 0xe008
	NodeTypeXref         uint16 = 0xe009
)

// Compression codes carried in an inode node's compr field.
const (
	ComprNone  uint8 = 0x00
	ComprZero  uint8 = 0x01
	ComprRtime uint8 = 0x02
	ComprZlib  uint8 = 0x06
	ComprLZMA  uint8 = 0x07
)

// File mode format bits (S_IFMT and friends), independent of any host
// platform's syscall package so the scanner can classify nodes the same
// way regardless of the OS running the extractor.
const (
	ModeFmt  uint32 = 0170000
	ModeDir  uint32 = 0040000
	ModeChr  uint32 = 0020000
	ModeBlk  uint32 = 0060000
	ModeReg  uint32 = 0100000
	ModeFifo uint32 = 0010000
	ModeLnk  uint32 = 0120000
	ModeSock uint32 = 0140000
	ModePerm uint32 = 0007777
)

// CommonHeader is the 12-byte preamble shared by every node.
type CommonHeader struct {
	Magic    uint16
	NodeType uint16
	TotLen   uint32
	HdrCRC   uint32
}

// HeaderSize is the on-disk size of CommonHeader.
const HeaderSize = 12

// Dirent is a fully decoded directory-entry node. Name holds the raw name
// bytes exactly as stored on disk; callers decide when UTF-8 validation is
// required (see ResolvePath).
type Dirent struct {
	Hdr        CommonHeader
	Offset     int64
	Pino       uint32
	Version    uint32
	Ino        uint32
	MCTime     uint32
	NSize      uint8
	Type       uint8
	NodeCRC    uint32
	NameCRC    uint32
	Name       []byte
	NodeCRCOK  bool
	NameCRCOK  bool
}

// Inode is a fully decoded inode (file data/metadata) node.
type Inode struct {
	Hdr         CommonHeader
	Offset      int64
	Ino         uint32
	Version     uint32
	Mode        uint32
	UID         uint16
	GID         uint16
	ISize       uint32
	ATime       uint32
	MTime       uint32
	CTime       uint32
	DataOffset  uint32
	CSize       uint32
	DSize       uint32
	Compr       uint8
	UserCompr   uint8
	Flags       uint16
	DataCRC     uint32
	NodeCRC     uint32
	Data        []byte // decompressed payload, len == DSize on success
	NodeCRCOK   bool
	DataCRCOK   bool
	DSizeOK     bool
	DecompError error
}

// Xattr, Xref and Summary are catalogued (counted, logged) but never drive
// extraction; spec.md §4.4 and §9 treat them as housekeeping records.
type Xattr struct {
	Hdr    CommonHeader
	Offset int64
	Raw    []byte
}

type Xref struct {
	Hdr    CommonHeader
	Offset int64
	Raw    []byte
}

type Summary struct {
	Hdr    CommonHeader
	Offset int64
	Raw    []byte
}

// LogicalFS is one self-contained group of nodes the scanner believes
// belongs to a single JFFS2 mount image.
type LogicalFS struct {
	ID         uuid.UUID
	BigEndian  bool
	Dirents    []*Dirent
	Inodes     []*Inode
	Xattrs     []*Xattr
	Xrefs      []*Xref
	Summaries  []*Summary
}

// NewLogicalFS returns an empty logical filesystem tagged with a fresh
// UUID and the given endianness.
func NewLogicalFS(bigEndian bool) *LogicalFS {
	return &LogicalFS{
		ID:        uuid.New(),
		BigEndian: bigEndian,
	}
}

// Empty reports whether the filesystem has no directory entries at all,
// the condition the driver uses to discard scan noise (spec.md §4.7).
func (fs *LogicalFS) Empty() bool {
	return len(fs.Dirents) == 0
}
