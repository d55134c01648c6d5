// Package scanner walks a raw image byte slice looking for JFFS2 node
// headers, the way the reference corpus's container and object readers
// walk a raw APFS block device: no filesystem metadata is trusted up
// front, every candidate offset is verified independently, and a bad
// candidate costs one byte rather than derailing the whole pass.
package scanner

import (
	"encoding/binary"
	"log"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

// Options configures one scan pass.
type Options struct {
	Order      binary.ByteOrder
	Decompress jffs2.Decompressor
	Verbose    bool
}

// Scan walks buf once under opts.Order and returns every logical
// filesystem it found, in the order their first dirent was encountered.
// A filesystem with no dirents at all is still returned; the driver
// decides whether to discard it (spec.md §4.7).
func Scan(buf []byte, opts Options) []*jffs2.LogicalFS {
	s := &state{buf: buf, order: opts.Order, decompress: opts.Decompress, verbose: opts.Verbose}
	s.startNewFS()

	for s.pos+jffs2.HeaderSize <= len(buf) {
		hdr, err := jffs2.DecodeHeader(buf[s.pos:], opts.Order)
		if err != nil {
			s.pos++
			continue
		}

		if uint64(s.pos)+uint64(hdr.TotLen) > uint64(len(buf)) || hdr.TotLen < jffs2.HeaderSize {
			s.pos++
			continue
		}

		nodeBuf := buf[s.pos : uint64(s.pos)+uint64(hdr.TotLen)]
		s.dispatch(hdr, nodeBuf)

		step := jffs2.Pad4(hdr.TotLen)
		if step == 0 {
			step = 1
		}
		s.pos += int(step)
	}

	s.finishFS()
	return s.results
}

type state struct {
	buf        []byte
	order      binary.ByteOrder
	decompress jffs2.Decompressor
	verbose    bool
	pos        int

	cur     *jffs2.LogicalFS
	seenIno map[uint32]bool
	results []*jffs2.LogicalFS
}

func (s *state) startNewFS() {
	s.cur = jffs2.NewLogicalFS(s.order == binary.BigEndian)
	s.seenIno = make(map[uint32]bool)
}

func (s *state) finishFS() {
	s.results = append(s.results, s.cur)
}

// split closes out the current logical filesystem and opens a fresh one,
// used when a DIRENT's ino collides with one already claimed by the
// filesystem in progress — the scanner's signal that it has wandered
// into a second, unrelated image (spec.md §4.5).
func (s *state) split() {
	s.finishFS()
	s.startNewFS()
}

func (s *state) dispatch(hdr jffs2.CommonHeader, nodeBuf []byte) {
	switch hdr.NodeType {
	case jffs2.NodeTypeDirent:
		d, err := jffs2.DecodeDirent(nodeBuf, hdr, s.order, int64(s.pos))
		if err != nil {
			if s.verbose {
				log.Printf("scanner: dirent at %#x: %v", s.pos, err)
			}
			return
		}
		if !d.Unlinked() && s.seenIno[d.Ino] {
			s.split()
		}
		if !d.Unlinked() {
			s.seenIno[d.Ino] = true
		}
		s.cur.Dirents = append(s.cur.Dirents, d)

	case jffs2.NodeTypeInode:
		n, err := jffs2.DecodeInode(nodeBuf, hdr, s.order, int64(s.pos), s.decompress)
		if err != nil {
			if s.verbose {
				log.Printf("scanner: inode at %#x: %v", s.pos, err)
			}
			return
		}
		s.cur.Inodes = append(s.cur.Inodes, n)

	case jffs2.NodeTypeXattr:
		x, err := jffs2.DecodeXattr(nodeBuf, hdr, int64(s.pos))
		if err == nil {
			s.cur.Xattrs = append(s.cur.Xattrs, x)
		}

	case jffs2.NodeTypeXref:
		x, err := jffs2.DecodeXref(nodeBuf, hdr, int64(s.pos))
		if err == nil {
			s.cur.Xrefs = append(s.cur.Xrefs, x)
		}

	case jffs2.NodeTypeSummary:
		sm, err := jffs2.DecodeSummary(nodeBuf, hdr, int64(s.pos))
		if err == nil {
			s.cur.Summaries = append(s.cur.Summaries, sm)
		}

	case jffs2.NodeTypeCleanMarker, jffs2.NodeTypePadding:
		// housekeeping only, nothing to record.

	default:
		if s.verbose {
			log.Printf("scanner: unknown node type %#x at %#x (totlen %d), skipping", hdr.NodeType, s.pos, hdr.TotLen)
		}
	}
}
