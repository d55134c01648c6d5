package decompress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaProperties is the single properties byte ((pb*5+lp)*9+lc) for
// JFFS2's fixed lc=0, lp=0, pb=0 — the same constant jffs2_lzma.py in the
// mkfs.jffs2/jefferson tooling uses.
const lzmaProperties = 0

// buildHeader synthesizes the classic 13-byte .lzma header
// (1 properties byte, 4-byte little-endian dictionary size, 8-byte
// little-endian uncompressed size) that github.com/ulikunitz/xz/lzma's
// Reader expects, since JFFS2's own LZMA payloads carry none of this —
// lc/lp/pb and the uncompressed length are supplied out-of-band by the
// inode node instead. This is the same technique jffs2_lzma.py uses
// (struct.pack('<BIQ', properties, dict_size, outlen)) before handing the
// payload to a header-expecting decompressor.
func buildHeader(dictCap int, dsize uint32) []byte {
	header := make([]byte, 13)
	header[0] = lzmaProperties
	binary.LittleEndian.PutUint32(header[1:5], uint32(dictCap))
	binary.LittleEndian.PutUint64(header[5:13], uint64(dsize))
	return header
}

// LZMA returns a Func that decodes JFFS2's embedded LZMA1 variant: a raw
// bitstream with no header of its own, fixed properties (lc=0, lp=0,
// pb=0), and an uncompressed length supplied externally rather than
// encoded in the stream. dictCap is the dictionary capacity the image was
// produced with; 8 KiB (one NAND page) is the common JFFS2 default.
//
// github.com/ulikunitz/xz/lzma only exposes the classic header-bearing
// .lzma reader, so the header is synthesized by hand and prepended before
// the payload reaches it, rather than configured out-of-band.
func LZMA(dictCap int) Func {
	if dictCap <= 0 {
		dictCap = 8 * 1024
	}

	return func(compressed []byte, dsize uint32) ([]byte, error) {
		framed := append(buildHeader(dictCap, dsize), compressed...)

		r, err := lzma.NewReader(bytes.NewReader(framed))
		if err != nil {
			return nil, fmt.Errorf("%w: lzma: %v", ErrDecompress, err)
		}

		out := make([]byte, dsize)
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, fmt.Errorf("%w: lzma: %v", ErrDecompress, err)
		}

		return out, nil
	}
}
