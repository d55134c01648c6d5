// Package decompress implements the pluggable byte-in/byte-out decoders
// for the compression schemes a JFFS2 inode's compr byte can select.
// Each decoder has the same shape as the reference corpus's own
// CompressionService.Decompress dispatch: a switch over a small integer
// code, one function per codec.
package decompress

import (
	"fmt"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

// ErrDecompress wraps any codec-specific failure so callers can match on
// it with errors.Is regardless of which decoder produced it.
var ErrDecompress = fmt.Errorf("decompress: failed")

// Func decodes exactly one codec: compressed bytes plus the externally
// supplied uncompressed length in, uncompressed bytes out.
type Func func(compressed []byte, dsize uint32) ([]byte, error)

// Registry dispatches a jffs2 compr byte to the matching Func.
type Registry struct {
	funcs map[uint8]Func
}

// NewRegistry builds the registry wired to every codec spec.md §4.3
// requires: NONE, ZERO, ZLIB, RTIME, LZMA.
func NewRegistry(lzmaDictCap int) *Registry {
	return &Registry{
		funcs: map[uint8]Func{
			jffs2.ComprNone:  None,
			jffs2.ComprZero:  Zero,
			jffs2.ComprZlib:  Zlib,
			jffs2.ComprRtime: Rtime,
			jffs2.ComprLZMA:  LZMA(lzmaDictCap),
		},
	}
}

// Decompress looks up compr and runs it. An unrecognized code is itself a
// DECOMPRESS-class error (spec.md §7): the scanner is expected to still
// retain the inode with a deterministic placeholder body.
func (r *Registry) Decompress(compr uint8, compressed []byte, dsize uint32) ([]byte, error) {
	fn, ok := r.funcs[compr]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported compression code %#x", ErrDecompress, compr)
	}
	return fn(compressed, dsize)
}
