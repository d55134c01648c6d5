package decompress

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Zlib decompresses a standard DEFLATE-inside-zlib stream (RFC 1950/1951).
// The stdlib implementation is used deliberately: JFFS2's ZLIB codec is a
// plain zlib stream with no JFFS2-specific framing, so there is nothing
// for a third-party library to add over compress/zlib (see DESIGN.md).
func Zlib(compressed []byte, dsize uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrDecompress, err)
	}
	defer r.Close()

	out := make([]byte, 0, dsize)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrDecompress, err)
	}
	return buf.Bytes(), nil
}
