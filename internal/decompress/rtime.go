package decompress

import "fmt"

// Rtime implements JFFS2's RTIME scheme from scratch — no library
// implements this JFFS2-specific position-table coder (see DESIGN.md).
//
// The format alternates a literal byte with a one-byte repeat length.
// Each literal is written to the output, then its repeat-length byte (if
// any) triggers copying that many bytes starting at the position the same
// byte value was written at the *previous* time it appeared — not the
// position just written. That source position is then updated to the
// position just after the literal, ready for the value's next occurrence,
// and every value starts out mapped to position zero, so a byte value's
// first-ever repeat copies from the front of the output. This mirrors
// fs/jffs2/compr_rtime.c's decompressor, including the byte-by-byte copy
// so overlapping source/destination ranges produce the same run-length
// repetition a real JFFS2 image relies on.
func Rtime(compressed []byte, dsize uint32) ([]byte, error) {
	out := make([]byte, dsize)
	var positions [256]int

	pos := 0
	outpos := 0
	for uint32(outpos) < dsize {
		if pos >= len(compressed) {
			return nil, fmt.Errorf("%w: rtime: ran out of input before producing %d bytes (got %d)", ErrDecompress, dsize, outpos)
		}

		value := compressed[pos]
		pos++
		out[outpos] = value
		outpos++

		backoffs := positions[value]
		positions[value] = outpos

		if uint32(outpos) == dsize {
			break
		}

		if pos >= len(compressed) {
			return nil, fmt.Errorf("%w: rtime: missing repeat-length byte", ErrDecompress)
		}
		repeat := int(compressed[pos])
		pos++

		for i := 0; i < repeat && uint32(outpos) < dsize; i++ {
			if backoffs < 0 || backoffs >= outpos {
				return nil, fmt.Errorf("%w: rtime: repeat source out of range", ErrDecompress)
			}
			out[outpos] = out[backoffs]
			outpos++
			backoffs++
		}
	}

	if uint32(outpos) != dsize {
		return nil, fmt.Errorf("%w: rtime: produced %d bytes, expected %d", ErrDecompress, outpos, dsize)
	}

	return out, nil
}
