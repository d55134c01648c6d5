// Package checksum implements the MTD-flavoured CRC-32 JFFS2 uses to gate
// node acceptance.
package checksum

import "hash/crc32"

var ieeeTable = crc32.MakeTable(crc32.IEEE)

// MTD computes the Linux MTD CRC-32 variant over b: seed all-ones, run the
// reflected ISO 3309 stepping, XOR-finalize all-ones, then invert the
// result once more before returning it. The second inversion exactly
// cancels the finalization step, so the value returned is the plain
// ISO 3309 (zlib/IEEE) CRC-32 of b — this is the convention JFFS2 and the
// rest of MTD use when they call their crc32() with seed 0, and it is what
// pins mtd_crc("") == 0 and mtd_crc("\x00\x00\x00\x00") == 0x2144df1c.
func MTD(b []byte) uint32 {
	return crc32.Checksum(b, ieeeTable)
}

// Verify reports whether want matches the MTD CRC-32 of b.
func Verify(b []byte, want uint32) bool {
	return MTD(b) == want
}
