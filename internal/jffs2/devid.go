package jffs2

import "encoding/binary"

// device id payload widths (spec.md §3, §4.6).
const (
	oldIDSize = 2
	newIDSize = 4
)

// DecodeDeviceNumber turns the decompressed data payload of a CHR/BLK
// inode into a Linux-style (major, minor) pair. dsize disambiguates the
// old 16-bit encoding from the new 32-bit one; any other length means no
// device can be formed.
func DecodeDeviceNumber(data []byte, order binary.ByteOrder) (major, minor uint32, ok bool) {
	switch len(data) {
	case newIDSize:
		id := order.Uint32(data)
		major = (id & 0xFFF00) >> 8
		minor = (id & 0xFF) | ((id >> 12) & 0xFFF00)
		return major, minor, true
	case oldIDSize:
		id := order.Uint16(data)
		major = uint32(id>>8) & 0xFF
		minor = uint32(id) & 0xFF
		return major, minor, true
	default:
		return 0, 0, false
	}
}

// Makedev combines a (major, minor) pair into the packed device number the
// host mknod(2) call expects (glibc/Linux convention).
func Makedev(major, minor uint32) uint64 {
	return uint64(minor&0xff) | uint64(major&0xfff)<<8 |
		uint64(minor&0xffffff00)<<12 | uint64(major&0xfffff000)<<32
}
