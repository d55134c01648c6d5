package extractor

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-jffs2extract/internal/checksum"
	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

func buildDirent(order binary.ByteOrder, pino, ino uint32, name string) []byte {
	nameB := []byte(name)
	totLen := uint32(jffs2.HeaderSize + jffs2.DirentBodySize + len(nameB))
	buf := make([]byte, totLen)

	order.PutUint16(buf[0:2], jffs2.Magic)
	order.PutUint16(buf[2:4], jffs2.NodeTypeDirent)
	order.PutUint32(buf[4:8], totLen)

	order.PutUint32(buf[12:16], pino)
	order.PutUint32(buf[16:20], 1)
	order.PutUint32(buf[20:24], ino)
	buf[28] = byte(len(nameB))
	order.PutUint32(buf[36:40], checksum.MTD(nameB))
	copy(buf[40:], nameB)

	order.PutUint32(buf[8:12], checksum.MTD(buf[0:8]))
	order.PutUint32(buf[32:36], checksum.MTD(buf[0:32]))
	return buf
}

func buildInode(order binary.ByteOrder, ino uint32, mode uint32, data string) []byte {
	dataB := []byte(data)
	totLen := uint32(jffs2.HeaderSize + jffs2.InodeBodySize + len(dataB))
	buf := make([]byte, totLen)

	order.PutUint16(buf[0:2], jffs2.Magic)
	order.PutUint16(buf[2:4], jffs2.NodeTypeInode)
	order.PutUint32(buf[4:8], totLen)

	order.PutUint32(buf[12:16], ino)
	order.PutUint32(buf[16:20], 1)
	order.PutUint32(buf[20:24], mode)
	order.PutUint32(buf[28:32], uint32(len(dataB)))
	order.PutUint32(buf[48:52], uint32(len(dataB)))
	order.PutUint32(buf[52:56], uint32(len(dataB)))
	buf[56] = jffs2.ComprNone
	copy(buf[68:], dataB)

	order.PutUint32(buf[60:64], checksum.MTD(dataB))
	order.PutUint32(buf[8:12], checksum.MTD(buf[0:8]))
	order.PutUint32(buf[64:68], checksum.MTD(buf[0:60]))
	return buf
}

func TestRunExtractsOneFilesystem(t *testing.T) {
	order := binary.LittleEndian
	var img []byte
	img = append(img, buildDirent(order, 1, 2, "hello.txt")...)
	img = append(img, 0, 0, 0) // pad the 49-byte node to its 52-byte step
	img = append(img, buildInode(order, 2, jffs2.ModeReg|0644, "hi there")...)

	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "image.bin")
	require.NoError(t, os.WriteFile(src, img, 0644))

	dest := filepath.Join(t.TempDir(), "out")

	summary, err := Run(Options{Source: src, Dest: dest, LZMADictCap: 8192})
	require.NoError(t, err)
	require.Len(t, summary.Filesystems, 1)
	assert.Equal(t, "fs_1", summary.Filesystems[0].Name, "filesystem ids are 1-based per spec.md §4.7")

	got, err := os.ReadFile(filepath.Join(dest, summary.Filesystems[0].Name, "hello.txt"))
	require.NoError(t, err, "reading extracted file")
	assert.Equal(t, "hi there", string(got))
}

func TestRunRefusesNonEmptyDestWithoutForce(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "image.bin")
	require.NoError(t, os.WriteFile(src, []byte{0, 0, 0, 0}, 0644))

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "existing"), []byte("x"), 0644))

	_, err := Run(Options{Source: src, Dest: dest})
	assert.Error(t, err)
}
