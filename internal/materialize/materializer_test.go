package materialize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

func dirent(pino, ino uint32, name string) *jffs2.Dirent {
	return &jffs2.Dirent{Pino: pino, Ino: ino, Name: []byte(name)}
}

func inode(ino uint32, version uint32, mode uint32, dataOffset uint32, data string, isize uint32) *jffs2.Inode {
	return &jffs2.Inode{
		Ino:        ino,
		Version:    version,
		Mode:       mode,
		DataOffset: dataOffset,
		DSize:      uint32(len(data)),
		Data:       []byte(data),
		ISize:      isize,
		DSizeOK:    true,
	}
}

func TestMaterializeCreatesDirectoryTreeAndFile(t *testing.T) {
	dest := t.TempDir()

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{
		dirent(1, 2, "sub"),
		dirent(2, 3, "hello.txt"),
	}
	fs.Inodes = []*jffs2.Inode{
		inode(2, 1, jffs2.ModeDir|0755, 0, "", 0),
		inode(3, 1, jffs2.ModeReg|0644, 0, "hello", 5),
	}

	r := Materialize(fs, dest, false)
	require.Empty(t, r.Errors)

	got, err := os.ReadFile(filepath.Join(dest, "sub", "hello.txt"))
	require.NoError(t, err, "reading materialized file")
	assert.Equal(t, "hello", string(got))
}

func TestMaterializeJoinsFragmentsByDataOffset(t *testing.T) {
	dest := t.TempDir()

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{dirent(1, 2, "f")}
	fs.Inodes = []*jffs2.Inode{
		inode(2, 1, jffs2.ModeReg|0644, 0, "hello", 10),
		inode(2, 2, jffs2.ModeReg|0644, 5, "world", 10),
	}

	r := Materialize(fs, dest, false)
	require.Empty(t, r.Errors)

	got, err := os.ReadFile(filepath.Join(dest, "f"))
	require.NoError(t, err, "reading file")
	assert.Equal(t, "helloworld", string(got))
}

func TestMaterializeSymlink(t *testing.T) {
	dest := t.TempDir()

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{dirent(1, 2, "link")}
	fs.Inodes = []*jffs2.Inode{
		inode(2, 1, jffs2.ModeLnk|0777, 0, "target.txt", 10),
	}

	r := Materialize(fs, dest, false)
	require.Empty(t, r.Errors)

	target, err := os.Readlink(filepath.Join(dest, "link"))
	require.NoError(t, err)
	assert.Equal(t, "target.txt", target)
}

func TestMaterializeSymlinkSkipsWhenNonSymlinkExists(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "link"), []byte("already here"), 0644))

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{dirent(1, 2, "link")}
	fs.Inodes = []*jffs2.Inode{
		inode(2, 1, jffs2.ModeLnk|0777, 0, "target.txt", 10),
	}

	r := Materialize(fs, dest, false)
	assert.Equal(t, 0, r.Created)
	assert.Len(t, r.Errors, 1)

	got, err := os.ReadFile(filepath.Join(dest, "link"))
	require.NoError(t, err, "existing non-symlink file must survive untouched")
	assert.Equal(t, "already here", string(got))
}

func TestMaterializeSkipsNameWithNoInode(t *testing.T) {
	dest := t.TempDir()

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{dirent(1, 99, "orphan")}

	r := Materialize(fs, dest, false)
	assert.Equal(t, 0, r.Created)
	assert.Len(t, r.Errors, 1)
}

func TestMaterializeSkipsNonUTF8Name(t *testing.T) {
	dest := t.TempDir()

	fs := jffs2.NewLogicalFS(false)
	fs.Dirents = []*jffs2.Dirent{
		{Pino: 1, Ino: 2, Name: []byte{0xff, 0xfe}},
	}
	fs.Inodes = []*jffs2.Inode{inode(2, 1, jffs2.ModeReg|0644, 0, "x", 1)}

	r := Materialize(fs, dest, false)
	assert.Equal(t, 0, r.Created)
	assert.Len(t, r.Errors, 1)
}
