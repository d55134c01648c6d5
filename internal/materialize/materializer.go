// Package materialize turns a scanned logical filesystem into real files,
// directories, symlinks and device nodes under a destination directory,
// the way the reference corpus's filesystem service walks a decoded
// container and writes the objects it finds to an export root.
package materialize

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

// Result tallies what happened during one filesystem's materialization.
// Nothing in it is fatal — every failure here is logged and skipped per
// spec.md §7's non-fatal I/O class.
type Result struct {
	Created int
	Skipped int
	Errors  []error
}

func (r *Result) fail(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	r.Errors = append(r.Errors, err)
	r.Skipped++
	log.Printf("materialize: %v", err)
}

// Materialize writes every live name in fs to disk under destDir, which
// must already exist.
func Materialize(fs *jffs2.LogicalFS, destDir string, verbose bool) *Result {
	r := &Result{}

	order := binary.ByteOrder(binary.LittleEndian)
	if fs.BigEndian {
		order = binary.BigEndian
	}

	byIno := buildDirentByIno(fs.Dirents)
	inodesByIno := buildInodesByIno(fs.Inodes)

	for _, d := range fs.Dirents {
		if d.Unlinked() {
			continue
		}

		relPath, err := ResolvePath(d, byIno)
		if err != nil {
			r.fail("skipping ino %d: %v", d.Ino, err)
			continue
		}
		if relPath == "" {
			continue
		}
		fullPath := filepath.Join(destDir, relPath)

		versions := inodesByIno[d.Ino]
		if len(versions) == 0 {
			r.fail("skipping %q: ino %d has a name but no inode data", relPath, d.Ino)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			r.fail("creating parent directory for %q: %v", relPath, err)
			continue
		}

		if err := materializeOne(fullPath, versions, order); err != nil {
			r.fail("writing %q: %v", relPath, err)
			continue
		}
		if verbose {
			log.Printf("materialize: wrote %q (ino %d)", relPath, d.Ino)
		}
		r.Created++
	}

	return r
}

func buildInodesByIno(inodes []*jffs2.Inode) map[uint32][]*jffs2.Inode {
	byIno := make(map[uint32][]*jffs2.Inode)
	for _, n := range inodes {
		byIno[n.Ino] = append(byIno[n.Ino], n)
	}
	return byIno
}

// latestVersion returns the version carrying the authoritative final size
// for a regular file (spec.md §9): later versions shrinking a file via
// truncation or a hole must win over earlier, larger ones.
func latestVersion(versions []*jffs2.Inode) *jffs2.Inode {
	latest := versions[0]
	for _, n := range versions[1:] {
		if n.Version > latest.Version {
			latest = n
		}
	}
	return latest
}

// materializeOne decides what kind of filesystem object to create from
// the mode of the first inode attached to this ino (spec.md §4.5, bold:
// "selected by mode of the first inode in the attached list") — later
// versions never change a node's type, only its data or size.
func materializeOne(path string, versions []*jffs2.Inode, order binary.ByteOrder) error {
	first := versions[0]

	switch {
	case first.IsDir():
		if err := os.MkdirAll(path, 0755); err != nil {
			return err
		}
		return os.Chmod(path, os.FileMode(first.Perm()))

	case first.IsSymlink():
		if info, err := os.Lstat(path); err == nil {
			if info.Mode()&os.ModeSymlink == 0 {
				return fmt.Errorf("skipping symlink %q: a non-symlink already exists there", path)
			}
			if err := os.Remove(path); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("checking existing path %q: %w", path, err)
		}
		target := string(first.Data)
		return os.Symlink(target, path)

	case first.IsRegular():
		return materializeRegular(path, first, latestVersion(versions), versions)

	case first.IsChr(), first.IsBlk():
		typeBit := jffs2.ModeChr
		if first.IsBlk() {
			typeBit = jffs2.ModeBlk
		}
		major, minor, ok := jffs2.DecodeDeviceNumber(first.Data, order)
		if !ok {
			return fmt.Errorf("unrecognized device-id payload length %d", len(first.Data))
		}
		_ = os.Remove(path)
		return createDevice(path, typeBit, first.Perm(), major, minor)

	case first.IsFifo(), first.IsSock():
		return fmt.Errorf("FIFO/socket nodes are not materialized, skipping")

	default:
		return fmt.Errorf("unrecognized mode %#o, skipping", first.Mode)
	}
}

func materializeRegular(path string, first, latest *jffs2.Inode, versions []*jffs2.Inode) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	for _, n := range versions {
		if len(n.Data) == 0 {
			continue
		}
		if _, err := f.WriteAt(n.Data, int64(n.DataOffset)); err != nil {
			return fmt.Errorf("writing fragment at offset %d: %w", n.DataOffset, err)
		}
	}

	// Only ISize comes from the latest version (spec.md §9); the
	// permission bits follow the first inode's mode like every other
	// type-dispatch decision.
	if err := f.Truncate(int64(latest.ISize)); err != nil {
		return err
	}
	return f.Chmod(os.FileMode(first.Perm()))
}
