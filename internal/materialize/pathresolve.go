package materialize

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

// ErrNonUTF8Name is returned when a dirent's name (or one of its
// ancestors') is not valid UTF-8, making it impossible to form a host
// path from it.
var ErrNonUTF8Name = fmt.Errorf("materialize: name is not valid UTF-8")

// ErrPathTooDeep is returned when the pino chain walks past maxDepth
// without reaching a dirent absent from the lookup table, a guard
// against a corrupt image that cycles parent pointers.
var ErrPathTooDeep = fmt.Errorf("materialize: directory nesting too deep")

const maxDepth = 100

// ResolvePath walks d's pino chain to build the slash-joined path from the
// filesystem root to d, stopping once a parent ino is not present in
// byIno (taken to be the root). byIno must map an inode number to the
// first dirent the scanner saw claiming it (see buildDirentByIno).
func ResolvePath(d *jffs2.Dirent, byIno map[uint32]*jffs2.Dirent) (string, error) {
	var segments []string

	cur := d
	for depth := 0; ; depth++ {
		if depth > maxDepth {
			return "", ErrPathTooDeep
		}
		if !utf8.Valid(cur.Name) {
			return "", ErrNonUTF8Name
		}
		segments = append(segments, string(cur.Name))

		parent, ok := byIno[cur.Pino]
		if !ok {
			break
		}
		cur = parent
	}

	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, "/"), nil
}

// buildDirentByIno indexes fs.Dirents by the inode number they name,
// keeping the first dirent seen per ino (spec.md §4.5's "first wins" rule)
// so that later hard-link-style re-uses of the same ino never change the
// path an earlier name already established.
func buildDirentByIno(dirents []*jffs2.Dirent) map[uint32]*jffs2.Dirent {
	byIno := make(map[uint32]*jffs2.Dirent, len(dirents))
	for _, d := range dirents {
		if d.Unlinked() {
			continue
		}
		if existing, exists := byIno[d.Ino]; !exists {
			byIno[d.Ino] = d
		} else {
			log.Printf("materialize: ino %d already claimed by dirent %q, keeping it over %q", d.Ino, existing.Name, d.Name)
		}
	}
	return byIno
}
