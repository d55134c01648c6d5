package materialize

import (
	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-jffs2extract/internal/jffs2"
)

// createDevice makes a character or block special file at path. typeBit is
// jffs2.ModeChr or jffs2.ModeBlk; golang.org/x/sys/unix.Mknod is used
// because creating a device node has no portable stdlib path — it is a
// raw mknod(2) syscall (see DESIGN.md).
func createDevice(path string, typeBit uint32, perm uint32, major, minor uint32) error {
	dev := jffs2.Makedev(major, minor)
	return unix.Mknod(path, typeBit|(perm&jffs2.ModePerm), int(dev))
}
