package hashcache

import (
	"os"
	"syscall"
)

// changeStamp returns the inode change time and inode number. Neither can be
// restored by copy or archive tools, unlike mtime.
func changeStamp(info os.FileInfo) (ctime int64, inode uint64, ok bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return st.Ctim.Nano(), st.Ino, true
}
