//go:build linux

package systeminfo

import (
	"os"
	"strings"
)

// uname reports the kernel name and release, mirroring what struct utsname
// gives linux_system_info.cxx's osType/osVersion sources.
func uname() (sysname, release string) {
	sysname = "Linux"
	if b, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		release = strings.TrimSpace(string(b))
	}
	return sysname, release
}
