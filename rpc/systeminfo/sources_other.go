//go:build !linux

package systeminfo

import "runtime"

// uname falls back to runtime.GOOS and an empty release outside Linux; win32_system_info.cxx
// uses GetVersionEx instead, which Go intentionally avoids querying directly
// since recent Windows releases report a fixed compatibility version there.
func uname() (sysname, release string) {
	return runtime.GOOS, ""
}
