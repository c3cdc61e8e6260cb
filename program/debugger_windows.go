//go:build windows

package program

import "golang.org/x/sys/windows"

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procIsDebuggerPresent = modkernel32.NewProc("IsDebuggerPresent")
)

func isDebuggerPresent() bool {
	r, _, _ := procIsDebuggerPresent.Call()
	return r != 0
}
