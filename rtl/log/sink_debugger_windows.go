//go:build windows

package log

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procOutputDebugString = modkernel32.NewProc("OutputDebugStringW")
)

// DebuggerSink forwards formatted records to OutputDebugString, so they
// show up in a native debugger (WinDbg, Visual Studio) attached to the
// process, via golang.org/x/sys/windows.
type DebuggerSink struct {
	baseSink
	mu   sync.Mutex
	name string
}

// NewDebuggerSink returns a DebuggerSink identifying itself as name in a
// Tee.
func NewDebuggerSink(name string, formatter Formatter, filter Filter) *DebuggerSink {
	return &DebuggerSink{baseSink: newBaseSink(formatter, filter), name: name}
}

func (s *DebuggerSink) Name() string { return s.name }

func (s *DebuggerSink) writeOne(r Record) {
	ptr, err := syscall.UTF16PtrFromString(s.format(r))
	if err != nil {
		return
	}
	procOutputDebugString.Call(uintptr(unsafe.Pointer(ptr)))
}

func (s *DebuggerSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeOne(r)
}

func (s *DebuggerSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range a.Records {
		if s.allow(r) {
			s.writeOne(r)
		}
	}
}

func (s *DebuggerSink) Flush() {}

func (s *DebuggerSink) Close() error { return nil }
