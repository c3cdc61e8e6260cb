//go:build windows

package program

import (
	"os"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
)

// daemonize has no Windows equivalent here; a Windows service runs under
// the Service Control Manager instead, which is out of scope for the
// --daemon flag (CanBeDaemonized is meant to be left unset on Windows
// binaries).
func daemonize() error {
	return errors.New(0, errors.Generic, "daemonization is not supported on Windows")
}

func posixTerminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

func daemonSink(log.Formatter) (log.Sink, error) { return nil, nil }

func debuggerSinkIfPresent(formatter log.Formatter) log.Sink {
	if !isDebuggerPresent() {
		return nil
	}
	return log.NewDebuggerSink("debugger", formatter, log.LevelRange{Min: log.Debug, Max: log.Fatal})
}
