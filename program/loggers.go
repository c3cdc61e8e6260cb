package program

import (
	"os"

	"github.com/erebus-project/erebus/rtl/log"
)

// addDefaultLoggers installs the console/syslog/debugger sinks
// Program::addLoggers does in the C++ source: a debugger sink when a
// debugger is attached on Windows, a syslog sink when running as a
// daemon on Linux, and stdout/stderr sinks split by level otherwise.
func (p *Program) addDefaultLoggers(tee *log.Tee) {
	opts := log.DefaultFormatterOptions()
	formatter := log.NewSimpleFormatter(opts)

	if p.isDaemon {
		if sink, err := daemonSink(formatter); err == nil && sink != nil {
			tee.AddSink("daemon", sink)
		}
		return
	}

	if sink := debuggerSinkIfPresent(formatter); sink != nil {
		tee.AddSink("debugger", sink)
	}

	tee.AddSink("stdout", log.NewStreamSink("stdout", os.Stdout, formatter,
		log.LevelRange{Min: log.Debug, Max: log.Info}))
	tee.AddSink("stderr", log.NewStreamSink("stderr", os.Stderr, formatter,
		log.LevelRange{Min: log.Warning, Max: log.Fatal}))
}
