//go:build !windows

package program

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/erebus-project/erebus/rtl/log"
)

// erebusReexecEnv marks a process that has already been relaunched into a
// new session; its presence short-circuits a second daemonize attempt.
const erebusReexecEnv = "EREBUS_DAEMONIZED"

// daemonize re-execs the current process detached from its controlling
// terminal, in a new session, with stdio redirected to /dev/null, then
// exits the parent. Go cannot safely call a bare fork(2) once the runtime
// has started goroutines, so this is the re-exec + Setsid substitute for
// the C++ source's double-fork Er::System::CurrentProcess::daemonize().
func daemonize() error {
	if os.Getenv(erebusReexecEnv) == "1" {
		return nil
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer devNull.Close()

	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), erebusReexecEnv+"=1")
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return err
	}
	os.Exit(exitSuccess)
	return nil
}

func posixTerminationSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGPIPE, syscall.SIGHUP}
}

func daemonSink(formatter log.Formatter) (log.Sink, error) {
	sink, err := log.NewSyslogSink("erebusd", "", "", "erebus",
		formatter, log.LevelRange{Min: log.Error, Max: log.Fatal})
	if err != nil {
		return nil, err
	}
	return sink, nil
}

func debuggerSinkIfPresent(log.Formatter) log.Sink { return nil }
