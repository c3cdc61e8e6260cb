// Package program implements the process-lifecycle skeleton every erebus
// binary shares: command-line parsing, locale, logger wiring, signal
// handling, and optional POSIX daemonization, grounded on
// original_source/src/rtl-lib/program.cxx and
// original_source/include/erebus/rtl/program.hxx.
package program

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
)

// Options is a bitmask controlling optional Program behavior, mirroring
// the C++ source's Program::Options enum.
type Options int

const (
	EnableSignalHandler Options = 1 << iota
	CanBeDaemonized
	SyncLogger
)

// Runner is implemented by the concrete binary; Run is invoked once
// startup (locale, logger, signal handler, optional daemonization) has
// completed.
type Runner interface {
	// Run executes the program body. ctx is cancelled when a terminating
	// signal arrives. A non-nil error is dispatched through the same
	// path as a recovered panic.
	Run(ctx context.Context, logger log.Logger, args []string) error

	// AddFlags lets the binary register its own flags on top of the
	// common --verbose/--logthreshold/--daemon set.
	AddFlags(flags *pflag.FlagSet)

	// AddLoggers lets the binary append sinks beyond the
	// console/syslog/debugger defaults Program installs.
	AddLoggers(tee *log.Tee, isDaemon bool)
}

// BaseRunner can be embedded by a Runner that doesn't need to customize
// flags or logger sinks.
type BaseRunner struct{}

func (BaseRunner) AddFlags(*pflag.FlagSet)   {}
func (BaseRunner) AddLoggers(*log.Tee, bool) {}

var instance atomic.Pointer[Program]

// Program owns the process-wide startup/shutdown sequence. Only one
// Program may be active per process, mirroring the C++ source's single
// static instance used by the terminate/assert hooks.
type Program struct {
	options Options
	isDaemon bool

	mu           sync.Mutex
	logger       log.Logger
	verbose      bool
	loggerThresholdMS uint

	signalCh  chan os.Signal
	crashFile *os.File
}

// New constructs a Program with the given options. The returned Program
// is not started until Exec is called.
func New(options Options) *Program {
	p := &Program{options: options}
	instance.Store(p)
	return p
}

// Current returns the process-wide Program instance, or nil if none has
// been created yet.
func Current() *Program { return instance.Load() }

func (p *Program) Log() log.Logger { return p.logger }
func (p *Program) IsDaemon() bool  { return p.isDaemon }

// Exec runs the full startup sequence, then name.Run, then a bounded
// flush on the way out -- the Go analogue of Program::exec.
func (p *Program) Exec(name string, runner Runner) int {
	p.globalStartup()
	defer p.globalShutdown()

	cmd, parsed := p.buildCommand(name, runner)
	if err := cmd.Execute(); err != nil {
		return exitFailure
	}
	if !parsed.shouldRun {
		return exitSuccess
	}

	p.globalMakeLogger(parsed.verbose, parsed.loggerThresholdMS, runner)
	defer p.logger.Flush(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	if p.options&EnableSignalHandler != 0 {
		p.installSignalHandler(cancel)
		defer p.stopSignalHandler()
	}

	return p.dispatch(func() error {
		return runner.Run(ctx, p.logger, parsed.remainingArgs)
	})
}

const (
	exitSuccess = 0
	exitFailure = 1
)

type parsedArgs struct {
	verbose           bool
	loggerThresholdMS uint
	daemon            bool
	shouldRun         bool
	remainingArgs     []string
}

func (p *Program) buildCommand(name string, runner Runner) (*cobra.Command, *parsedArgs) {
	parsed := &parsedArgs{shouldRun: true}

	cmd := &cobra.Command{
		Use:           name,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed.remainingArgs = args
			return nil
		},
	}

	// Registered before cobra's own default so the "?" shorthand is known to
	// pflag; cobra then reuses this flag instead of adding "-h".
	cmd.Flags().BoolP("help", "?", false, "help for "+name)

	flags := cmd.Flags()
	flags.BoolVarP(&parsed.verbose, "verbose", "v", false, "verbose logging")
	flags.UintVar(&parsed.loggerThresholdMS, "logthreshold", 1000, "async logger flush threshold, milliseconds")
	if p.options&CanBeDaemonized != 0 {
		flags.BoolVarP(&parsed.daemon, "daemon", "d", false, "run as a daemon")
	}
	runner.AddFlags(flags)

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		parsed.shouldRun = false
		cmd.Println(cmd.UsageString())
	})

	return cmd, parsed
}

func (p *Program) globalStartup() {
	if p.options&CanBeDaemonized != 0 && daemonRequested(os.Args) {
		if err := daemonize(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to daemonize:", err)
			os.Exit(exitFailure)
		}
		p.isDaemon = true
	}

	if err := setLocale(os.Getenv("LANG")); err != nil {
		fmt.Fprintln(os.Stderr, "failed to set locale:", err)
	}

	setAssertHook(p.printAssertFn)
	p.installCrashOutput()

	if dir, err := os.Executable(); err == nil {
		_ = os.Chdir(dirOf(dir))
	}
}

func (p *Program) globalShutdown() {
	setAssertHook(nil)
	if p.crashFile != nil {
		p.crashFile.Close()
	}
	instance.CompareAndSwap(p, nil)
}

// installCrashOutput points the runtime's fatal-crash reporter at a new
// file in the system temp directory, the Go-idiomatic substitute for the C++ source's
// std::set_terminate(staticTerminateHandler): an unrecovered panic that
// reaches the runtime (not caught by Program.dispatch) still leaves a
// stack trace on disk instead of only on a controlling terminal that may
// not exist once daemonized.
func (p *Program) installCrashOutput() {
	f, err := os.CreateTemp("", "erebus-crash-*.log")
	if err != nil {
		return
	}
	if err := debug.SetCrashOutput(f, debug.CrashOptions{}); err != nil {
		f.Close()
		return
	}
	p.crashFile = f
}

func daemonRequested(args []string) bool {
	for _, a := range args {
		if a == "--daemon" || a == "-d" {
			return true
		}
	}
	return false
}

func (p *Program) globalMakeLogger(verbose bool, thresholdMS uint, runner Runner) {
	p.verbose = verbose
	p.loggerThresholdMS = thresholdMS

	tee := log.NewTee()
	runner.AddLoggers(tee, p.isDaemon)
	p.addDefaultLoggers(tee)

	var logger log.Logger
	if p.options&SyncLogger != 0 {
		logger = log.NewSyncLogger(tee)
	} else {
		logger = log.NewAsyncLogger(tee, 4096, time.Duration(thresholdMS)*time.Millisecond)
	}

	if verbose {
		logger.SetLevel(log.Debug)
	} else {
		logger.SetLevel(log.Info)
	}

	p.mu.Lock()
	p.logger = logger
	p.mu.Unlock()
}

func (p *Program) installSignalHandler(cancel context.CancelFunc) {
	ch := make(chan os.Signal, 4)
	sigs := posixTerminationSignals()
	signal.Notify(ch, sigs...)
	p.signalCh = ch

	go func() {
		for sig := range ch {
			if p.logger != nil {
				p.logger.NewScope().Log(log.Info, fmt.Sprintf("received signal: %v", sig))
			}
			cancel()
			return
		}
	}()
}

func (p *Program) stopSignalHandler() {
	if p.signalCh != nil {
		signal.Stop(p.signalCh)
		close(p.signalCh)
	}
}

func (p *Program) dispatch(run func() error) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = p.dispatchPanic(r)
		}
	}()

	if err := run(); err != nil {
		code = p.dispatchError(err)
		return code
	}
	return exitSuccess
}

func (p *Program) dispatchError(err error) int {
	if e, ok := err.(*errors.Error); ok {
		p.logger.NewScope().Log(log.Error, e.Error())
		kind := e.ResultCode()
		if kind == errors.Ok {
			return exitSuccess
		}
		return exitFailure
	}
	p.logger.NewScope().Log(log.Error, err.Error())
	return exitFailure
}

func (p *Program) dispatchPanic(r interface{}) int {
	stack := string(debug.Stack())
	if err, ok := r.(error); ok && isOutOfMemory(err) {
		p.logger.NewScope().Log(log.Fatal, fmt.Sprintf("out of memory: %v\n%s", err, stack))
	} else {
		p.logger.NewScope().Log(log.Fatal, fmt.Sprintf("panic: %v\n%s", r, stack))
	}
	p.logger.Flush(5 * time.Second)
	return exitFailure
}

func isOutOfMemory(err error) bool {
	if err == syscall.ENOMEM {
		return true
	}
	// The runtime doesn't export a typed OOM error: the allocator panics
	// with a plain string wrapped in a runtime.Error.
	if _, ok := err.(runtime.Error); ok {
		return strings.Contains(err.Error(), "out of memory")
	}
	return false
}

func (p *Program) printAssertFn(message string) {
	if p.logger == nil {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	p.logger.NewScope().Log(log.Fatal, message)
	p.logger.Flush(5 * time.Second)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[:i]
		}
	}
	return "."
}
