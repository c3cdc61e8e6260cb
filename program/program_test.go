package program

import (
	"errors"
	"runtime"
	"syscall"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	rtlerrors "github.com/erebus-project/erebus/rtl/errors"
	"github.com/erebus-project/erebus/rtl/log"
)

func newTestProgram() *Program {
	p := New(0)
	p.logger = log.NewSyncLogger(log.NewTee())
	return p
}

func TestBuildCommandParsesCommonFlags(t *testing.T) {
	p := New(CanBeDaemonized)
	cmd, parsed := p.buildCommand("erebusd", BaseRunner{})
	cmd.SetArgs([]string{"-v", "--logthreshold=250", "--daemon", "extra"})
	assert.NilError(t, cmd.Execute())

	assert.Check(t, is.Equal(parsed.verbose, true))
	assert.Check(t, is.Equal(parsed.loggerThresholdMS, uint(250)))
	assert.Check(t, is.Equal(parsed.daemon, true))
	assert.Check(t, is.DeepEqual(parsed.remainingArgs, []string{"extra"}))
}

func TestBuildCommandHelpSkipsRun(t *testing.T) {
	p := New(0)
	cmd, parsed := p.buildCommand("erebusd", BaseRunner{})
	cmd.SetArgs([]string{"-?"})
	assert.NilError(t, cmd.Execute())
	assert.Check(t, is.Equal(parsed.shouldRun, false))
}

func TestDispatchReturnsSuccessOnNilError(t *testing.T) {
	p := newTestProgram()
	code := p.dispatch(func() error { return nil })
	assert.Check(t, is.Equal(code, exitSuccess))
}

func TestDispatchMapsGenericErrorToFailure(t *testing.T) {
	p := newTestProgram()
	code := p.dispatch(func() error { return errors.New("boom") })
	assert.Check(t, is.Equal(code, exitFailure))
}

func TestDispatchMapsOkErrorCodeToSuccess(t *testing.T) {
	p := newTestProgram()
	code := p.dispatch(func() error {
		return rtlerrors.New(0, rtlerrors.Generic, "")
	})
	assert.Check(t, is.Equal(code, exitSuccess))
}

type fakeRuntimeError string

func (e fakeRuntimeError) Error() string { return string(e) }
func (e fakeRuntimeError) RuntimeError() {}

func TestIsOutOfMemoryMatchesErrno(t *testing.T) {
	assert.Check(t, isOutOfMemory(syscall.ENOMEM))
	assert.Check(t, !isOutOfMemory(syscall.EINVAL))
}

func TestIsOutOfMemoryMatchesRuntimeOOMPanic(t *testing.T) {
	var err error = fakeRuntimeError("runtime: out of memory")
	var _ runtime.Error = fakeRuntimeError("")
	assert.Check(t, isOutOfMemory(err))
	assert.Check(t, !isOutOfMemory(fakeRuntimeError("index out of range")))
}

func TestDispatchRecoversPanic(t *testing.T) {
	p := newTestProgram()
	code := p.dispatch(func() error {
		panic("unexpected")
	})
	assert.Check(t, is.Equal(code, exitFailure))
}

func TestAssertPassesWhenConditionTrue(t *testing.T) {
	assert.Check(t, func() bool {
		Assert(true, "never")
		return true
	}())
}

func TestAssertPanicsWhenConditionFalse(t *testing.T) {
	defer func() {
		r := recover()
		assert.Check(t, r != nil)
	}()
	Assert(false, "boom")
}

func TestSetLocaleDefaultsWhenLangUnset(t *testing.T) {
	assert.NilError(t, setLocale(""))
}

func TestProgramFlushTimeout(t *testing.T) {
	p := newTestProgram()
	ok := p.logger.Flush(10 * time.Millisecond)
	assert.Check(t, ok)
}
