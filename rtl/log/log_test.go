package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

type captureSink struct {
	baseSink
	name string
	mu   sync.Mutex
	got  []Record
}

func newCaptureSink(name string) *captureSink {
	return &captureSink{baseSink: newBaseSink(nil, nil), name: name}
}

func (s *captureSink) Name() string { return s.name }
func (s *captureSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	s.mu.Lock()
	s.got = append(s.got, r)
	s.mu.Unlock()
}
func (s *captureSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	s.got = append(s.got, a.Records...)
	s.mu.Unlock()
}
func (s *captureSink) Flush()       {}
func (s *captureSink) Close() error { return nil }

func TestSyncLoggerFlushOrdering(t *testing.T) {
	sinks := NewTee()
	cap1 := newCaptureSink("a")
	sinks.AddSink("a", cap1)
	l := NewSyncLogger(sinks)

	scope := l.NewScope()
	scope.Log(Info, "one")
	scope.Log(Info, "two")
	scope.Log(Info, "three")

	assert.Equal(t, len(cap1.got), 3)
	assert.Equal(t, cap1.got[0].Message, "one")
	assert.Equal(t, cap1.got[1].Message, "two")
	assert.Equal(t, cap1.got[2].Message, "three")
}

func TestScopeAtomicBlockIsContiguousAcrossSinks(t *testing.T) {
	sinks := NewTee()
	capA := newCaptureSink("a")
	capB := newCaptureSink("b")
	sinks.AddSink("a", capA)
	sinks.AddSink("b", capB)
	l := NewSyncLogger(sinks)

	scope := l.NewScope()
	scope.Log(Info, "before")
	scope.BeginBlock()
	scope.Log(Info, "atomic-1")
	scope.Log(Info, "atomic-2")
	scope.EndBlock()
	scope.Log(Info, "after")

	for _, cap := range []*captureSink{capA, capB} {
		assert.Equal(t, len(cap.got), 4)
		assert.Equal(t, cap.got[0].Message, "before")
		assert.Equal(t, cap.got[1].Message, "atomic-1")
		assert.Equal(t, cap.got[2].Message, "atomic-2")
		assert.Equal(t, cap.got[3].Message, "after")
	}
}

func TestScopeUnindentWithoutIndentPanics(t *testing.T) {
	sinks := NewTee()
	l := NewSyncLogger(sinks)
	scope := l.NewScope()
	defer func() {
		r := recover()
		assert.Assert(t, r != nil)
	}()
	scope.Unindent()
}

func TestTeeDispatchesInSortedOrder(t *testing.T) {
	sinks := NewTee()
	var order []string
	mk := func(name string) *orderSink {
		return &orderSink{name: name, onWrite: func() { order = append(order, name) }}
	}
	sinks.AddSink("zebra", mk("zebra"))
	sinks.AddSink("alpha", mk("alpha"))
	sinks.AddSink("mike", mk("mike"))

	sinks.Write(Record{Message: "x"})
	assert.DeepEqual(t, order, []string{"alpha", "mike", "zebra"})
}

type orderSink struct {
	name    string
	onWrite func()
}

func (s *orderSink) Name() string               { return s.name }
func (s *orderSink) Write(Record)               { s.onWrite() }
func (s *orderSink) WriteAtomic(AtomicRecord)   {}
func (s *orderSink) Flush()                     {}
func (s *orderSink) Close() error               { return nil }

func TestAsyncLoggerDiscardsOnOverflowAndFlushWaits(t *testing.T) {
	sinks := NewTee()
	cap1 := newCaptureSink("a")
	sinks.AddSink("a", cap1)
	l := NewAsyncLogger(sinks, 8, 5*time.Millisecond)
	defer l.Close()

	for i := 0; i < 100; i++ {
		l.writeRecord(Record{Message: "spam"})
	}

	ok := l.Flush(2 * time.Second)
	assert.Assert(t, ok)
	assert.Assert(t, len(cap1.got) <= 100)
}

func TestAsyncLoggerAtomicBlockBypassesThreshold(t *testing.T) {
	sinks := NewTee()
	cap1 := newCaptureSink("a")
	sinks.AddSink("a", cap1)
	l := NewAsyncLogger(sinks, 64, time.Hour)
	defer l.Close()

	l.writeAtomic(AtomicRecord{Records: []Record{{Message: "x"}, {Message: "y"}}})

	ok := l.Flush(2 * time.Second)
	assert.Assert(t, ok)
	assert.Equal(t, len(cap1.got), 2)
}

func TestFileSinkRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	sink, err := NewFileSink(path, 64, 3, NewSimpleFormatter(FormatterOptions{LineTerm: LF, IndentWidth: 1}), nil)
	assert.NilError(t, err)
	defer sink.Close()

	for i := 0; i < 20; i++ {
		sink.Write(Record{Message: strings.Repeat("x", 20)})
	}
	sink.Flush()

	_, err = os.Stat(path)
	assert.NilError(t, err)
	_, err = os.Stat(path + ".0")
	assert.NilError(t, err)
}

func TestLevelRangeFilter(t *testing.T) {
	f := LevelRange{Min: Warning, Max: Fatal}
	assert.Assert(t, is.Equal(f.Allow(Record{Level: Error}), true))
	assert.Assert(t, is.Equal(f.Allow(Record{Level: Debug}), false))
}
