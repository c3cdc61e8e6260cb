package log

import (
	"io"
	"sync"
)

// StreamSink formats records and writes them to an arbitrary io.Writer,
// e.g. os.Stdout/os.Stderr for console output.
type StreamSink struct {
	baseSink
	mu   sync.Mutex
	name string
	w    io.Writer
}

// NewStreamSink wraps w, identifying itself as name in a Tee.
func NewStreamSink(name string, w io.Writer, formatter Formatter, filter Filter) *StreamSink {
	return &StreamSink{baseSink: newBaseSink(formatter, filter), name: name, w: w}
}

func (s *StreamSink) Name() string { return s.name }

func (s *StreamSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, s.format(r))
}

func (s *StreamSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range a.Records {
		if !s.allow(r) {
			continue
		}
		io.WriteString(s.w, s.format(r))
	}
}

func (s *StreamSink) Flush() {
	if f, ok := s.w.(interface{ Sync() error }); ok {
		s.mu.Lock()
		_ = f.Sync()
		s.mu.Unlock()
	}
}

func (s *StreamSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
