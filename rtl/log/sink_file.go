package log

import (
	"fmt"
	"os"
	"sync"
)

// FileSink writes formatted records to a file, rotating when the active
// file reaches MaxFileSize: "name" -> "name.0" -> "name.1" -> ... ->
// "name.{keep-1}", highest-numbered is oldest and is discarded. Rotation
// never splits a record: before each write the sink checks whether the
// record would take a non-empty active file past MaxFileSize, and if so
// rotates first and writes the whole record to the fresh file.
type FileSink struct {
	baseSink
	mu          sync.Mutex
	path        string
	keep        int
	maxFileSize int64

	f       *os.File
	written int64
}

// NewFileSink opens (or creates) path for append and returns a FileSink
// that rotates to path.0 .. path.{keep-1} once the active file reaches
// maxFileSize bytes. keep must be >= 1.
func NewFileSink(path string, maxFileSize int64, keep int, formatter Formatter, filter Filter) (*FileSink, error) {
	if keep < 1 {
		keep = 1
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileSink{
		baseSink:    newBaseSink(formatter, filter),
		path:        path,
		keep:        keep,
		maxFileSize: maxFileSize,
		f:           f,
		written:     info.Size(),
	}, nil
}

func (s *FileSink) Name() string { return s.path }

func (s *FileSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	line := s.format(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLineLocked(line)
}

func (s *FileSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range a.Records {
		if !s.allow(r) {
			continue
		}
		s.writeLineLocked(s.format(r))
	}
}

func (s *FileSink) writeLineLocked(line string) {
	if s.maxFileSize > 0 && s.written > 0 && s.written+int64(len(line)) > s.maxFileSize {
		if err := s.rotateLocked(); err != nil {
			return
		}
	}
	n, err := s.f.WriteString(line)
	if err == nil {
		s.written += int64(n)
	}
}

func (s *FileSink) rotateLocked() error {
	if err := s.f.Close(); err != nil {
		return err
	}
	_ = os.Remove(fmt.Sprintf("%s.%d", s.path, s.keep-1))
	for i := s.keep - 2; i >= 0; i-- {
		_ = os.Rename(fmt.Sprintf("%s.%d", s.path, i), fmt.Sprintf("%s.%d", s.path, i+1))
	}
	if s.keep > 0 {
		_ = os.Rename(s.path, fmt.Sprintf("%s.%d", s.path, 0))
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	s.f = f
	s.written = 0
	return nil
}

func (s *FileSink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.f.Sync()
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
