//go:build !windows

package log

import (
	"sync"

	syslog "github.com/RackSec/srslog"
)

// SyslogSink forwards records to a local or remote syslog daemon via
// RackSec/srslog, grounded on
// _examples/moby-moby/daemon/logger/syslog's use of the same library.
type SyslogSink struct {
	baseSink
	mu     sync.Mutex
	name   string
	writer *syslog.Writer
}

// NewSyslogSink dials network/raddr (network == "" dials the local syslog
// socket) tagged with tag, identifying itself as name in a Tee.
func NewSyslogSink(name, network, raddr, tag string, formatter Formatter, filter Filter) (*SyslogSink, error) {
	var (
		w   *syslog.Writer
		err error
	)
	if network == "" {
		w, err = syslog.New(syslog.LOG_INFO, tag)
	} else {
		w, err = syslog.Dial(network, raddr, syslog.LOG_INFO, tag)
	}
	if err != nil {
		return nil, err
	}
	return &SyslogSink{baseSink: newBaseSink(formatter, filter), name: name, writer: w}, nil
}

func (s *SyslogSink) Name() string { return s.name }

func (s *SyslogSink) writeOne(r Record) {
	line := s.format(r)
	switch {
	case r.Level >= Fatal:
		s.writer.Crit(line)
	case r.Level >= Error:
		s.writer.Err(line)
	case r.Level >= Warning:
		s.writer.Warning(line)
	case r.Level >= Info:
		s.writer.Info(line)
	default:
		s.writer.Debug(line)
	}
}

func (s *SyslogSink) Write(r Record) {
	if !s.allow(r) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeOne(r)
}

func (s *SyslogSink) WriteAtomic(a AtomicRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range a.Records {
		if s.allow(r) {
			s.writeOne(r)
		}
	}
}

func (s *SyslogSink) Flush() {}

func (s *SyslogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writer.Close()
}
