//go:build linux

package log

import (
	"strconv"

	"github.com/coreos/go-systemd/v22/journal"
)

func formatUint64(v uint64) string { return strconv.FormatUint(v, 10) }

// JournaldSink forwards records to the systemd journal via
// coreos/go-systemd/v22/journal, grounded on
// _examples/moby-moby/daemon/logger/journald's use of the same library.
type JournaldSink struct {
	baseSink
	name string
}

// NewJournaldSink returns a JournaldSink identifying itself as name in a
// Tee. It returns an error if the journal socket is not reachable.
func NewJournaldSink(name string, formatter Formatter, filter Filter) (*JournaldSink, error) {
	if !journal.Enabled() {
		return nil, errJournalUnavailable
	}
	return &JournaldSink{baseSink: newBaseSink(formatter, filter), name: name}, nil
}

var errJournalUnavailable = journalUnavailableError{}

type journalUnavailableError struct{}

func (journalUnavailableError) Error() string { return "log: systemd journal is not available" }

func (s *JournaldSink) Name() string { return s.name }

func levelToPriority(l Level) journal.Priority {
	switch {
	case l >= Fatal:
		return journal.PriCrit
	case l >= Error:
		return journal.PriErr
	case l >= Warning:
		return journal.PriWarning
	case l >= Info:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

func (s *JournaldSink) writeOne(r Record) {
	fields := map[string]string{
		"SYSLOG_IDENTIFIER": r.Component,
		"SCOPE_ID":          formatUint64(r.ScopeID),
	}
	_ = journal.Send(s.format(r), levelToPriority(r.Level), fields)
}

func (s *JournaldSink) Write(r Record) {
	if s.allow(r) {
		s.writeOne(r)
	}
}

func (s *JournaldSink) WriteAtomic(a AtomicRecord) {
	for _, r := range a.Records {
		if s.allow(r) {
			s.writeOne(r)
		}
	}
}

func (s *JournaldSink) Flush() {}

func (s *JournaldSink) Close() error { return nil }
