package log

import (
	"sync/atomic"
	"time"
)

// SyncLogger dispatches every record to the sink tree inline, with no
// background worker or queue. Useful for tests and for short-lived tools
// where deterministic ordering matters more than hot-path latency.
type SyncLogger struct {
	sinks *Tee
	lvl   int32
}

// NewSyncLogger constructs a SyncLogger writing to sinks.
func NewSyncLogger(sinks *Tee) *SyncLogger {
	return &SyncLogger{sinks: sinks, lvl: int32(Info)}
}

func (l *SyncLogger) level() Level      { return Level(atomic.LoadInt32(&l.lvl)) }
func (l *SyncLogger) component() string { return "" }

func (l *SyncLogger) SetLevel(lv Level) { atomic.StoreInt32(&l.lvl, int32(lv)) }

func (l *SyncLogger) NewScope() *Scope { return newScope(l) }

func (l *SyncLogger) AddSink(n string, s Sink) { l.sinks.AddSink(n, s) }
func (l *SyncLogger) RemoveSink(n string)      { l.sinks.RemoveSink(n) }

func (l *SyncLogger) writeRecord(r Record)      { l.sinks.Write(r) }
func (l *SyncLogger) writeAtomic(a AtomicRecord) { l.sinks.WriteAtomic(a) }

func (l *SyncLogger) Flush(timeout time.Duration) bool {
	l.sinks.Flush()
	return true
}

func (l *SyncLogger) Close() error { return l.sinks.Close() }
