package log

import "time"

// Sink is a terminal log consumer: file, stream, syslog, journald, GELF,
// CloudWatch Logs, or a Windows debugger. A Sink may hold an optional
// Formatter and Filter.
type Sink interface {
	Name() string
	Write(r Record)
	WriteAtomic(a AtomicRecord)
	Flush()
	Close() error
}

// Logger is the public surface both the async and sync implementations
// satisfy.
type Logger interface {
	writer

	// SetLevel changes the level at which records are dropped at the write
	// site.
	SetLevel(l Level)

	// NewScope returns a fresh per-thread indent/atomic-block handle; see
	// Scope's doc comment for why this replaces the C++ source's implicit
	// thread-local state.
	NewScope() *Scope

	// AddSink/RemoveSink manage the logger's root Tee.
	AddSink(name string, s Sink)
	RemoveSink(name string)

	// Flush blocks until every record enqueued so far has drained through
	// every sink, honoring timeout. It returns whether the drain completed
	// in time.
	Flush(timeout time.Duration) bool

	// Close stops the worker (async mode is a no-op for sync mode) and
	// releases sinks.
	Close() error
}
