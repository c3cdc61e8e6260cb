package log

import (
	"sync"
	"sync/atomic"
	"time"
)

// defaultQueueCapacity bounds the number of pending records an AsyncLogger
// will buffer before it starts discarding, matching the spec's "fixed
// capacity write queue, never grows without bound" requirement.
const defaultQueueCapacity = 4096

// defaultFlushThreshold is the longest an enqueued record can wait for the
// background worker to pick it up.
const defaultFlushThreshold = 100 * time.Millisecond

// AsyncLogger is the lock-free-on-the-hot-path Logger: Log/BeginBlock/
// EndBlock append to a write queue guarded only by a short-held mutex, and
// a single background goroutine periodically swaps the write queue for an
// empty one and drains the swapped-out queue to the sink tree. Grounded on
// original_source/src/rtl-lib/logger/async_logger.cxx.
type AsyncLogger struct {
	sinks *Tee
	lvl   int32 // Level, accessed only under wMu/through atomic-safe paths

	wMu       sync.Mutex
	writeQ    []queued
	capacity  int
	discarded uint64

	rMu       sync.Mutex
	pending   int
	flushCond *sync.Cond

	threshold time.Duration
	signal    chan struct{}
	stop      chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
}

type queued struct {
	isAtomic bool
	record   Record
	atomic   AtomicRecord
}

// NewAsyncLogger constructs an AsyncLogger writing to sinks, with queue
// capacity and flush threshold matching defaultQueueCapacity/
// defaultFlushThreshold when zero values are passed.
func NewAsyncLogger(sinks *Tee, capacity int, threshold time.Duration) *AsyncLogger {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	if threshold <= 0 {
		threshold = defaultFlushThreshold
	}
	l := &AsyncLogger{
		sinks:     sinks,
		lvl:       int32(Info),
		capacity:  capacity,
		threshold: threshold,
		signal:    make(chan struct{}, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	l.flushCond = sync.NewCond(&l.rMu)
	go l.run()
	return l
}

func (l *AsyncLogger) level() Level        { return Level(atomic.LoadInt32(&l.lvl)) }
func (l *AsyncLogger) component() string   { return "" }
func (l *AsyncLogger) SetLevel(lv Level)   { atomic.StoreInt32(&l.lvl, int32(lv)) }
func (l *AsyncLogger) AddSink(n string, s Sink) { l.sinks.AddSink(n, s) }
func (l *AsyncLogger) RemoveSink(n string)      { l.sinks.RemoveSink(n) }

func (l *AsyncLogger) NewScope() *Scope { return newScope(l) }

// writeRecord enqueues a single record, discarding it if the write queue
// is at capacity. Discards are counted so drainOnce can report the dropped
// volume as a single warning record.
func (l *AsyncLogger) writeRecord(r Record) {
	l.enqueue(queued{record: r}, false)
}

// writeAtomic enqueues an atomic block unconditionally: atomic blocks are
// never discarded, and their arrival always wakes the worker immediately
// rather than waiting for the flush threshold, matching the C++
// implementation's m_wQueueNotEmpty.notify_one() on atomic writes.
func (l *AsyncLogger) writeAtomic(a AtomicRecord) {
	l.enqueue(queued{isAtomic: true, atomic: a}, true)
}

func (l *AsyncLogger) enqueue(q queued, force bool) {
	l.wMu.Lock()
	if !force && len(l.writeQ) >= l.capacity {
		l.discarded++
		l.wMu.Unlock()
		return
	}
	l.writeQ = append(l.writeQ, q)
	l.rMu.Lock()
	l.pending++
	l.rMu.Unlock()
	l.wMu.Unlock()

	if force {
		select {
		case l.signal <- struct{}{}:
		default:
		}
	}
}

func (l *AsyncLogger) run() {
	defer close(l.done)
	ticker := time.NewTicker(l.threshold)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			l.drainOnce()
			return
		case <-ticker.C:
			l.drainOnce()
		case <-l.signal:
			l.drainOnce()
		}
	}
}

// drainOnce swaps the write queue for an empty one under wMu, then
// processes the swapped-out queue without holding wMu so producers are
// never blocked behind slow sinks.
func (l *AsyncLogger) drainOnce() {
	l.wMu.Lock()
	readQ := l.writeQ
	l.writeQ = nil
	dropped := l.discarded
	l.discarded = 0
	l.wMu.Unlock()

	if dropped > 0 {
		l.sinks.Write(Record{
			Level:   Warning,
			Message: "log: queue overflow, records discarded",
		})
	}

	for _, q := range readQ {
		if q.isAtomic {
			l.sinks.WriteAtomic(q.atomic)
		} else {
			l.sinks.Write(q.record)
		}
	}

	l.rMu.Lock()
	l.pending -= len(readQ)
	if l.pending < 0 {
		l.pending = 0
	}
	if l.pending == 0 {
		l.flushCond.Broadcast()
	}
	l.rMu.Unlock()
}

// Flush requests an immediate drain and blocks until the write queue has
// been fully emptied and every sink has flushed, or until timeout elapses.
// Returns false on timeout.
func (l *AsyncLogger) Flush(timeout time.Duration) bool {
	select {
	case l.signal <- struct{}{}:
	default:
	}

	deadline := time.Now().Add(timeout)
	timedOut := false
	stopTimer := make(chan struct{})
	go func() {
		select {
		case <-time.After(time.Until(deadline)):
			l.rMu.Lock()
			timedOut = true
			l.flushCond.Broadcast()
			l.rMu.Unlock()
		case <-stopTimer:
		}
	}()

	l.rMu.Lock()
	for l.pending > 0 && !timedOut {
		l.flushCond.Wait()
	}
	ok := l.pending == 0
	l.rMu.Unlock()
	close(stopTimer)

	if ok {
		l.sinks.Flush()
	}
	return ok
}

// Close stops the background worker after a final drain and closes every
// sink in the tee.
func (l *AsyncLogger) Close() error {
	l.stopOnce.Do(func() { close(l.stop) })
	<-l.done
	return l.sinks.Close()
}
