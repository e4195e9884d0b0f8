// Package audit provides the append-only activity trail.  Writes are
// fire-and-forget relative to the primary operation: a failed or
// slow audit insert never rolls back or delays a reservation, it is
// reported on the process log instead.
package audit

import (
    "context"
    "log"
    "sync"
    "time"

    "github.com/iliyamo/airline-seat-reservation/internal/model"
)

// Sink persists audit entries.  The activity repository implements
// it against the activity_logs table.
type Sink interface {
    Append(ctx context.Context, e model.ActivityLogEntry) error
}

// Recorder buffers entries on a channel and writes them from a
// single background goroutine.  When the buffer is full the entry is
// dropped and counted; dropping is preferred over blocking the
// request path.
type Recorder struct {
    sink Sink
    ch   chan model.ActivityLogEntry
    wg   sync.WaitGroup

    mu      sync.Mutex
    dropped uint64
}

// NewRecorder starts a Recorder with the given buffer size.
func NewRecorder(sink Sink, buffer int) *Recorder {
    if buffer <= 0 {
        buffer = 256
    }
    r := &Recorder{
        sink: sink,
        ch:   make(chan model.ActivityLogEntry, buffer),
    }
    r.wg.Add(1)
    go r.drain()
    return r
}

func (r *Recorder) drain() {
    defer r.wg.Done()
    for e := range r.ch {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        if err := r.sink.Append(ctx, e); err != nil {
            log.Printf("audit: append failed action=%s ref=%s: %v", e.Action, e.EntityRef, err)
        }
        cancel()
    }
}

// Record enqueues an entry without blocking.  Safe to call on a nil
// Recorder, which makes the trail optional for callers.
func (r *Recorder) Record(e model.ActivityLogEntry) {
    if r == nil {
        return
    }
    if e.CreatedAt.IsZero() {
        e.CreatedAt = time.Now().UTC()
    }
    select {
    case r.ch <- e:
    default:
        r.mu.Lock()
        r.dropped++
        n := r.dropped
        r.mu.Unlock()
        log.Printf("audit: buffer full, dropped entry action=%s (total dropped %d)", e.Action, n)
    }
}

// Dropped returns how many entries were discarded due to a full
// buffer since the recorder started.
func (r *Recorder) Dropped() uint64 {
    if r == nil {
        return 0
    }
    r.mu.Lock()
    defer r.mu.Unlock()
    return r.dropped
}

// Close flushes buffered entries and stops the writer.  Call during
// shutdown after the HTTP server has drained.
func (r *Recorder) Close() {
    if r == nil {
        return
    }
    close(r.ch)
    r.wg.Wait()
}
