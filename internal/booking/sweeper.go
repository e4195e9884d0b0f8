package booking

import (
    "context"
    "log"
    "time"
)

// Sweeper periodically cancels held reservations whose TTL has
// elapsed.  It is the only actor that cancels on timeout; user
// cancels racing the sweep are resolved by the compare-and-swap on
// reservation status, so running several sweepers is safe.
type Sweeper struct {
    coord    *Coordinator
    interval time.Duration
    now      func() time.Time
}

// NewSweeper builds a Sweeper.  now may be nil to use UTC wall time.
func NewSweeper(coord *Coordinator, interval time.Duration, now func() time.Time) *Sweeper {
    if interval <= 0 {
        interval = 30 * time.Second
    }
    if now == nil {
        now = func() time.Time { return time.Now().UTC() }
    }
    return &Sweeper{coord: coord, interval: interval, now: now}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
// Sweep failures are logged and retried on the next tick; the loop
// never stops because of a storage error.
func (s *Sweeper) Run(ctx context.Context) {
    ticker := time.NewTicker(s.interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            released, err := s.coord.ExpireStaleHolds(ctx, s.now())
            if err != nil {
                log.Printf("sweeper: expire pass failed: %v", err)
                continue
            }
            if released > 0 {
                log.Printf("sweeper: released %d expired holds", released)
            }
        }
    }
}
