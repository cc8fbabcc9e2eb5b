package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// QueryStats holds statement execution statistics.
type QueryStats struct {
	// TotalExecs is the total number of statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowExecs is the count of statements exceeding the slow threshold.
	SlowExecs atomic.Int64
	// Errors is the count of statement errors.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowExecs:     s.SlowExecs.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowExecs.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of statement statistics.
type StatsSnapshot struct {
	TotalExecs    int64
	TotalDuration time.Duration
	SlowExecs     int64
	Errors        int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.TotalExecs == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalExecs)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalExecs, s.TotalDuration, s.AvgDuration(), s.SlowExecs, s.Errors,
	)
}

// SlowQueryHook is a function called when a slow statement is detected.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// SlowQueryLog returns a hook that logs slow statements at warn level.
func SlowQueryLog(logger *slog.Logger) SlowQueryHook {
	return func(ctx context.Context, query string, args []any, duration time.Duration) {
		logger.WarnContext(ctx, "slow statement detected", "duration", duration, "query", query, "args", args)
	}
}

func (s *QueryStats) record(duration time.Duration, err error, slow bool) {
	s.TotalExecs.Add(1)
	s.TotalDuration.Add(int64(duration))
	if err != nil {
		s.Errors.Add(1)
	}
	if slow {
		s.SlowExecs.Add(1)
	}
}
