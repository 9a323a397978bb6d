package pipeline

import (
	"strconv"
	"sync/atomic"
)

// Counters tracks batch progress for heartbeats. The zero value is ready to
// use and a nil *Counters ignores updates.
type Counters struct {
	inFlight atomic.Int64
	done     atomic.Int64
	failed   atomic.Int64
}

func (c *Counters) begin() {
	if c != nil {
		c.inFlight.Add(1)
	}
}

func (c *Counters) finish(err error) {
	if c == nil {
		return
	}
	c.inFlight.Add(-1)
	if err != nil {
		c.failed.Add(1)
	} else {
		c.done.Add(1)
	}
}

// Snapshot returns the snapshots currently being exported and the finished ones.
func (c *Counters) Snapshot() (inFlight, done, failed int64) {
	if c == nil {
		return 0, 0, 0
	}
	return c.inFlight.Load(), c.done.Load(), c.failed.Load()
}

// Status renders the counters as heartbeat extras.
func (c *Counters) Status() map[string]string {
	inFlight, done, failed := c.Snapshot()
	return map[string]string{
		"in_flight": strconv.FormatInt(inFlight, 10),
		"done":      strconv.FormatInt(done, 10),
		"failed":    strconv.FormatInt(failed, 10),
	}
}
