// Package ntpclock implements types.Clock against an NTP server, for
// callers who want header Time defaults disciplined against network
// time rather than the local wall clock.
package ntpclock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"

	"github.com/tonlayer/abicodec/pkg/types"
)

// NetworkClock queries server on every NowMillis call by default, or
// caches the last-observed offset for RefreshInterval when set.
type NetworkClock struct {
	Server          string
	RefreshInterval time.Duration

	mu        sync.Mutex
	offset    time.Duration
	fetchedAt time.Time
}

var _ types.Clock = (*NetworkClock)(nil)

func New(server string) *NetworkClock {
	return &NetworkClock{Server: server}
}

func (c *NetworkClock) NowMillis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.RefreshInterval <= 0 || time.Since(c.fetchedAt) > c.RefreshInterval {
		if resp, err := ntp.Query(c.Server); err == nil {
			c.offset = resp.ClockOffset
			c.fetchedAt = time.Now()
		}
	}
	return uint64(time.Now().Add(c.offset).UnixMilli())
}
