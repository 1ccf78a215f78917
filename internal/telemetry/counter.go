// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"math"

	"github.com/sfroment/conduit/internal/logging"
)

// Counter is a monotonic 64-bit unsigned integer. Addition saturates at
// math.MaxUint64 rather than wrapping.
type Counter struct {
	value uint64
}

// Incr adds 1 to the counter.
func (c *Counter) Incr() {
	c.Add(1)
}

// Add adds n to the counter, saturating at math.MaxUint64 on overflow.
func (c *Counter) Add(n uint64) {
	if n == 0 {
		return
	}
	if c.value > math.MaxUint64-n {
		logging.Warn().
			Uint64("value", c.value).
			Uint64("delta", n).
			Msg("counter overflow, saturating")
		c.value = math.MaxUint64
		return
	}
	c.value += n
}

// Value returns the current count.
func (c *Counter) Value() uint64 {
	return c.value
}
