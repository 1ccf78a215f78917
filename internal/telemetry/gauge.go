// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"math"

	"github.com/sfroment/conduit/internal/logging"
)

// Gauge is a 64-bit unsigned integer that can move in both directions.
// Incr/Decr saturate at math.MaxUint64 and 0 respectively rather than
// wrapping.
type Gauge struct {
	value uint64
}

// Incr adds 1, saturating at math.MaxUint64.
func (g *Gauge) Incr() {
	if g.value == math.MaxUint64 {
		logging.Warn().Msg("gauge overflow, saturating")
		return
	}
	g.value++
}

// Decr subtracts 1, saturating at 0.
func (g *Gauge) Decr() {
	if g.value == 0 {
		logging.Warn().Msg("gauge underflow, saturating")
		return
	}
	g.value--
}

// Set assigns the gauge value directly.
func (g *Gauge) Set(n uint64) {
	g.value = n
}

// Value returns the current gauge value.
func (g *Gauge) Value() uint64 {
	return g.value
}
