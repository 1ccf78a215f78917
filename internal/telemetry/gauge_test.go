// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGauge_IncrDecrSet(t *testing.T) {
	var g Gauge
	g.Incr()
	g.Incr()
	g.Decr()
	require.Equal(t, uint64(1), g.Value())

	g.Set(10)
	require.Equal(t, uint64(10), g.Value())
}

func TestGauge_SaturatesAtZero(t *testing.T) {
	var g Gauge
	g.Decr()
	require.Equal(t, uint64(0), g.Value())
}

func TestGauge_SaturatesAtMax(t *testing.T) {
	var g Gauge
	g.Set(math.MaxUint64)
	g.Incr()
	require.Equal(t, uint64(math.MaxUint64), g.Value())
}
