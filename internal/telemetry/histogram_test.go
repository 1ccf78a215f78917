// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHistogram_ObserveAccumulatesSumAndCount(t *testing.T) {
	var h Histogram
	h.Observe(5 * time.Millisecond)
	h.Observe(42 * time.Millisecond)

	require.Equal(t, uint64(2), h.Count())
	require.Equal(t, uint64(47), h.Sum())
}

func TestHistogram_BucketsAreNonDecreasingAndLastEqualsCount(t *testing.T) {
	var h Histogram
	samples := []time.Duration{
		500 * time.Microsecond,
		3 * time.Millisecond,
		999 * time.Millisecond,
		10 * time.Second,
		10 * time.Minute,
	}
	for _, d := range samples {
		h.Observe(d)
	}

	var cumulative, prev uint64
	for _, n := range h.buckets {
		cumulative += n
		require.GreaterOrEqual(t, cumulative, prev)
		prev = cumulative
	}
	require.Equal(t, h.Count(), cumulative)

	var buf bytes.Buffer
	writeHistogram(&buf, "x", Empty, &h)
	require.Contains(t, buf.String(), `x_bucket{le="+Inf"} `+strconv.FormatUint(h.Count(), 10))
	require.Contains(t, buf.String(), "x_count "+strconv.FormatUint(h.Count(), 10))
}
