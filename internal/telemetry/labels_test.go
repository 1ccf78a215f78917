// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func render(t *testing.T, l FmtLabels) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, l.WriteLabels(&buf))
	return buf.String()
}

func TestAppend_EmptyIdentities(t *testing.T) {
	a := KV("a", "1")

	require.Equal(t, render(t, a), render(t, Append(a, Empty)))
	require.Equal(t, render(t, a), render(t, Append(Empty, a)))
	require.True(t, Append(Empty, Empty).IsEmpty())
}

func TestAppend_InsertsExactlyOneComma(t *testing.T) {
	a := KV("a", "1")
	b := KV("b", "2")

	got := render(t, Append(a, b))
	require.Equal(t, `a="1",b="2"`, got)
	require.False(t, strings.HasPrefix(got, ","))
	require.False(t, strings.HasSuffix(got, ","))
	require.NotContains(t, got, ",,")
}

func TestAppend_Associative(t *testing.T) {
	a := KV("a", "1")
	b := KV("b", "2")
	c := KV("c", "3")

	left := render(t, Append(Append(a, b), c))
	right := render(t, Append(a, Append(b, c)))
	require.Equal(t, left, right)
}

func TestKV_EscapesValues(t *testing.T) {
	got := render(t, KV("k", "back\\slash \"quote\" new\nline"))
	require.Equal(t, `k="back\\slash \"quote\" new\nline"`, got)
}

func TestDstLabels_RoundTrip(t *testing.T) {
	pairs := map[string]string{"app": "foo", "ns": "bar"}
	dl := NewDstLabels(pairs)

	got := render(t, dl)
	parsed := parseLabelBody(t, got)

	require.Equal(t, map[string]string{"dst_app": "foo", "dst_ns": "bar"}, parsed)
}

func TestDstLabels_EmptyIsEmpty(t *testing.T) {
	dl := NewDstLabels(nil)
	require.True(t, dl.IsEmpty())

	var nilDl *DstLabels
	require.True(t, nilDl.IsEmpty())
	require.Equal(t, "", render(t, nilDl))
}

// parseLabelBody is a tiny Prometheus label-body tokenizer, enough to
// round-trip what DstLabels produces: comma-separated key="value" pairs
// with backslash/quote escaping.
func parseLabelBody(t *testing.T, body string) map[string]string {
	t.Helper()
	out := map[string]string{}
	if body == "" {
		return out
	}
	for _, part := range strings.Split(body, ",") {
		eq := strings.IndexByte(part, '=')
		require.Greater(t, eq, -1, "malformed label pair: %q", part)
		key := part[:eq]
		val := strings.TrimSuffix(strings.TrimPrefix(part[eq+1:], `"`), `"`)
		val = strings.ReplaceAll(val, `\"`, `"`)
		val = strings.ReplaceAll(val, `\\`, `\`)
		out[key] = val
	}
	return out
}
