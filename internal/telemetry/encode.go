// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// encoder walks the tree exactly once, collecting each metric family's
// sample lines into its own buffer. Encode then emits every family's
// HELP/TYPE prelude immediately followed by its buffered samples, in the
// fixed declaration order of the static metric set — so each family's
// HELP/TYPE appears exactly once, immediately before its own contiguous
// block of series, which is what a Prometheus text-format parser requires.
type encoder struct {
	processStart          bytes.Buffer
	requestTotal          bytes.Buffer
	responseTotal         bytes.Buffer
	responseLatency       bytes.Buffer
	tcpOpenTotal          bytes.Buffer
	tcpCloseTotal         bytes.Buffer
	tcpOpenConnections    bytes.Buffer
	tcpConnectionDuration bytes.Buffer
	tcpReadBytes          bytes.Buffer
	tcpWriteBytes         bytes.Buffer
}

// Encode renders root as Prometheus text format into w.
func Encode(w io.Writer, root *Root) error {
	var e encoder
	e.encodeRoot(root)

	sections := [...]struct {
		d   Descriptor
		buf *bytes.Buffer
	}{
		{DescProcessStartTimeSeconds, &e.processStart},
		{DescRequestTotal, &e.requestTotal},
		{DescResponseTotal, &e.responseTotal},
		{DescResponseLatencyMS, &e.responseLatency},
		{DescTCPOpenTotal, &e.tcpOpenTotal},
		{DescTCPCloseTotal, &e.tcpCloseTotal},
		{DescTCPOpenConnections, &e.tcpOpenConnections},
		{DescTCPConnectionDurationMS, &e.tcpConnectionDuration},
		{DescTCPReadBytesTotal, &e.tcpReadBytes},
		{DescTCPWriteBytesTotal, &e.tcpWriteBytes},
	}

	for _, s := range sections {
		if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", s.d.Name, s.d.Help, s.d.Name, s.d.Kind); err != nil {
			return err
		}
		if _, err := w.Write(s.buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeRoot(root *Root) {
	writeSample(&e.processStart, DescProcessStartTimeSeconds.Name, Empty, root.processStartTime.Value())
	e.encodeProxyTree(&root.inbound, Inbound.String())
	e.encodeProxyTree(&root.outbound, Outbound.String())
}

func (e *encoder) encodeProxyTree(pt *ProxyTree, direction string) {
	if pt.byDestination == nil {
		return
	}
	dirLabel := KV("direction", direction)

	pt.byDestination.each(func(_ dstKey, dt *DstTree) {
		labels := FmtLabels(dirLabel)
		if !dt.labels.IsEmpty() {
			labels = Append(dirLabel, dt.labels)
		}

		if dt.src != nil {
			e.encodeTransportTree(dt.src, Append(labels, KV("peer", "src")))
		}
		if dt.dst != nil {
			e.encodeTransportTree(dt.dst, Append(labels, KV("peer", "dst")))
		}

		dt.byAuthority.each(func(authority string, rt *HttpRequestTree) {
			e.encodeHttpRequestTree(rt, Append(labels, KV("authority", authority)))
		})
	})
}

func (e *encoder) encodeTransportTree(t *TransportTree, labels FmtLabels) {
	writeSample(&e.tcpOpenTotal, DescTCPOpenTotal.Name, labels, t.openTotal.Value())
	writeSample(&e.tcpOpenConnections, DescTCPOpenConnections.Name, labels, t.openActive.Value())
	writeSample(&e.tcpReadBytes, DescTCPReadBytesTotal.Name, labels, t.rxBytesTotal.Value())
	writeSample(&e.tcpWriteBytes, DescTCPWriteBytesTotal.Name, labels, t.txBytesTotal.Value())

	e.encodeTransportEnd(&t.success, Append(labels, KV("classification", "success")))
	e.encodeTransportEnd(&t.failure, Append(labels, KV("classification", "failure")))
}

func (e *encoder) encodeTransportEnd(m *TransportEndMetrics, labels FmtLabels) {
	writeSample(&e.tcpCloseTotal, DescTCPCloseTotal.Name, labels, m.closeTotal.Value())
	writeHistogram(&e.tcpConnectionDuration, DescTCPConnectionDurationMS.Name, labels, &m.lifetime)
}

func (e *encoder) encodeHttpRequestTree(t *HttpRequestTree, labels FmtLabels) {
	writeSample(&e.requestTotal, DescRequestTotal.Name, labels, t.requestTotal.Value())

	t.byResponse.each(func(outer httpResponseKey, rt *HttpResponseTree) {
		rt.byEnd.each(func(inner httpEndKey, m *HttpEndMetrics) {
			classLabels, success := classify(outer, inner)
			cls := "failure"
			if success {
				cls = "success"
			}
			full := Append(labels, Append(KV("classification", cls), classLabels))

			writeSample(&e.responseTotal, DescResponseTotal.Name, full, m.total.Value())
			writeHistogram(&e.responseLatency, DescResponseLatencyMS.Name, full, &m.latency)
		})
	})
}

// classify derives the classification labels and success/failure verdict
// for one (response class, end class) combination, per §4.6.
func classify(outer httpResponseKey, inner httpEndKey) (FmtLabels, bool) {
	if outer.isError {
		return KV("error", outer.reason), false
	}

	status := KV("status_code", strconv.Itoa(int(outer.status)))
	if inner.isGRPC {
		grpcLabel := KV("grpc_status_code", strconv.FormatUint(uint64(inner.grpcStatus), 10))
		return Append(status, grpcLabel), inner.grpcStatus == 0
	}
	return status, outer.status < 500
}

func writeSample(buf *bytes.Buffer, name string, labels FmtLabels, value uint64) {
	buf.WriteString(name)
	writeLabelBody(buf, labels)
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatUint(value, 10))
	buf.WriteByte('\n')
}

func writeLabelBody(buf *bytes.Buffer, labels FmtLabels) {
	if labels.IsEmpty() {
		return
	}
	buf.WriteByte('{')
	_ = labels.WriteLabels(buf)
	buf.WriteByte('}')
}

func writeHistogram(buf *bytes.Buffer, name string, labels FmtLabels, h *Histogram) {
	var cumulative uint64
	for i, b := range bucketBoundsMS {
		cumulative += h.buckets[i]
		writeSample(buf, name+"_bucket", Append(labels, KV("le", strconv.FormatUint(b, 10))), cumulative)
	}
	cumulative += h.buckets[len(bucketBoundsMS)]
	writeSample(buf, name+"_bucket", Append(labels, KV("le", "+Inf")), cumulative)

	writeSample(buf, name+"_sum", labels, h.sum)
	writeSample(buf, name+"_count", labels, h.count)
}
