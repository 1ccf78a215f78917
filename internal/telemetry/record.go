// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"sync"
	"time"
)

// shared is the mutex-guarded Root held in common by Record and Serve. Every
// tree mutation and the full encode pass run under this single lock; record
// acquires it synchronously and does a bounded amount of work, and a scrape
// holds it for the duration of one encode pass.
type shared struct {
	mu   sync.Mutex
	root *Root
}

// Record is the write half of the telemetry core: event producers call its
// methods to account for transport and HTTP activity. Every method is
// infallible from the caller's perspective; overflow and unknown-code
// conditions are handled internally (saturation, clamping) rather than
// returned as errors.
type Record struct {
	s *shared
}

// Serve is the read half of the telemetry core: see serve.go.
type Serve struct {
	s    *shared
	path string
}

// Path returns the scrape path Serve was constructed with. The HTTP layer
// mounts Serve at this path rather than hardcoding it, so the router and
// the handler can never disagree about where scrapes are served.
func (s Serve) Path() string {
	return s.path
}

// New constructs a fresh Root and returns independent Record/Serve handles
// to it. start is read once and stored as the process_start_time_seconds
// gauge. metricsPath is the path Serve will respond to; every other path
// gets a 404.
func New(start time.Time, metricsPath string) (Record, Serve) {
	s := &shared{root: newRoot(start)}
	return Record{s: s}, Serve{s: s, path: metricsPath}
}

// TransportOpen accounts for a newly opened connection.
func (rec Record) TransportOpen(ctx TransportCtx) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	tt := rec.transportTree(ctx)
	tt.openTotal.Incr()
	tt.openActive.Incr()
}

// TransportClose accounts for a connection closing.
func (rec Record) TransportClose(ctx TransportCtx, c TransportClose) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	tt := rec.transportTree(ctx)
	tt.openActive.Decr()
	tt.rxBytesTotal.Add(c.RxBytes)
	tt.txBytesTotal.Add(c.TxBytes)

	end := tt.endMetrics(c.Clean)
	end.closeTotal.Incr()
	end.lifetime.Observe(c.Duration)
}

func (rec Record) transportTree(ctx TransportCtx) *TransportTree {
	pt := rec.s.root.proxyTree(ctx.Direction)
	labels := ctx.DstLabels
	if ctx.Role != RoleClient {
		labels = nil
	}
	dt := pt.dstTree(labels)
	return dt.transportTree(ctx.Role)
}

// StreamRequestOpen accounts for a newly opened HTTP stream.
func (rec Record) StreamRequestOpen(req RequestCtx) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	rt := rec.requestTree(req)
	rt.requestTotal.Incr()
}

// StreamRequestEnd is a no-op: stream completion is accounted for by the
// corresponding response event. It exists so the dispatcher's event surface
// matches the full event contract.
func (rec Record) StreamRequestEnd(RequestCtx) {}

// StreamRequestFail accounts for a stream that failed before any response
// was opened.
func (rec Record) StreamRequestFail(req RequestCtx, fail RequestFail) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	reason := http2Reason(fail.Error)
	rt := rec.requestTree(req)
	respKey := httpResponseKey{isError: true, reason: reason}
	endKey := httpEndKey{isError: true, reason: reason}
	recordEnd(rt, respKey, endKey, fail.SinceRequestOpen)
}

// StreamResponseOpen is a no-op: the request is already accounted for at
// stream open.
func (rec Record) StreamResponseOpen(ResponseCtx) {}

// StreamResponseEnd accounts for a stream that completed after its response
// opened.
func (rec Record) StreamResponseEnd(res ResponseCtx, end ResponseEnd) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	rt := rec.requestTreeForResponse(res)
	respKey := httpResponseKey{status: res.StatusCode}

	var endKey httpEndKey
	if end.GRPCStatus != nil {
		endKey = httpEndKey{isGRPC: true, grpcStatus: *end.GRPCStatus}
	}
	recordEnd(rt, respKey, endKey, end.SinceRequestOpen)
}

// StreamResponseFail accounts for a stream that failed after its response
// opened but before it completed. Like StreamRequestFail, this never
// reached a terminal status, so it classifies under Error{reason} rather
// than Response{status} — see the open-question resolution in SPEC_FULL.md.
func (rec Record) StreamResponseFail(res ResponseCtx, fail ResponseFail) {
	rec.s.mu.Lock()
	defer rec.s.mu.Unlock()

	reason := http2Reason(fail.Error)
	rt := rec.requestTreeForResponse(res)
	respKey := httpResponseKey{isError: true, reason: reason}
	endKey := httpEndKey{isError: true, reason: reason}
	recordEnd(rt, respKey, endKey, fail.SinceRequestOpen)
}

func (rec Record) requestTree(req RequestCtx) *HttpRequestTree {
	pt := rec.s.root.proxyTree(req.Direction)
	dt := pt.dstTree(req.DstLabels)
	return dt.requestTree(req.Authority)
}

func (rec Record) requestTreeForResponse(res ResponseCtx) *HttpRequestTree {
	pt := rec.s.root.proxyTree(res.Direction)
	dt := pt.dstTree(res.DstLabels)
	return dt.requestTree(res.Authority)
}

func recordEnd(rt *HttpRequestTree, respKey httpResponseKey, endKey httpEndKey, since time.Duration) {
	respTree := rt.responseTree(respKey)
	m := respTree.endMetrics(endKey)
	m.total.Incr()
	m.latency.Observe(since)
}
