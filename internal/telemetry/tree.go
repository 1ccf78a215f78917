// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

import "time"

// Direction is the proxy-relative direction of a connection or stream.
type Direction int

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "outbound"
	}
	return "inbound"
}

// TransportRole distinguishes a server-accepted connection from a
// client-dialed one.
type TransportRole int

const (
	// RoleServer is an accepted connection; peer="src".
	RoleServer TransportRole = iota
	// RoleClient is a dialed connection; peer="dst".
	RoleClient
)

// Root is the top of the dimension tree: two ProxyTrees (inbound, outbound)
// plus the process-start gauge. It is always accessed through the shared
// mutex held by Record/Serve; nothing in this file locks anything itself.
type Root struct {
	inbound  ProxyTree
	outbound ProxyTree

	processStartTime Gauge
}

func newRoot(start time.Time) *Root {
	r := &Root{}
	r.processStartTime.Set(uint64(start.Unix()))
	return r
}

func (r *Root) proxyTree(d Direction) *ProxyTree {
	if d == Outbound {
		return &r.outbound
	}
	return &r.inbound
}

// dstKey is the map key for an optional DstLabels snapshot. present
// distinguishes "no destination labels yet" from the labels whose
// formatted string happens to be empty.
type dstKey struct {
	present   bool
	formatted string
}

func dstKeyFor(labels *DstLabels) dstKey {
	if labels == nil {
		return dstKey{}
	}
	return dstKey{present: true, formatted: labels.formatted}
}

// ProxyTree maps a destination-label snapshot (or its absence) to a
// DstTree, for one proxy direction.
type ProxyTree struct {
	byDestination *orderedMap[dstKey, *DstTree]
}

func (pt *ProxyTree) dstTree(labels *DstLabels) *DstTree {
	if pt.byDestination == nil {
		pt.byDestination = newOrderedMap[dstKey, *DstTree]()
	}
	key := dstKeyFor(labels)
	return pt.byDestination.getOrInsert(key, func() *DstTree {
		return &DstTree{
			labels:      labels,
			byAuthority: newOrderedMap[string, *HttpRequestTree](),
		}
	})
}

// DstTree holds the transport and HTTP activity observed for one
// destination-label snapshot (or for connections that never resolved one).
type DstTree struct {
	labels *DstLabels

	src *TransportTree // peer="src", accepted connections
	dst *TransportTree // peer="dst", dialed connections

	byAuthority *orderedMap[string, *HttpRequestTree]
}

func (dt *DstTree) transportTree(role TransportRole) *TransportTree {
	if role == RoleClient {
		if dt.dst == nil {
			dt.dst = &TransportTree{}
		}
		return dt.dst
	}
	if dt.src == nil {
		dt.src = &TransportTree{}
	}
	return dt.src
}

func (dt *DstTree) requestTree(authority string) *HttpRequestTree {
	return dt.byAuthority.getOrInsert(authority, func() *HttpRequestTree {
		return &HttpRequestTree{byResponse: newOrderedMap[httpResponseKey, *HttpResponseTree]()}
	})
}

// TransportTree is the set of metrics kept for one (direction, destination,
// peer) transport bucket.
type TransportTree struct {
	openTotal    Counter
	openActive   Gauge
	rxBytesTotal Counter
	txBytesTotal Counter

	success TransportEndMetrics
	failure TransportEndMetrics
}

func (tt *TransportTree) endMetrics(clean bool) *TransportEndMetrics {
	if clean {
		return &tt.success
	}
	return &tt.failure
}

// TransportEndMetrics holds the metrics recorded when a transport closes
// with a given classification (success or failure).
type TransportEndMetrics struct {
	closeTotal Counter
	lifetime   Histogram
}

// HttpRequestTree is the set of metrics kept for one (direction,
// destination, authority) HTTP bucket.
type HttpRequestTree struct {
	requestTotal Counter
	byResponse   *orderedMap[httpResponseKey, *HttpResponseTree]
}

// httpResponseKey is the HttpResponseClass discriminant: either a known
// status code, or a failure reason for streams that never got one.
type httpResponseKey struct {
	isError bool
	status  uint16
	reason  string
}

func (rt *HttpRequestTree) responseTree(key httpResponseKey) *HttpResponseTree {
	return rt.byResponse.getOrInsert(key, func() *HttpResponseTree {
		return &HttpResponseTree{byEnd: newOrderedMap[httpEndKey, *HttpEndMetrics]()}
	})
}

// HttpResponseTree maps how a stream ended (cleanly, as gRPC, or in error)
// to its metrics.
type HttpResponseTree struct {
	byEnd *orderedMap[httpEndKey, *HttpEndMetrics]
}

// httpEndKey is the HttpEndClass discriminant.
type httpEndKey struct {
	isError    bool
	isGRPC     bool
	grpcStatus uint32
	reason     string
}

func (rt *HttpResponseTree) endMetrics(key httpEndKey) *HttpEndMetrics {
	return rt.byEnd.getOrInsert(key, func() *HttpEndMetrics { return &HttpEndMetrics{} })
}

// HttpEndMetrics holds the total count and latency histogram for one
// (response class, end class) combination.
type HttpEndMetrics struct {
	total   Counter
	latency Histogram
}
