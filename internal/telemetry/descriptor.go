// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

// Kind is a Prometheus metric type.
type Kind int

const (
	KindCounter Kind = iota
	KindGauge
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	default:
		return "untyped"
	}
}

// Descriptor is a static (name, help, kind) triple. The encoder emits one
// HELP line and one TYPE line per descriptor, exactly once per scrape,
// before that family's sample lines.
type Descriptor struct {
	Name string
	Help string
	Kind Kind
}

// The full static metric set, in the order they are emitted.
var (
	DescProcessStartTimeSeconds = Descriptor{
		Name: "process_start_time_seconds",
		Help: "Number of seconds since the Unix epoch at the time the process started.",
		Kind: KindGauge,
	}
	DescRequestTotal = Descriptor{
		Name: "request_total",
		Help: "Total number of HTTP requests the proxy has routed.",
		Kind: KindCounter,
	}
	DescResponseTotal = Descriptor{
		Name: "response_total",
		Help: "Total number of HTTP responses the proxy has served.",
		Kind: KindCounter,
	}
	DescResponseLatencyMS = Descriptor{
		Name: "response_latency_ms",
		Help: "HTTP request latencies, in milliseconds.",
		Kind: KindHistogram,
	}
	DescTCPOpenTotal = Descriptor{
		Name: "tcp_open_total",
		Help: "Total number of opened connections.",
		Kind: KindCounter,
	}
	DescTCPCloseTotal = Descriptor{
		Name: "tcp_close_total",
		Help: "Total number of closed connections.",
		Kind: KindCounter,
	}
	DescTCPOpenConnections = Descriptor{
		Name: "tcp_open_connections",
		Help: "Number of connections currently open.",
		Kind: KindGauge,
	}
	DescTCPConnectionDurationMS = Descriptor{
		Name: "tcp_connection_duration_ms",
		Help: "Connection lifetimes, in milliseconds.",
		Kind: KindHistogram,
	}
	DescTCPReadBytesTotal = Descriptor{
		Name: "tcp_read_bytes_total",
		Help: "Total number of bytes read from peers.",
		Kind: KindCounter,
	}
	DescTCPWriteBytesTotal = Descriptor{
		Name: "tcp_write_bytes_total",
		Help: "Total number of bytes written to peers.",
		Kind: KindCounter,
	}
)
