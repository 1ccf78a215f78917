// conduit - service mesh data-plane proxy
// SPDX-License-Identifier: Apache-2.0

package telemetry

// http2Reasons maps HTTP/2 wire error codes to their reason name, indexed
// by code. Codes at or beyond the length of the known set clamp to the
// final UNKNOWN entry.
var http2Reasons = [...]string{
	"NO_ERROR",
	"PROTOCOL_ERROR",
	"INTERNAL_ERROR",
	"FLOW_CONTROL_ERROR",
	"SETTINGS_TIMEOUT",
	"STREAM_CLOSED",
	"FRAME_SIZE_ERROR",
	"REFUSED_STREAM",
	"CANCEL",
	"COMPRESSION_ERROR",
	"CONNECT_ERROR",
	"ENHANCE_YOUR_CALM",
	"INADEQUATE_SECURITY",
	"HTTP_1_1_REQUIRED",
	"UNKNOWN",
}

func http2Reason(code uint32) string {
	if int(code) < len(http2Reasons)-1 {
		return http2Reasons[code]
	}
	return http2Reasons[len(http2Reasons)-1]
}
