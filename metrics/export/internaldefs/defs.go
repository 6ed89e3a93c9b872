package internaldefs

import (
	storefront "github.com/shoply/storefront"
)

// CounterDef defines a public type used by the storefront client.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   storefront.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by the storefront client.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   storefront.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the storefront client.
var CounterDefs = []CounterDef{
	{ID: storefront.MetricLoginSuccess, Name: "storefront_login_success_total", Help: "Successful login attempts."},
	{ID: storefront.MetricLoginFailure, Name: "storefront_login_failure_total", Help: "Failed login attempts."},
	{ID: storefront.MetricSignupSuccess, Name: "storefront_signup_success_total", Help: "Successful signup attempts."},
	{ID: storefront.MetricSignupFailure, Name: "storefront_signup_failure_total", Help: "Failed signup attempts."},
	{ID: storefront.MetricLogout, Name: "storefront_logout_total", Help: "Logout operations."},
	{ID: storefront.MetricSessionExpired, Name: "storefront_session_expired_total", Help: "Forced session expirations."},
	{ID: storefront.MetricLivenessProbe, Name: "storefront_liveness_probe_total", Help: "Session liveness probes issued."},
	{ID: storefront.MetricValidationRejected, Name: "storefront_validation_rejected_total", Help: "Inputs rejected by client-side validation."},
	{ID: storefront.MetricRequestFailure, Name: "storefront_request_failure_total", Help: "Failed backend requests after retries."},
	{ID: storefront.MetricSearchCacheHit, Name: "storefront_search_cache_hit_total", Help: "Search queries served from the result cache."},
	{ID: storefront.MetricSearchCacheMiss, Name: "storefront_search_cache_miss_total", Help: "Search queries that reached the backend."},
	{ID: storefront.MetricDeleteDeclined, Name: "storefront_delete_declined_total", Help: "Deletes abandoned at the confirmation prompt."},
	{ID: storefront.MetricGateDenied, Name: "storefront_gate_denied_total", Help: "Requests denied by the access gate."},
}

// HistogramDefs is an exported constant or variable used by the storefront client.
var HistogramDefs = []HistogramDef{
	{ID: storefront.MetricRequestLatency, Name: "storefront_request_latency_seconds", Help: "Backend request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the storefront client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the storefront client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
