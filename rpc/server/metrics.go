package server

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/skaiser/dgate/rpc/common"
)

// Connection and cache gauges/counters. Request counters are created lazily
// per target label in observeRequest.
var (
	connectionsActive = metrics.NewCounter(`dgate_connections_active`)
	connectionsTotal  = metrics.NewCounter(`dgate_connections_total`)
	idleTimeoutsTotal = metrics.NewCounter(`dgate_connection_idle_timeouts_total`)
	cacheHitsTotal    = metrics.NewCounter(`dgate_record_cache_hits_total`)
	cacheMissesTotal  = metrics.NewCounter(`dgate_record_cache_misses_total`)
)

// observeRequest records one dispatched request
func observeRequest(target common.ProviderTarget, d time.Duration, failed bool) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`dgate_requests_total{target=%q}`, target.String())).Inc()
	if failed {
		metrics.GetOrCreateCounter(fmt.Sprintf(`dgate_request_errors_total{target=%q}`, target.String())).Inc()
	}
	metrics.GetOrCreateSummary(fmt.Sprintf(`dgate_dispatch_duration_seconds{target=%q}`, target.String())).Update(d.Seconds())
}
