package http

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady runs every registered check with a shared deadline.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			s.logger.WarnContext(ctx, "Readiness check failed", "check", name, "error", err)
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not ready"
	}
	writeJSON(w, status, map[string]any{"status": state, "checks": results})
}

// handleMetrics writes counters in the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder

	gauge := func(name, help string, v any) {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s gauge\n%s %v\n", name, help, name, name, v)
	}
	counter := func(name, help string, v any) {
		fmt.Fprintf(&b, "# HELP %s %s\n# TYPE %s counter\n%s %v\n", name, help, name, name, v)
	}

	gauge("showroom_uptime_seconds", "Seconds since the server started.", int64(time.Since(s.started).Seconds()))

	tm := s.tracer.GetMetrics()
	counter("showroom_http_requests_total", "HTTP requests served.", tm.TotalRequests)
	counter("showroom_http_server_errors_total", "HTTP responses with a 5xx status.", tm.ServerErrors)
	gauge("showroom_http_response_time_avg_ms", "Mean response time in milliseconds.", tm.AverageResponseTime.Milliseconds())

	rm := s.limiter.GetMetrics()
	counter("showroom_rate_limited_total", "Requests rejected by the rate limiter.", rm.Limited)
	gauge("showroom_rate_limit_clients", "Clients tracked by the rate limiter.", rm.ClientCount)

	dm := s.detector.GetMetrics()
	counter("showroom_suspicious_requests_total", "Requests matching a probe pattern.", dm.SuspiciousRequests)
	counter("showroom_blocked_requests_total", "Requests blocked by the detector.", dm.Blocked)

	if s.cacheStats != nil {
		cs := s.cacheStats()
		gauge("showroom_inventory_cache_entries", "Entries in the inventory search cache.", cs.Size)
		counter("showroom_inventory_cache_hits_total", "Inventory search cache hits.", cs.Hits)
		counter("showroom_inventory_cache_misses_total", "Inventory search cache misses.", cs.Misses)
	}

	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "showroom_dependency_configured{name=%q} 1\n", name)
	}

	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}
