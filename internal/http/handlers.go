package http

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"time"
)

// handleHealth performs a basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.metrics.startedAt).String(),
	})
}

// handleReady verifies the durable slot is reachable
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]any)
	status := "ready"
	httpStatus := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		checks["store_slot"] = fmt.Sprintf("failed: %v", err)
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["store_slot"] = "ok"
	}

	checks["itinerary_cache"] = map[string]any{
		"entries": s.itineraryCache.Size(),
		"status":  "ok",
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}

// handleMetrics exposes application counters in plain text
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	trips := len(s.store.ListTrips(r.Context()))

	fmt.Fprintf(w, "# Application metrics\n")
	fmt.Fprintf(w, "uptime_seconds %.0f\n", time.Since(s.metrics.startedAt).Seconds())
	fmt.Fprintf(w, "trips_total %d\n", trips)
	fmt.Fprintf(w, "trips_created_total %d\n", atomic.LoadInt64(&s.metrics.tripsCreated))
	fmt.Fprintf(w, "members_added_total %d\n", atomic.LoadInt64(&s.metrics.membersAdded))
	fmt.Fprintf(w, "expenses_added_total %d\n", atomic.LoadInt64(&s.metrics.expensesAdded))
	fmt.Fprintf(w, "itinerary_cache_hits_total %d\n", atomic.LoadInt64(&s.metrics.itineraryHits))
	fmt.Fprintf(w, "itinerary_cache_entries %d\n", s.itineraryCache.Size())
	fmt.Fprintf(w, "advisory_errors_total %d\n", atomic.LoadInt64(&s.metrics.advisoryErrors))
}
