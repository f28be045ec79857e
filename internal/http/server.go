// Package http exposes the trip store and the advisory client over a JSON
// API. The package plays the presentation-layer role: it reads store state,
// forwards user actions as store mutations, and re-derives trip metrics on
// every read instead of caching them.
package http

import (
	"context"
	"net/http"
	"time"

	"tripledger/internal/advisor"
	"tripledger/internal/cache"
	"tripledger/internal/log"
	"tripledger/internal/store"
)

// Advisor is the external generative-AI collaborator. Itinerary failures are
// rendered as fallback text; prediction failures surface to the caller.
type Advisor interface {
	GenerateItinerary(ctx context.Context, destination string, durationInDays int, budgetPerPerson float64) (string, error)
	PredictBudget(ctx context.Context, destination string, durationInDays, numberOfMembers int) (advisor.BudgetPrediction, error)
}

type appMetrics struct {
	startedAt      time.Time
	tripsCreated   int64
	membersAdded   int64
	expensesAdded  int64
	itineraryHits  int64
	advisoryErrors int64
}

type Server struct {
	http.Server
	store   *store.Store
	advisor Advisor
	logger  *log.Logger

	// Identical advisory prompts yield identical text, so itinerary
	// responses are cached briefly. Trip metrics are never cached.
	itineraryCache *cache.LRUCache[string]
	cacheManager   *cache.Manager

	metrics appMetrics
}

func NewServer(addr string, st *store.Store, adv Advisor, logger *log.Logger) *Server {
	s := &Server{
		store:          st,
		advisor:        adv,
		logger:         logger.WithComponent(log.ComponentHTTP),
		itineraryCache: cache.NewLRUCache[string](64, 30*time.Minute),
		cacheManager:   cache.NewManager(),
		metrics:        appMetrics{startedAt: time.Now()},
	}

	s.cacheManager.Register(s.itineraryCache)
	s.cacheManager.StartCleanup(5 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /metrics", s.handleMetrics)

	mux.HandleFunc("GET /api/trips", s.handleListTrips)
	mux.HandleFunc("POST /api/trips", s.handleCreateTrip)
	mux.HandleFunc("GET /api/trips/{id}", s.handleGetTrip)
	mux.HandleFunc("DELETE /api/trips/{id}", s.handleRemoveTrip)
	mux.HandleFunc("GET /api/trips/{id}/metrics", s.handleTripMetrics)
	mux.HandleFunc("POST /api/trips/{id}/members", s.handleAddMember)
	mux.HandleFunc("POST /api/trips/{id}/expenses", s.handleAddExpense)
	mux.HandleFunc("POST /api/trips/{id}/itinerary", s.handleItinerary)
	mux.HandleFunc("POST /api/trips/{id}/budget-prediction", s.handleBudgetPrediction)

	s.Addr = addr
	s.Handler = log.Middleware(logger.WithComponent(log.ComponentHTTP))(mux)
	return s
}

// Shutdown stops background cache cleanup before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cacheManager.Stop()
	return s.Server.Shutdown(ctx)
}
