package http

import (
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"tripledger/internal/advisor"
	"tripledger/internal/core"
	"tripledger/internal/log"
)

func (s *Server) handleItinerary(w http.ResponseWriter, r *http.Request) {
	trip, err := s.store.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	duration := core.DurationInDays(trip.StartDate, trip.EndDate)
	key := fmt.Sprintf("%s|%d|%.0f", trip.Destination, duration, trip.BudgetPerPerson)

	if text, ok := s.itineraryCache.Get(key); ok {
		atomic.AddInt64(&s.metrics.itineraryHits, 1)
		writeJSON(w, http.StatusOK, map[string]string{"itinerary": text})
		return
	}

	text, err := s.advisor.GenerateItinerary(r.Context(), trip.Destination, duration, trip.BudgetPerPerson)
	if err != nil {
		atomic.AddInt64(&s.metrics.advisoryErrors, 1)
		s.logger.ErrorContext(r.Context(), "Itinerary generation failed",
			log.FieldTripID, trip.ID,
			log.FieldError, err)
		// Fallback text is shown but never cached, so the next request
		// retries the upstream instead of replaying the failure.
		writeJSON(w, http.StatusOK, map[string]string{"itinerary": advisor.FallbackText(err)})
		return
	}

	s.itineraryCache.Set(key, text)
	writeJSON(w, http.StatusOK, map[string]string{"itinerary": text})
}

func (s *Server) handleBudgetPrediction(w http.ResponseWriter, r *http.Request) {
	trip, err := s.store.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	duration := core.DurationInDays(trip.StartDate, trip.EndDate)
	prediction, err := s.advisor.PredictBudget(r.Context(), trip.Destination, duration, len(trip.Members))
	if err != nil {
		atomic.AddInt64(&s.metrics.advisoryErrors, 1)
		s.logger.ErrorContext(r.Context(), "Budget prediction failed",
			log.FieldTripID, trip.ID,
			log.FieldError, err)
		// A fallback number would be misleading, so the error goes to
		// the user as-is.
		if errors.Is(err, advisor.ErrMissingAPIKey) {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}
