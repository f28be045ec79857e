package http

import (
	"net/http"
	"sync/atomic"

	"tripledger/internal/core"
	"tripledger/internal/log"
)

// unknownPayerName is shown when an expense references a member id that no
// longer exists. Rendering tolerates the inconsistency instead of failing.
const unknownPayerName = "Unknown"

type expenseView struct {
	core.Expense
	PaidByName string `json:"paidByName"`
}

type tripView struct {
	core.Trip
	Expenses []expenseView `json:"expenses"`
}

func newTripView(t core.Trip) tripView {
	view := tripView{Trip: t, Expenses: make([]expenseView, len(t.Expenses))}
	for i, e := range t.Expenses {
		name := unknownPayerName
		if m, ok := t.MemberByID(e.PaidByID); ok {
			name = m.Name
		}
		view.Expenses[i] = expenseView{Expense: e, PaidByName: name}
	}
	return view
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	trips := s.store.ListTrips(r.Context())
	views := make([]tripView, len(trips))
	for i, t := range trips {
		views[i] = newTripView(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": views})
}

type createTripRequest struct {
	core.TripDraft
	FirstMemberName string `json:"firstMemberName"`
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trip, err := s.store.AddTrip(r.Context(), req.TripDraft, req.FirstMemberName)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	atomic.AddInt64(&s.metrics.tripsCreated, 1)
	writeJSON(w, http.StatusCreated, newTripView(trip))
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := s.store.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newTripView(trip))
}

func (s *Server) handleRemoveTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.store.RemoveTrip(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTripMetrics recomputes the balance metrics from the latest trip
// snapshot on every request.
func (s *Server) handleTripMetrics(w http.ResponseWriter, r *http.Request) {
	trip, err := s.store.GetTrip(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, core.ComputeTripMetrics(trip))
}

type addMemberRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	member, err := s.store.AddMember(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	atomic.AddInt64(&s.metrics.membersAdded, 1)
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var draft core.ExpenseDraft
	if err := decodeJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tripID := r.PathValue("id")
	expense, err := s.store.AddExpense(r.Context(), tripID, draft)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Expense recorded",
		log.FieldTripID, tripID,
		log.FieldExpenseID, expense.ID,
		log.FieldAmount, expense.Amount,
		log.FieldCategory, string(expense.Category))

	atomic.AddInt64(&s.metrics.expensesAdded, 1)
	writeJSON(w, http.StatusCreated, expense)
}
