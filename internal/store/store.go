// Package store owns the canonical in-process copy of the trip collection.
//
// All mutations go through the store, which serializes the whole collection
// to the durable slot after every successful change. Reads hand out deep
// copies; callers never hold a reference into the canonical collection.
package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"tripledger/internal/core"
	"tripledger/internal/log"
)

// Mutation kinds announced to the optional event publisher.
const (
	MutationTripCreated  = "trip_created"
	MutationTripUpdated  = "trip_updated"
	MutationTripRemoved  = "trip_removed"
	MutationMemberAdded  = "member_added"
	MutationExpenseAdded = "expense_added"
)

// MutationPublisher receives a lightweight notification after every
// successful mutation. A nil publisher disables notifications; publish
// failures never fail the mutation.
type MutationPublisher interface {
	PublishMutation(ctx context.Context, tripID, kind string) error
}

// Store holds the trip collection and exposes the mutation operations the
// presentation layer calls. Safe for concurrent use; mutations hold the
// write lock, so no two mutations ever interleave.
type Store struct {
	mu     sync.RWMutex
	trips  []core.Trip
	slot   Slot
	pub    MutationPublisher
	logger *log.Logger

	now   func() time.Time
	newID func() string
}

func New(slot Slot, logger *log.Logger) *Store {
	return &Store{
		slot:   slot,
		logger: logger.WithComponent(log.ComponentStore),
		now:    time.Now,
		newID:  core.NewID,
	}
}

// SetPublisher attaches an optional mutation event publisher.
func (s *Store) SetPublisher(pub MutationPublisher) {
	s.pub = pub
}

// SetNewIDForTest overrides id generation for deterministic tests.
// It should not be used in production code.
func (s *Store) SetNewIDForTest(fn func() string) {
	if fn != nil {
		s.newID = fn
	}
}

// SetNowForTest overrides the clock for deterministic tests.
func (s *Store) SetNowForTest(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Load populates the store from the durable slot. A missing, empty, or
// corrupt slot falls back to the built-in seed collection; Load never fails.
func (s *Store) Load(ctx context.Context) {
	trips, err := s.slot.Read(ctx)
	switch {
	case err != nil:
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.InfoContext(ctx, "Store slot empty, using seed collection",
				log.FieldOperation, log.OpLoad)
		} else {
			s.logger.WarnContext(ctx, "Failed to read store slot, using seed collection",
				log.FieldOperation, log.OpLoad,
				log.FieldError, err)
		}
		trips = core.SeedTrips()
	case len(trips) == 0:
		s.logger.InfoContext(ctx, "Store slot held no trips, using seed collection",
			log.FieldOperation, log.OpLoad)
		trips = core.SeedTrips()
	default:
		s.logger.InfoContext(ctx, "Loaded trip collection",
			log.FieldOperation, log.OpLoad,
			"trips", len(trips))
	}

	s.mu.Lock()
	s.trips = trips
	s.mu.Unlock()

	// Mirror the collection back so a fresh install persists the seed.
	s.save(ctx)
}

// save writes the whole collection to the slot. Failures are logged and
// absorbed: the in-memory state stays authoritative for the session.
func (s *Store) save(ctx context.Context) {
	s.mu.RLock()
	snapshot := s.cloneAllRLocked()
	s.mu.RUnlock()

	if err := s.slot.Write(ctx, snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist trip collection",
			log.FieldOperation, log.OpSave,
			log.FieldError, err)
	}
}

// cloneAllRLocked deep-copies the collection; the caller holds at least the
// read lock.
func (s *Store) cloneAllRLocked() []core.Trip {
	out := make([]core.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

// ListTrips returns a deep copy of the collection in insertion order.
func (s *Store) ListTrips(_ context.Context) []core.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cloneAllRLocked()
}

// GetTrip returns a deep copy of the trip with the given id.
func (s *Store) GetTrip(_ context.Context, id string) (core.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trips {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return core.Trip{}, core.ErrTripNotFound
}

// AddTrip creates a new trip from the draft, seeded with exactly one member.
// A blank first-member name defaults to "Me".
func (s *Store) AddTrip(ctx context.Context, draft core.TripDraft, firstMemberName string) (core.Trip, error) {
	if err := draft.Validate(); err != nil {
		return core.Trip{}, err
	}

	name := strings.TrimSpace(firstMemberName)
	if name == "" {
		name = "Me"
	}

	trip := core.Trip{
		ID:              s.newID(),
		Name:            strings.TrimSpace(draft.Name),
		Destination:     strings.TrimSpace(draft.Destination),
		StartDate:       draft.StartDate,
		EndDate:         draft.EndDate,
		BudgetPerPerson: draft.BudgetPerPerson,
		Members:         []core.Member{{ID: s.newID(), Name: name}},
		Expenses:        []core.Expense{},
	}

	s.mu.Lock()
	s.trips = append(s.trips, trip)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Trip created",
		log.FieldOperation, log.OpCreate,
		log.FieldTripID, trip.ID,
		log.FieldTripName, trip.Name)

	s.save(ctx)
	s.publish(ctx, trip.ID, MutationTripCreated)
	return trip.Clone(), nil
}

// mutate applies fn to the trip with the given id under one write lock
// acquisition: locate, clone, apply, replace. Holding the lock for the whole
// read-modify-write is what makes concurrent mutations on the same trip
// serialize instead of overwriting each other. fn gets a clone; an error from
// fn leaves the collection untouched.
func (s *Store) mutate(tripID string, fn func(*core.Trip) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trips {
		if s.trips[i].ID != tripID {
			continue
		}
		trip := s.trips[i].Clone()
		if err := fn(&trip); err != nil {
			return err
		}
		s.trips[i] = trip
		return nil
	}
	return core.ErrTripNotFound
}

// AddMember appends a member to the trip. Names are unique per trip,
// compared case-insensitively; a duplicate is rejected with no state change.
func (s *Store) AddMember(ctx context.Context, tripID, name string) (core.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Member{}, core.ErrEmptyName
	}

	member := core.Member{ID: s.newID(), Name: name}
	err := s.mutate(tripID, func(t *core.Trip) error {
		if t.HasMemberNamed(name) {
			return core.ErrDuplicateMember
		}
		t.Members = append(t.Members, member)
		return nil
	})
	if err != nil {
		return core.Member{}, err
	}

	s.logger.InfoContext(ctx, "Member added",
		log.FieldOperation, log.OpUpdate,
		log.FieldTripID, tripID,
		log.FieldMemberID, member.ID,
		log.FieldMemberName, member.Name)

	s.save(ctx)
	s.publish(ctx, tripID, MutationMemberAdded)
	return member, nil
}

// AddExpense appends an expense with a fresh id and creation timestamp.
// The payer id is not checked against the member list.
func (s *Store) AddExpense(ctx context.Context, tripID string, draft core.ExpenseDraft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}

	expense := core.Expense{
		ID:          s.newID(),
		Description: strings.TrimSpace(draft.Description),
		Amount:      draft.Amount,
		Category:    draft.Category,
		PaidByID:    draft.PaidByID,
		Date:        s.now().UTC(),
	}
	err := s.mutate(tripID, func(t *core.Trip) error {
		t.Expenses = append(t.Expenses, expense)
		return nil
	})
	if err != nil {
		return core.Expense{}, err
	}

	s.logger.InfoContext(ctx, "Expense added",
		log.FieldOperation, log.OpUpdate,
		log.FieldTripID, tripID,
		log.FieldExpenseID, expense.ID,
		log.FieldAmount, expense.Amount,
		log.FieldCategory, string(expense.Category))

	s.save(ctx)
	s.publish(ctx, tripID, MutationExpenseAdded)
	return expense, nil
}

// UpdateTrip replaces the trip matching the given id in full. Callers that
// derived the replacement from an earlier read should prefer the field
// mutations above, which apply under a single lock acquisition.
func (s *Store) UpdateTrip(ctx context.Context, updated core.Trip) error {
	err := s.mutate(updated.ID, func(t *core.Trip) error {
		*t = updated.Clone()
		return nil
	})
	if err != nil {
		return err
	}

	s.save(ctx)
	return nil
}

// RemoveTrip deletes a trip, and with it all owned members and expenses.
func (s *Store) RemoveTrip(ctx context.Context, id string) error {
	s.mu.Lock()
	removed := false
	for i, t := range s.trips {
		if t.ID == id {
			s.trips = append(s.trips[:i], s.trips[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if !removed {
		return core.ErrTripNotFound
	}

	s.logger.InfoContext(ctx, "Trip removed",
		log.FieldOperation, log.OpRemove,
		log.FieldTripID, id)

	s.save(ctx)
	s.publish(ctx, id, MutationTripRemoved)
	return nil
}

func (s *Store) publish(ctx context.Context, tripID, kind string) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishMutation(ctx, tripID, kind); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish mutation event",
			log.FieldOperation, log.OpPublish,
			log.FieldTripID, tripID,
			log.FieldEventKind, kind,
			log.FieldError, err)
	}
}
