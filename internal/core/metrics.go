// Package core holds the ledger model and the balance engine.
//
// This file implements the derived financial metrics for a trip: aggregate
// spend, per-person share, and the net balance of every member. Metrics are
// recomputed from the trip snapshot on every call; no derived state is ever
// stored, so readers can never observe a stale balance.
package core

import "math"

// TripMetrics is the result of one balance computation over a trip snapshot.
//
// Balances maps member id to net position: positive means the group owes the
// member, negative means the member owes the group. An expense whose payer id
// no longer matches a member still accumulates a credit entry under that id;
// callers display such entries as "Unknown" rather than failing.
type TripMetrics struct {
	TotalSpent     float64              `json:"totalSpent"`
	TotalBudget    float64              `json:"totalBudget"`
	SharePerPerson float64              `json:"sharePerPerson"`
	DurationInDays int                  `json:"durationInDays"`
	Balances       map[string]float64   `json:"balances"`
	CategoryTotals map[Category]float64 `json:"categoryTotals"`
}

// ComputeTripMetrics derives the financial metrics for a trip. It is a pure
// function: the input is never mutated and no state is retained, so it is
// safe to call repeatedly and from concurrent readers.
//
// With no members the share is defined as zero (no division by zero); with no
// expenses everything degenerates to zeros. The sum of member balances is
// always within floating-point error of zero when no orphaned payer ids are
// present: every payer credit is offset exactly by the equal-share debits.
func ComputeTripMetrics(t Trip) TripMetrics {
	m := TripMetrics{
		Balances:       make(map[string]float64, len(t.Members)),
		CategoryTotals: make(map[Category]float64, len(Categories())),
		DurationInDays: DurationInDays(t.StartDate, t.EndDate),
	}

	for _, c := range Categories() {
		m.CategoryTotals[c] = 0
	}

	// Every current member gets an entry, even if they paid nothing.
	for _, member := range t.Members {
		m.Balances[member.ID] = 0
	}

	for _, e := range t.Expenses {
		m.TotalSpent += e.Amount
		m.Balances[e.PaidByID] += e.Amount
		m.CategoryTotals[e.Category] += e.Amount
	}

	m.TotalBudget = t.BudgetPerPerson * float64(len(t.Members))

	if len(t.Members) > 0 {
		m.SharePerPerson = m.TotalSpent / float64(len(t.Members))
	}

	// The share is deducted from current members only; orphaned payer
	// entries keep their raw credit.
	for _, member := range t.Members {
		m.Balances[member.ID] -= m.SharePerPerson
	}

	return m
}

// DurationInDays returns the inclusive day count of the trip's date range:
// a trip starting and ending on the same date lasts one day. Dates are UTC
// midnight-anchored, so the difference is always a whole number of days.
// The result can be zero or negative when end precedes start; ordering is
// the caller's concern, not the engine's.
func DurationInDays(start, end Date) int {
	days := int(math.Ceil(end.Sub(start.Time).Hours() / 24))
	return days + 1
}
