package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func twoPersonTrip() Trip {
	return Trip{
		ID:              "t1",
		Name:            "Weekend",
		Destination:     "Goa",
		StartDate:       NewDate(2024, 9, 10),
		EndDate:         NewDate(2024, 9, 14),
		BudgetPerPerson: 100,
		Members: []Member{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
		},
	}
}

func TestComputeTripMetricsEmptyExpenses(t *testing.T) {
	m := ComputeTripMetrics(twoPersonTrip())
	if m.TotalSpent != 0 {
		t.Fatalf("totalSpent = %v, want 0", m.TotalSpent)
	}
	if len(m.Balances) != 2 {
		t.Fatalf("balances entries = %d, want 2", len(m.Balances))
	}
	for id, b := range m.Balances {
		if b != 0 {
			t.Fatalf("balance(%s) = %v, want 0", id, b)
		}
	}
}

func TestComputeTripMetricsWorkedExample(t *testing.T) {
	trip := twoPersonTrip()
	trip.Expenses = []Expense{
		{ID: "e1", Description: "lunch", Amount: 60, Category: CategoryFood, PaidByID: "a"},
	}

	m := ComputeTripMetrics(trip)

	if m.TotalBudget != 200 {
		t.Fatalf("totalBudget = %v, want 200", m.TotalBudget)
	}
	if m.TotalSpent != 60 {
		t.Fatalf("totalSpent = %v, want 60", m.TotalSpent)
	}
	if m.SharePerPerson != 30 {
		t.Fatalf("sharePerPerson = %v, want 30", m.SharePerPerson)
	}
	if m.Balances["a"] != 30 {
		t.Fatalf("balance(a) = %v, want 30", m.Balances["a"])
	}
	if m.Balances["b"] != -30 {
		t.Fatalf("balance(b) = %v, want -30", m.Balances["b"])
	}
}

func TestComputeTripMetricsBalancesSumToZero(t *testing.T) {
	trip := Trip{
		Members: []Member{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
			{ID: "c", Name: "C"},
		},
		Expenses: []Expense{
			{ID: "e1", Amount: 33.33, Category: CategoryFood, PaidByID: "a"},
			{ID: "e2", Amount: 0.07, Category: CategoryOther, PaidByID: "b"},
			{ID: "e3", Amount: 1234.56, Category: CategoryTransport, PaidByID: "c"},
			{ID: "e4", Amount: 17.01, Category: CategoryActivities, PaidByID: "a"},
		},
	}

	m := ComputeTripMetrics(trip)

	var sum float64
	for _, b := range m.Balances {
		sum += b
	}
	if math.Abs(sum) > tolerance {
		t.Fatalf("sum of balances = %v, want ~0", sum)
	}
}

func TestComputeTripMetricsZeroMembers(t *testing.T) {
	trip := Trip{
		Expenses: []Expense{
			{ID: "e1", Amount: 50, Category: CategoryFood, PaidByID: "ghost"},
		},
	}

	m := ComputeTripMetrics(trip)

	if m.SharePerPerson != 0 {
		t.Fatalf("sharePerPerson = %v, want 0", m.SharePerPerson)
	}
	if m.TotalSpent != 50 {
		t.Fatalf("totalSpent = %v, want 50", m.TotalSpent)
	}
}

func TestComputeTripMetricsOrphanedPayer(t *testing.T) {
	trip := twoPersonTrip()
	trip.Expenses = []Expense{
		{ID: "e1", Amount: 90, Category: CategoryFood, PaidByID: "gone"},
	}

	m := ComputeTripMetrics(trip)

	// The orphaned amount still counts toward the total and gets its own
	// balance entry; members carry the full share.
	if m.TotalSpent != 90 {
		t.Fatalf("totalSpent = %v, want 90", m.TotalSpent)
	}
	if m.Balances["gone"] != 90 {
		t.Fatalf("balance(gone) = %v, want 90", m.Balances["gone"])
	}
	if m.Balances["a"] != -45 || m.Balances["b"] != -45 {
		t.Fatalf("member balances = %v/%v, want -45/-45", m.Balances["a"], m.Balances["b"])
	}
}

func TestComputeTripMetricsCategoryTotals(t *testing.T) {
	trip := twoPersonTrip()
	trip.Expenses = []Expense{
		{ID: "e1", Amount: 10, Category: CategoryFood, PaidByID: "a"},
		{ID: "e2", Amount: 20, Category: CategoryFood, PaidByID: "b"},
		{ID: "e3", Amount: 5, Category: CategoryTransport, PaidByID: "a"},
	}

	m := ComputeTripMetrics(trip)

	if m.CategoryTotals[CategoryFood] != 30 {
		t.Fatalf("food total = %v, want 30", m.CategoryTotals[CategoryFood])
	}
	if m.CategoryTotals[CategoryTransport] != 5 {
		t.Fatalf("transport total = %v, want 5", m.CategoryTotals[CategoryTransport])
	}
	// Every category appears even with no spend.
	if got, ok := m.CategoryTotals[CategoryAccommodation]; !ok || got != 0 {
		t.Fatalf("accommodation total = %v (present=%v), want 0 present", got, ok)
	}
}

func TestDurationInDays(t *testing.T) {
	cases := []struct {
		start, end Date
		want       int
	}{
		{NewDate(2024, 9, 10), NewDate(2024, 9, 10), 1},
		{NewDate(2024, 9, 10), NewDate(2024, 9, 14), 5},
		{NewDate(2024, 12, 30), NewDate(2025, 1, 2), 4},
		{NewDate(2024, 9, 14), NewDate(2024, 9, 10), -3}, // end before start is not validated
	}
	for i, tc := range cases {
		if got := DurationInDays(tc.start, tc.end); got != tc.want {
			t.Fatalf("case %d: duration = %d, want %d", i, got, tc.want)
		}
	}
}

func TestSeedTripsShape(t *testing.T) {
	trips := SeedTrips()
	if len(trips) != 1 {
		t.Fatalf("seed trips = %d, want 1", len(trips))
	}
	trip := trips[0]
	if trip.ID != "default-trip-1" {
		t.Fatalf("seed trip id = %q", trip.ID)
	}
	if len(trip.Members) != 3 || len(trip.Expenses) != 5 {
		t.Fatalf("seed members/expenses = %d/%d, want 3/5", len(trip.Members), len(trip.Expenses))
	}
	for _, e := range trip.Expenses {
		if _, ok := trip.MemberByID(e.PaidByID); !ok {
			t.Fatalf("seed expense %s references unknown payer %s", e.ID, e.PaidByID)
		}
	}
	if d := DurationInDays(trip.StartDate, trip.EndDate); d != 6 {
		t.Fatalf("seed duration = %d, want 6", d)
	}
}
