package core

import "time"

// SeedTrips returns the built-in fallback collection used whenever the
// durable slot is missing, empty, or unreadable. The content is fixed so a
// fresh install looks identical across runs until the user mutates state.
func SeedTrips() []Trip {
	return []Trip{
		{
			ID:              "default-trip-1",
			Name:            "Kerala Backwaters Escape",
			Destination:     "Alleppey, Kerala",
			StartDate:       NewDate(2024, 9, 10),
			EndDate:         NewDate(2024, 9, 15),
			BudgetPerPerson: 20000,
			Members: []Member{
				{ID: "member-1", Name: "Rohan"},
				{ID: "member-2", Name: "Priya"},
				{ID: "member-3", Name: "Amit"},
			},
			Expenses: []Expense{
				{
					ID:          "expense-1",
					Description: "Flights to Kochi",
					Amount:      18000,
					Category:    CategoryTransport,
					PaidByID:    "member-1",
					Date:        time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC),
				},
				{
					ID:          "expense-2",
					Description: "Houseboat rental (2 nights)",
					Amount:      15000,
					Category:    CategoryAccommodation,
					PaidByID:    "member-2",
					Date:        time.Date(2024, 8, 5, 12, 0, 0, 0, time.UTC),
				},
				{
					ID:          "expense-3",
					Description: "Kathakali show tickets",
					Amount:      1500,
					Category:    CategoryActivities,
					PaidByID:    "member-3",
					Date:        time.Date(2024, 9, 11, 12, 0, 0, 0, time.UTC),
				},
				{
					ID:          "expense-4",
					Description: "Local food and groceries",
					Amount:      8000,
					Category:    CategoryFood,
					PaidByID:    "member-1",
					Date:        time.Date(2024, 9, 12, 12, 0, 0, 0, time.UTC),
				},
				{
					ID:          "expense-5",
					Description: "Seafood dinner at a toddy shop",
					Amount:      2500,
					Category:    CategoryFood,
					PaidByID:    "member-2",
					Date:        time.Date(2024, 9, 13, 12, 0, 0, 0, time.UTC),
				},
			},
		},
	}
}
