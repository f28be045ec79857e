package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryAccommodation Category = "Accommodation"
	CategoryActivities    Category = "Activities"
	CategoryOther         Category = "Other"
)

// Currency is fixed for the whole system; amounts are never converted.
const Currency = "INR"

type (
	Category string

	// Date is a calendar date anchored at UTC midnight. It marshals as
	// "2006-01-02", matching the durable storage format.
	Date struct {
		time.Time
	}

	Member struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	Expense struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Category    Category  `json:"category"`
		PaidByID    string    `json:"paidById"`
		Date        time.Time `json:"date"`
	}

	Trip struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Destination     string    `json:"destination"`
		StartDate       Date      `json:"startDate"`
		EndDate         Date      `json:"endDate"`
		BudgetPerPerson float64   `json:"budgetPerPerson"`
		Members         []Member  `json:"members"`
		Expenses        []Expense `json:"expenses"`
	}
)

var (
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDestination = errors.New("empty destination")
	ErrEmptyDescription = errors.New("empty description")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyPayer       = errors.New("empty payer id")
	ErrInvalidDate      = errors.New("invalid date")
	ErrDuplicateMember  = errors.New("member name already exists")
	ErrTripNotFound     = errors.New("trip not found")
)

// Categories lists every valid expense category in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryAccommodation,
		CategoryActivities,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryAccommodation, CategoryActivities, CategoryOther:
		return true
	}
	return false
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// TripDraft carries the user-entered fields of a new trip. The first member
// and all ids are allocated by the store.
type TripDraft struct {
	Name            string  `json:"name"`
	Destination     string  `json:"destination"`
	StartDate       Date    `json:"startDate"`
	EndDate         Date    `json:"endDate"`
	BudgetPerPerson float64 `json:"budgetPerPerson"`
}

func (t TripDraft) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Destination) == "" {
		return ErrEmptyDestination
	}
	if err := t.StartDate.Validate(); err != nil {
		return err
	}
	if err := t.EndDate.Validate(); err != nil {
		return err
	}
	// EndDate before StartDate is accepted; the metrics layer reports a
	// non-positive duration and the caller may warn.
	if t.BudgetPerPerson < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// ExpenseDraft carries the user-entered fields of a new expense. Id and
// creation timestamp are allocated by the store. PaidByID is deliberately
// not checked against the trip's member list; the caller offers only
// current members as choices and stale references are tolerated downstream.
type ExpenseDraft struct {
	Description string   `json:"description"`
	Amount      float64  `json:"amount"`
	Category    Category `json:"category"`
	PaidByID    string   `json:"paidById"`
}

func (e ExpenseDraft) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if strings.TrimSpace(e.PaidByID) == "" {
		return ErrEmptyPayer
	}
	return nil
}

// MemberByID returns the member with the given id, or false when the id is
// unknown (an orphaned expense reference).
func (t Trip) MemberByID(id string) (Member, bool) {
	for _, m := range t.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// HasMemberNamed reports whether a member with the given name already
// exists, compared case-insensitively.
func (t Trip) HasMemberNamed(name string) bool {
	for _, m := range t.Members {
		if strings.EqualFold(m.Name, name) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the trip. Store reads hand out clones so the
// canonical collection is only ever mutated through store operations.
func (t Trip) Clone() Trip {
	out := t
	out.Members = append([]Member(nil), t.Members...)
	out.Expenses = append([]Expense(nil), t.Expenses...)
	return out
}
