package models

import "github.com/shopspring/decimal"

// Split is a settlement record for one group of expenses.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// GroupName is the group the expenses belong to (e.g., "Roommates").
	// Several splits can share a group name; together they form its history.
	GroupName string

	// Expenses are the submitted payments, in submission order.
	Expenses []Expense

	// TotalAmount is the sum of all expense amounts.
	TotalAmount decimal.Decimal

	// PerPersonShare is TotalAmount divided by the number of distinct participants.
	PerPersonShare decimal.Decimal

	// Transfers are the payments that settle the group.
	Transfers []Transfer

	// CreatedAt is the Unix timestamp when the split was recorded.
	CreatedAt int64
}

// Expense represents one payment made by one participant.
type Expense struct {
	// Participant is the name of the person who paid.
	Participant string

	// Amount is what they paid. Zero is allowed for someone who paid nothing.
	Amount decimal.Decimal

	// Description is optional (e.g., "Groceries").
	Description string
}

// Participants returns the distinct participant names in order of first appearance.
func (s *Split) Participants() []string {
	seen := make(map[string]bool, len(s.Expenses))
	var names []string
	for _, e := range s.Expenses {
		if !seen[e.Participant] {
			seen[e.Participant] = true
			names = append(names, e.Participant)
		}
	}
	return names
}
