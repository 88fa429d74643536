package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Totals is the output of Aggregate.
type Totals struct {
	// Total is the sum of every entry amount.
	Total decimal.Decimal

	// Participants lists distinct names in order of first appearance.
	Participants []string

	// Paid maps each participant to the sum of their entries.
	Paid map[string]decimal.Decimal
}

// Aggregate sums entries per participant. Names are trimmed and compared
// case-sensitively, so "Alice" and "alice" are different people.
func Aggregate(entries []ExpenseEntry) (*Totals, error) {
	if len(entries) < 2 {
		return nil, fmt.Errorf("%w: got %d entries", ErrInsufficientParticipants, len(entries))
	}

	totals := &Totals{
		Total: decimal.Zero,
		Paid:  make(map[string]decimal.Decimal, len(entries)),
	}

	for i, entry := range entries {
		name := strings.TrimSpace(entry.Participant)
		if name == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidParticipant, i)
		}
		amount, err := checkAmount(entry.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w (paid by %s)", err, name)
		}

		paid, seen := totals.Paid[name]
		if !seen {
			totals.Participants = append(totals.Participants, name)
		}
		totals.Paid[name] = paid.Add(amount)
		totals.Total = totals.Total.Add(amount)
	}

	if len(totals.Participants) < 2 {
		return nil, fmt.Errorf("%w: only %q paid", ErrInsufficientParticipants, totals.Participants[0])
	}

	return totals, nil
}
