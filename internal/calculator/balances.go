package calculator

import (
	"github.com/shopspring/decimal"
)

// ParticipantBalance is one participant's position after an equal split.
type ParticipantBalance struct {
	Participant string
	TotalPaid   decimal.Decimal
	FairShare   decimal.Decimal
	Balance     decimal.Decimal // Positive = owed money, Negative = owes money
}

// ComputeBalances splits the total equally and derives each participant's
// balance. Balances keep the order of totals.Participants.
//
// The share is kept at full division precision; rounding to cents happens
// only when transfers are emitted.
func ComputeBalances(totals *Totals) (decimal.Decimal, []ParticipantBalance, error) {
	if totals == nil || len(totals.Participants) == 0 {
		return decimal.Zero, nil, ErrDivisionByZero
	}

	share := totals.Total.Div(decimal.NewFromInt(int64(len(totals.Participants))))

	balances := make([]ParticipantBalance, 0, len(totals.Participants))
	for _, name := range totals.Participants {
		paid := totals.Paid[name]
		balances = append(balances, ParticipantBalance{
			Participant: name,
			TotalPaid:   paid,
			FairShare:   share,
			Balance:     paid.Sub(share),
		})
	}

	return share, balances, nil
}
