package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Transfer is one recommended payment from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// position tracks how much a debtor still has to pay or a creditor still has
// to receive. remaining is always a magnitude.
type position struct {
	participant string
	remaining   decimal.Decimal
}

// Match turns balances into transfers that settle them.
//
// Algorithm:
//   - Credits and debts must agree within Tolerance, otherwise the balances
//     cannot be settled
//   - Debtors are ordered most negative first, creditors most positive first;
//     ties keep the input order
//   - Each side is allocated whole cents adding up to exactly the rounded
//     total credit, so balances below a cent are not lost
//   - Two pointers walk both lists, each step paying min(debt, credit)
//
// This is a greedy heuristic. It yields at most debtors+creditors-1 transfers
// but does not search for the smallest possible number.
func Match(balances []ParticipantBalance) ([]Transfer, error) {
	var debtors, creditors []position
	credit, debt := decimal.Zero, decimal.Zero

	for _, b := range balances {
		switch {
		case b.Balance.IsNegative():
			debtors = append(debtors, position{participant: b.Participant, remaining: b.Balance.Neg()})
			debt = debt.Add(b.Balance.Neg())
		case b.Balance.IsPositive():
			creditors = append(creditors, position{participant: b.Participant, remaining: b.Balance})
			credit = credit.Add(b.Balance)
		}
	}

	if credit.Sub(debt).Abs().GreaterThan(Tolerance) {
		return nil, fmt.Errorf("%w: credits %s, debts %s", ErrUnbalancedSettlement,
			credit.StringFixed(CurrencyPlaces+1), debt.StringFixed(CurrencyPlaces+1))
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})

	target := credit.Round(CurrencyPlaces)
	var err error
	if creditors, err = allocate(creditors, target); err != nil {
		return nil, err
	}
	if debtors, err = allocate(debtors, target); err != nil {
		return nil, err
	}

	transfers := make([]Transfer, 0, len(debtors)+len(creditors))

	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, Transfer{
			From:   debtor.participant,
			To:     creditor.participant,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.IsZero() {
			i++
		}
		if creditor.remaining.IsZero() {
			j++
		}
	}

	if i < len(debtors) || j < len(creditors) {
		return nil, fmt.Errorf("%w: %d debtors and %d creditors left unmatched",
			ErrUnbalancedSettlement, len(debtors)-i, len(creditors)-j)
	}

	return transfers, nil
}

// allocate rounds every position to whole minor units so that together they
// come to exactly target. Amounts are floored, then the units still missing
// go one each to the largest remainders, ties in list order. Positions left
// at zero are dropped.
func allocate(positions []position, target decimal.Decimal) ([]position, error) {
	floored := decimal.Zero
	fractions := make([]decimal.Decimal, len(positions))
	order := make([]int, len(positions))

	for k := range positions {
		whole := positions[k].remaining.RoundFloor(CurrencyPlaces)
		fractions[k] = positions[k].remaining.Sub(whole)
		positions[k].remaining = whole
		floored = floored.Add(whole)
		order[k] = k
	}

	missing := target.Sub(floored).Div(MinorUnit).IntPart()
	if missing < 0 || missing > int64(len(positions)) {
		return nil, fmt.Errorf("%w: cannot spread %s over %d participants",
			ErrUnbalancedSettlement, target.StringFixed(CurrencyPlaces), len(positions))
	}

	sort.SliceStable(order, func(a, b int) bool {
		return fractions[order[a]].GreaterThan(fractions[order[b]])
	})
	for _, k := range order[:missing] {
		positions[k].remaining = positions[k].remaining.Add(MinorUnit)
	}

	kept := positions[:0]
	for _, p := range positions {
		if p.remaining.IsPositive() {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
