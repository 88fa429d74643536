// Package calculator computes equal-share settlements for a group of expenses.
//
// ComputeSettlement runs three stages in order: Aggregate sums what each
// participant paid, ComputeBalances derives balances against an equal fair
// share, and Match pairs debtors with creditors. All arithmetic uses
// shopspring/decimal; nothing is rounded before transfers are emitted.
//
// The package does no I/O and keeps no state, so it is safe for concurrent use.
package calculator

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExpenseEntry is one payment made by one participant toward the shared pool.
type ExpenseEntry struct {
	Participant string
	Amount      decimal.Decimal
	Description string
}

// Result is the settlement of a group.
type Result struct {
	GroupName      string
	TotalAmount    decimal.Decimal
	PerPersonShare decimal.Decimal
	Balances       []ParticipantBalance
	Transfers      []Transfer
}

// ComputeSettlement computes balances and transfers for a group.
// On failure it returns one of the package's sentinel errors, wrapped.
func ComputeSettlement(groupName string, entries []ExpenseEntry) (*Result, error) {
	name := strings.TrimSpace(groupName)
	if name == "" {
		return nil, ErrInvalidGroupName
	}

	totals, err := Aggregate(entries)
	if err != nil {
		return nil, err
	}

	share, balances, err := ComputeBalances(totals)
	if err != nil {
		return nil, err
	}

	transfers, err := Match(balances)
	if err != nil {
		return nil, err
	}

	return &Result{
		GroupName:      name,
		TotalAmount:    totals.Total,
		PerPersonShare: share,
		Balances:       balances,
		Transfers:      transfers,
	}, nil
}
