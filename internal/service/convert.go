package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

// toEntries parses wire expenses into engine entries.
func toEntries(expenses []*api.Expense) ([]calculator.ExpenseEntry, error) {
	entries := make([]calculator.ExpenseEntry, 0, len(expenses))
	for i, e := range expenses {
		if e == nil {
			return nil, fmt.Errorf("expense %d: %w", i, calculator.ErrInvalidParticipant)
		}
		amount, err := calculator.ParseAmount(e.Amount)
		if err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i, e.Participant, err)
		}
		entries = append(entries, calculator.ExpenseEntry{
			Participant: strings.TrimSpace(e.Participant),
			Amount:      amount,
			Description: strings.TrimSpace(e.Description),
		})
	}
	return entries, nil
}

// entriesFromSplit rebuilds engine input from a stored split.
func entriesFromSplit(split *models.Split) []calculator.ExpenseEntry {
	entries := make([]calculator.ExpenseEntry, len(split.Expenses))
	for i, e := range split.Expenses {
		entries[i] = calculator.ExpenseEntry{
			Participant: e.Participant,
			Amount:      e.Amount,
			Description: e.Description,
		}
	}
	return entries
}

// newSplit builds the record to persist from a computed settlement.
func newSplit(result *calculator.Result, entries []calculator.ExpenseEntry) *models.Split {
	split := &models.Split{
		GroupName:      result.GroupName,
		Expenses:       make([]models.Expense, len(entries)),
		TotalAmount:    result.TotalAmount,
		PerPersonShare: result.PerPersonShare,
		Transfers:      make([]models.Transfer, len(result.Transfers)),
	}
	for i, e := range entries {
		split.Expenses[i] = models.Expense{Participant: e.Participant, Amount: e.Amount, Description: e.Description}
	}
	for i, t := range result.Transfers {
		split.Transfers[i] = models.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}
	return split
}

// toSettlement renders a result for the wire. Share and balances are
// rounded to cents here; the engine keeps full precision.
func toSettlement(result *calculator.Result) *api.Settlement {
	balances := make([]*api.Balance, len(result.Balances))
	for i, b := range result.Balances {
		balances[i] = &api.Balance{
			Participant: b.Participant,
			TotalPaid:   b.TotalPaid.StringFixed(calculator.CurrencyPlaces),
			FairShare:   b.FairShare.StringFixed(calculator.CurrencyPlaces),
			Balance:     b.Balance.StringFixed(calculator.CurrencyPlaces),
		}
	}
	transfers := make([]*api.Transfer, len(result.Transfers))
	for i, t := range result.Transfers {
		transfers[i] = &api.Transfer{From: t.From, To: t.To, Amount: t.Amount.StringFixed(calculator.CurrencyPlaces)}
	}
	return &api.Settlement{
		GroupName:      result.GroupName,
		TotalAmount:    result.TotalAmount.StringFixed(calculator.CurrencyPlaces),
		PerPersonShare: result.PerPersonShare.StringFixed(calculator.CurrencyPlaces),
		Balances:       balances,
		Transfers:      transfers,
	}
}

// toAPISplit renders a stored split. Balances are not stored, so they are
// recomputed from the expenses; totals and transfers come from the record.
func toAPISplit(split *models.Split) (*api.Split, error) {
	result, err := calculator.ComputeSettlement(split.GroupName, entriesFromSplit(split))
	if err != nil {
		return nil, fmt.Errorf("recompute split %s: %w", split.ID, err)
	}
	result.TotalAmount = split.TotalAmount
	result.PerPersonShare = split.PerPersonShare
	result.Transfers = make([]calculator.Transfer, len(split.Transfers))
	for i, t := range split.Transfers {
		result.Transfers[i] = calculator.Transfer{From: t.From, To: t.To, Amount: t.Amount}
	}

	expenses := make([]*api.Expense, len(split.Expenses))
	for i, e := range split.Expenses {
		expenses[i] = &api.Expense{
			Participant: e.Participant,
			Amount:      formatAmount(e.Amount),
			Description: e.Description,
		}
	}

	return &api.Split{
		SplitID:    split.ID,
		GroupName:  split.GroupName,
		Expenses:   expenses,
		CreatedAt:  split.CreatedAt,
		Settlement: toSettlement(result),
	}, nil
}

func toAPISplits(splits []*models.Split) ([]*api.Split, error) {
	out := make([]*api.Split, len(splits))
	for i, s := range splits {
		converted, err := toAPISplit(s)
		if err != nil {
			return nil, err
		}
		out[i] = converted
	}
	return out, nil
}

// formatAmount shows whole-cent amounts with two places and keeps any finer
// precision the caller submitted.
func formatAmount(d decimal.Decimal) string {
	if d.Equal(d.Round(calculator.CurrencyPlaces)) {
		return d.StringFixed(calculator.CurrencyPlaces)
	}
	return d.String()
}
