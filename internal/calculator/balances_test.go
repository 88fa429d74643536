package calculator

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeBalances(t *testing.T) {
	totals, err := Aggregate(entries("Alice", "100", "Bob", "0", "Carol", "0"))
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	share, balances, err := ComputeBalances(totals)
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	// 100 / 3 keeps full precision; rounding happens later.
	if got := share.Round(2); !got.Equal(dec("33.33")) {
		t.Errorf("share = %s, want 33.33", got)
	}
	if share.Equal(share.Round(2)) {
		t.Errorf("share %s was rounded too early", share)
	}

	if len(balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(balances))
	}
	for i, name := range []string{"Alice", "Bob", "Carol"} {
		if balances[i].Participant != name {
			t.Errorf("balances[%d] = %s, want %s", i, balances[i].Participant, name)
		}
		if !balances[i].FairShare.Equal(share) {
			t.Errorf("%s fair share = %s, want %s", name, balances[i].FairShare, share)
		}
		if !balances[i].Balance.Equal(balances[i].TotalPaid.Sub(share)) {
			t.Errorf("%s balance = %s, want paid - share", name, balances[i].Balance)
		}
	}

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.Balance)
	}
	if sum.Abs().GreaterThan(Tolerance) {
		t.Errorf("balances sum to %s, want ~0", sum)
	}
}

func TestComputeBalances_ZeroParticipants(t *testing.T) {
	for _, totals := range []*Totals{nil, {Total: dec("10")}} {
		_, _, err := ComputeBalances(totals)
		if !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("ComputeBalances(%v) error = %v, want ErrDivisionByZero", totals, err)
		}
	}
}

func TestAmountFromFloat(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -0.5, 1e300, 1e-30} {
		if _, err := AmountFromFloat(f); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("AmountFromFloat(%v) error = %v, want ErrInvalidAmount", f, err)
		}
	}

	got, err := AmountFromFloat(19.99)
	if err != nil {
		t.Fatalf("AmountFromFloat(19.99) error: %v", err)
	}
	if !got.Equal(dec("19.99")) {
		t.Errorf("AmountFromFloat(19.99) = %s", got)
	}
}
