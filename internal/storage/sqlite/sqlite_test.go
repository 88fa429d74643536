package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newSplit(group string, createdAt int64, pairs ...string) *models.Split {
	split := &models.Split{GroupName: group, CreatedAt: createdAt}
	total := decimal.Zero
	for i := 0; i+1 < len(pairs); i += 2 {
		amount := dec(pairs[i+1])
		split.Expenses = append(split.Expenses, models.Expense{Participant: pairs[i], Amount: amount})
		total = total.Add(amount)
	}
	split.TotalAmount = total
	split.PerPersonShare = total.Div(decimal.NewFromInt(int64(len(split.Participants()))))
	return split
}

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "settleup-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateSplit generates ID and timestamp", func(t *testing.T) {
		split := newSplit("Trip", 0, "Alice", "300", "Bob", "100", "Carol", "100")

		if err := store.CreateSplit(ctx, split); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}

		if split.ID == "" {
			t.Error("Expected split ID to be generated")
		}
		if split.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetSplit retrieves complete split", func(t *testing.T) {
		original := newSplit("Dinner", 1700000000, "Charlie", "30.10", "Diana", "0", "Charlie", "5")
		original.Expenses[0].Description = "Steak"
		original.Transfers = []models.Transfer{{From: "Diana", To: "Charlie", Amount: dec("17.55")}}

		if err := store.CreateSplit(ctx, original); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}

		retrieved, err := store.GetSplit(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetSplit failed: %v", err)
		}

		if retrieved.ID != original.ID {
			t.Errorf("ID mismatch: got %s, want %s", retrieved.ID, original.ID)
		}
		if retrieved.GroupName != "Dinner" {
			t.Errorf("GroupName mismatch: got %s, want Dinner", retrieved.GroupName)
		}
		if !retrieved.TotalAmount.Equal(dec("35.10")) {
			t.Errorf("TotalAmount mismatch: got %s, want 35.10", retrieved.TotalAmount)
		}
		if !retrieved.PerPersonShare.Equal(original.PerPersonShare) {
			t.Errorf("PerPersonShare mismatch: got %s, want %s", retrieved.PerPersonShare, original.PerPersonShare)
		}
		if retrieved.CreatedAt != 1700000000 {
			t.Errorf("CreatedAt mismatch: got %d", retrieved.CreatedAt)
		}

		// Expenses come back in submission order, repeated payers included.
		if len(retrieved.Expenses) != 3 {
			t.Fatalf("Expenses count mismatch: got %d, want 3", len(retrieved.Expenses))
		}
		for i, e := range retrieved.Expenses {
			want := original.Expenses[i]
			if e.Participant != want.Participant || !e.Amount.Equal(want.Amount) || e.Description != want.Description {
				t.Errorf("Expense %d = %+v, want %+v", i, e, want)
			}
		}

		if len(retrieved.Transfers) != 1 {
			t.Fatalf("Transfers count mismatch: got %d, want 1", len(retrieved.Transfers))
		}
		if tr := retrieved.Transfers[0]; tr.From != "Diana" || tr.To != "Charlie" || !tr.Amount.Equal(dec("17.55")) {
			t.Errorf("Transfer = %+v", tr)
		}
	})

	t.Run("GetSplit returns ErrNotFound for nonexistent split", func(t *testing.T) {
		_, err := store.GetSplit(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Balanced split stores no transfers", func(t *testing.T) {
		split := newSplit("Lunch", 0, "Eve", "50", "Frank", "50")
		if err := store.CreateSplit(ctx, split); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}

		retrieved, err := store.GetSplit(ctx, split.ID)
		if err != nil {
			t.Fatalf("GetSplit failed: %v", err)
		}
		if retrieved.Transfers == nil || len(retrieved.Transfers) != 0 {
			t.Errorf("Expected empty transfers, got %v", retrieved.Transfers)
		}
	})
}

func TestSQLiteStore_Listing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "list.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	splits := []*models.Split{
		newSplit("Roommates", 100, "A", "10", "B", "0"),
		newSplit("Trip", 200, "A", "10", "C", "0"),
		newSplit("Roommates", 300, "A", "10", "B", "5"),
		newSplit("Roommates", 300, "B", "1", "A", "0"),
	}
	for _, s := range splits {
		if err := store.CreateSplit(ctx, s); err != nil {
			t.Fatalf("CreateSplit failed: %v", err)
		}
	}

	t.Run("ListSplits is newest first and limited", func(t *testing.T) {
		got, err := store.ListSplits(ctx, 3)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		// Same timestamp falls back to insertion order, newest first.
		want := []string{splits[3].ID, splits[2].ID, splits[1].ID}
		if len(got) != len(want) {
			t.Fatalf("got %d splits, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Errorf("ListSplits[%d] = %s, want %s", i, got[i].ID, want[i])
			}
		}
		if len(got[0].Expenses) != 2 {
			t.Errorf("Expected expenses to be loaded, got %d", len(got[0].Expenses))
		}
	})

	t.Run("ListSplits with no limit uses the default", func(t *testing.T) {
		got, err := store.ListSplits(ctx, 0)
		if err != nil {
			t.Fatalf("ListSplits failed: %v", err)
		}
		if len(got) != len(splits) {
			t.Errorf("got %d splits, want %d", len(got), len(splits))
		}
	})

	t.Run("ListSplitsByGroup filters by name", func(t *testing.T) {
		got, err := store.ListSplitsByGroup(ctx, "Roommates")
		if err != nil {
			t.Fatalf("ListSplitsByGroup failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d splits, want 3", len(got))
		}
		for _, s := range got {
			if s.GroupName != "Roommates" {
				t.Errorf("unexpected group %s", s.GroupName)
			}
		}

		none, err := store.ListSplitsByGroup(ctx, "Nobody")
		if err != nil {
			t.Fatalf("ListSplitsByGroup failed: %v", err)
		}
		if none == nil || len(none) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", none)
		}
	})

	t.Run("ListGroups summarizes each group", func(t *testing.T) {
		got, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d groups, want 2", len(got))
		}
		if got[0].Name != "Roommates" || got[0].SplitCount != 3 || got[0].LastSplitAt != 300 {
			t.Errorf("groups[0] = %+v", got[0])
		}
		if got[1].Name != "Trip" || got[1].SplitCount != 1 || got[1].LastSplitAt != 200 {
			t.Errorf("groups[1] = %+v", got[1])
		}
	})
}

func TestNew_ReopensExistingDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "reopen.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	split := newSplit("Trip", 0, "A", "1", "B", "2")
	if err := store.CreateSplit(context.Background(), split); err != nil {
		t.Fatalf("CreateSplit failed: %v", err)
	}
	store.Close()

	// Migrations are already applied; reopening must not fail.
	store, err = New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetSplit(context.Background(), split.ID); err != nil {
		t.Errorf("GetSplit after reopen failed: %v", err)
	}
}
