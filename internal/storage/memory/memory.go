// Package memory provides an in-memory implementation of storage.Store.
// Data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Compile-time check: ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps splits in insertion order and is safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	splits []*models.Split
	byID   map[string]*models.Split
}

// New returns an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*models.Split),
	}
}

// CreateSplit stores a copy of split.
func (m *MemoryStore) CreateSplit(ctx context.Context, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	if split.CreatedAt == 0 {
		split.CreatedAt = time.Now().Unix()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[split.ID]; exists {
		return fmt.Errorf("failed to insert split: duplicate id %s", split.ID)
	}
	stored := clone(split)
	m.splits = append(m.splits, stored)
	m.byID[stored.ID] = stored
	return nil
}

// GetSplit returns a copy of the split with the given ID.
func (m *MemoryStore) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	split, ok := m.byID[splitID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, splitID)
	}
	return clone(split), nil
}

// ListSplits returns up to limit splits, newest first.
func (m *MemoryStore) ListSplits(ctx context.Context, limit int) ([]*models.Split, error) {
	if limit <= 0 {
		limit = storage.DefaultHistoryLimit
	}
	return m.newestFirst(limit, func(*models.Split) bool { return true }), nil
}

// ListSplitsByGroup returns every split for groupName, newest first.
func (m *MemoryStore) ListSplitsByGroup(ctx context.Context, groupName string) ([]*models.Split, error) {
	return m.newestFirst(-1, func(s *models.Split) bool { return s.GroupName == groupName }), nil
}

// ListGroups returns one summary per group name, most recently active first.
func (m *MemoryStore) ListGroups(ctx context.Context) ([]*models.GroupSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index := make(map[string]*models.GroupSummary)
	groups := []*models.GroupSummary{}
	for _, s := range m.splits {
		g, ok := index[s.GroupName]
		if !ok {
			g = &models.GroupSummary{Name: s.GroupName}
			index[s.GroupName] = g
			groups = append(groups, g)
		}
		g.SplitCount++
		if s.CreatedAt > g.LastSplitAt {
			g.LastSplitAt = s.CreatedAt
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].LastSplitAt != groups[j].LastSplitAt {
			return groups[i].LastSplitAt > groups[j].LastSplitAt
		}
		return groups[i].Name < groups[j].Name
	})
	return groups, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// newestFirst walks splits from the most recent insert; limit < 0 means all.
// Insertion order breaks ties between equal timestamps.
func (m *MemoryStore) newestFirst(limit int, keep func(*models.Split) bool) []*models.Split {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := []*models.Split{}
	for i := len(m.splits) - 1; i >= 0; i-- {
		if keep(m.splits[i]) {
			matched = append(matched, m.splits[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt > matched[j].CreatedAt
	})
	if limit >= 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	out := make([]*models.Split, len(matched))
	for i, s := range matched {
		out[i] = clone(s)
	}
	return out
}

// clone copies split so callers cannot modify stored state.
func clone(split *models.Split) *models.Split {
	c := *split
	c.Expenses = append([]models.Expense(nil), split.Expenses...)
	c.Transfers = append([]models.Transfer{}, split.Transfers...)
	return &c
}
