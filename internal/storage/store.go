// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested split does not exist.
var ErrNotFound = errors.New("split not found")

// DefaultHistoryLimit is used by ListSplits when the caller asks for no limit.
const DefaultHistoryLimit = 10

// Store defines the interface for split storage operations.
// This abstraction allows swapping storage backends (memory, SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateSplit persists a new split.
	// The split.ID and split.CreatedAt fields are populated by the store when empty.
	CreateSplit(ctx context.Context, split *models.Split) error

	// GetSplit retrieves a split by its ID.
	// Returns ErrNotFound (wrapped) if the split does not exist.
	GetSplit(ctx context.Context, splitID string) (*models.Split, error)

	// ListSplits returns up to limit splits, newest first.
	ListSplits(ctx context.Context, limit int) ([]*models.Split, error)

	// ListSplitsByGroup returns every split recorded for a group, newest first.
	ListSplitsByGroup(ctx context.Context, groupName string) ([]*models.Split, error)

	// ListGroups returns a summary per group name, most recently active first.
	ListGroups(ctx context.Context) ([]*models.GroupSummary, error)

	// Close releases any resources held by the store.
	Close() error
}
