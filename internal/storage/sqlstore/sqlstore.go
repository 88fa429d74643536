// Package sqlstore implements storage.Store on top of database/sql.
//
// The SQLite and PostgreSQL backends share one schema shape and one set of
// queries. Queries are written with "?" placeholders and rewritten to "$n"
// for dialects that need it.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Dialect selects the placeholder style of the underlying driver.
type Dialect int

const (
	// Question uses "?" placeholders (SQLite).
	Question Dialect = iota
	// Dollar uses "$1, $2, ..." placeholders (PostgreSQL).
	Dollar
)

var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over an open *sql.DB.
// The schema must already be migrated.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// New wraps db. The Store takes ownership of db and closes it on Close.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB returns the underlying handle, for health checks.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// rebind rewrites "?" placeholders for the store's dialect.
func (s *Store) rebind(query string) string {
	if s.dialect != Dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// CreateSplit persists a new split with its expenses and transfers in one transaction.
func (s *Store) CreateSplit(ctx context.Context, split *models.Split) error {
	if split.ID == "" {
		split.ID = uuid.New().String()
	}
	if split.CreatedAt == 0 {
		split.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		s.rebind("INSERT INTO splits (id, group_name, total_amount, per_person_share, created_at) VALUES (?, ?, ?, ?, ?)"),
		split.ID, split.GroupName, split.TotalAmount, split.PerPersonShare, split.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert split: %w", err)
	}

	for i, e := range split.Expenses {
		_, err = tx.ExecContext(ctx,
			s.rebind("INSERT INTO expenses (split_id, position, participant, amount, description) VALUES (?, ?, ?, ?, ?)"),
			split.ID, i, e.Participant, e.Amount, e.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}

	for i, t := range split.Transfers {
		_, err = tx.ExecContext(ctx,
			s.rebind("INSERT INTO transfers (split_id, position, from_participant, to_participant, amount) VALUES (?, ?, ?, ?, ?)"),
			split.ID, i, t.From, t.To, t.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetSplit retrieves a split by ID, including its expenses and transfers.
func (s *Store) GetSplit(ctx context.Context, splitID string) (*models.Split, error) {
	split := &models.Split{}
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT id, group_name, total_amount, per_person_share, created_at FROM splits WHERE id = ?"),
		splitID,
	).Scan(&split.ID, &split.GroupName, &split.TotalAmount, &split.PerPersonShare, &split.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, splitID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}

	if err := s.loadChildren(ctx, split); err != nil {
		return nil, err
	}
	return split, nil
}

// ListSplits returns up to limit splits, newest first.
func (s *Store) ListSplits(ctx context.Context, limit int) ([]*models.Split, error) {
	if limit <= 0 {
		limit = storage.DefaultHistoryLimit
	}
	return s.querySplits(ctx,
		"SELECT id, group_name, total_amount, per_person_share, created_at FROM splits ORDER BY created_at DESC, seq DESC LIMIT ?",
		limit,
	)
}

// ListSplitsByGroup returns every split for a group, newest first.
func (s *Store) ListSplitsByGroup(ctx context.Context, groupName string) ([]*models.Split, error) {
	return s.querySplits(ctx,
		"SELECT id, group_name, total_amount, per_person_share, created_at FROM splits WHERE group_name = ? ORDER BY created_at DESC, seq DESC",
		groupName,
	)
}

// ListGroups returns one summary per group name, most recently active first.
func (s *Store) ListGroups(ctx context.Context) ([]*models.GroupSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_name, COUNT(*), MAX(created_at) FROM splits GROUP BY group_name ORDER BY 3 DESC, 1 ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []*models.GroupSummary{}
	for rows.Next() {
		g := &models.GroupSummary{}
		if err := rows.Scan(&g.Name, &g.SplitCount, &g.LastSplitAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

func (s *Store) querySplits(ctx context.Context, query string, args ...any) ([]*models.Split, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	splits := []*models.Split{}
	for rows.Next() {
		split := &models.Split{}
		if err := rows.Scan(&split.ID, &split.GroupName, &split.TotalAmount, &split.PerPersonShare, &split.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	// Children are loaded after the cursor is closed so a single-connection
	// pool does not deadlock.
	for _, split := range splits {
		if err := s.loadChildren(ctx, split); err != nil {
			return nil, err
		}
	}
	return splits, nil
}

func (s *Store) loadChildren(ctx context.Context, split *models.Split) error {
	rows, err := s.db.QueryContext(ctx,
		s.rebind("SELECT participant, amount, description FROM expenses WHERE split_id = ? ORDER BY position"),
		split.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get expenses: %w", err)
	}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.Participant, &e.Amount, &e.Description); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan expense: %w", err)
		}
		split.Expenses = append(split.Expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expenses: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		s.rebind("SELECT from_participant, to_participant, amount FROM transfers WHERE split_id = ? ORDER BY position"),
		split.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get transfers: %w", err)
	}
	defer rows.Close()

	split.Transfers = []models.Transfer{}
	for rows.Next() {
		var t models.Transfer
		if err := rows.Scan(&t.From, &t.To, &t.Amount); err != nil {
			return fmt.Errorf("failed to scan transfer: %w", err)
		}
		split.Transfers = append(split.Transfers, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate transfers: %w", err)
	}
	return nil
}
