// Package models defines the persisted records of settleup.
//
// # Records
//
//   - Split: one settled group of expenses, as submitted and as computed
//   - Expense: a single payment inside a Split
//   - Transfer: a recommended payment between two participants
//   - GroupSummary: per-group rollup used for listing groups
//
// Participants and groups are identified by name strings; there are no user
// accounts. Balances are not stored: they are recomputed from the expenses
// whenever a Split is read, so the stored record stays the single source of
// truth.
//
// Money fields use shopspring/decimal and are persisted as decimal text, never
// as floating point.
package models
