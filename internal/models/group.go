package models

// GroupSummary is a rollup of the splits recorded under one group name.
// Groups have no record of their own; they exist as long as a split names them.
type GroupSummary struct {
	// Name is the group name shared by the splits.
	Name string

	// SplitCount is the number of splits recorded for the group.
	SplitCount int

	// LastSplitAt is the Unix timestamp of the most recent split.
	LastSplitAt int64
}
