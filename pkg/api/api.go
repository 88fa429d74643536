// Package api defines the request and response messages of the
// settleup.v1.SettlementService RPC service.
//
// Messages are plain structs carried by JSONCodec. Money travels as decimal
// strings ("12.50") so no precision is lost to floating point.
package api

// Expense is one payment toward the group pool.
type Expense struct {
	Participant string `json:"participant"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
}

// Balance is one participant's position after settlement.
// Positive balances are owed money; negative balances owe money.
type Balance struct {
	Participant string `json:"participant"`
	TotalPaid   string `json:"total_paid"`
	FairShare   string `json:"fair_share"`
	Balance     string `json:"balance"`
}

// Transfer is a recommended payment from a debtor to a creditor.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Settlement is the computed outcome for a group of expenses.
type Settlement struct {
	GroupName      string      `json:"group_name"`
	TotalAmount    string      `json:"total_amount"`
	PerPersonShare string      `json:"per_person_share"`
	Balances       []*Balance  `json:"balances"`
	Transfers      []*Transfer `json:"transfers"`
}

// Split is a stored settlement record.
type Split struct {
	SplitID    string      `json:"split_id"`
	GroupName  string      `json:"group_name"`
	Expenses   []*Expense  `json:"expenses"`
	CreatedAt  int64       `json:"created_at"`
	Settlement *Settlement `json:"settlement"`
}

// GroupSummary describes the splits recorded under one group name.
type GroupSummary struct {
	Name        string `json:"name"`
	SplitCount  int32  `json:"split_count"`
	LastSplitAt int64  `json:"last_split_at"`
}

type CalculateSettlementRequest struct {
	GroupName string     `json:"group_name"`
	Expenses  []*Expense `json:"expenses"`
}

type CalculateSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

type CreateSplitRequest struct {
	GroupName string     `json:"group_name"`
	Expenses  []*Expense `json:"expenses"`
}

type CreateSplitResponse struct {
	SplitID    string      `json:"split_id"`
	CreatedAt  int64       `json:"created_at"`
	Settlement *Settlement `json:"settlement"`
}

type GetSplitRequest struct {
	SplitID string `json:"split_id"`
}

type GetSplitResponse struct {
	Split *Split `json:"split"`
}

type ListSplitHistoryRequest struct {
	// Limit caps the number of splits returned; zero or negative uses the server default.
	Limit int32 `json:"limit,omitempty"`
}

type ListSplitHistoryResponse struct {
	Splits []*Split `json:"splits"`
}

type ListSplitsByGroupRequest struct {
	GroupName string `json:"group_name"`
}

type ListSplitsByGroupResponse struct {
	Splits []*Split `json:"splits"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*GroupSummary `json:"groups"`
}
