package models

import "github.com/shopspring/decimal"

// Transfer represents a payment from a debtor to a creditor that settles
// part of a split.
type Transfer struct {
	// From is the participant who pays (debtor).
	From string

	// To is the participant who receives (creditor).
	To string

	// Amount is the payment amount, in whole cents.
	Amount decimal.Decimal
}
