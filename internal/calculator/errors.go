package calculator

import "errors"

var (
	// ErrInsufficientParticipants is returned when a group has fewer than two
	// entries or fewer than two distinct participants.
	ErrInsufficientParticipants = errors.New("at least two participants are required")

	// ErrInvalidAmount is returned for negative, non-numeric or non-finite amounts.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidParticipant is returned when an entry has a blank participant name.
	ErrInvalidParticipant = errors.New("participant name is required")

	// ErrInvalidGroupName is returned when the group name is blank.
	ErrInvalidGroupName = errors.New("group name is required")

	// ErrDivisionByZero is returned when a fair share is requested for zero participants.
	ErrDivisionByZero = errors.New("cannot split among zero participants")

	// ErrUnbalancedSettlement is returned when matching leaves balances that
	// cannot be explained by rounding. The computation is rejected as a whole.
	ErrUnbalancedSettlement = errors.New("settlement does not balance")
)
