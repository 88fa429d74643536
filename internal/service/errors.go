package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/storage"
)

// engineError maps a calculator failure to a Connect error. Bad input is the
// caller's fault; anything else means the engine broke an invariant.
func engineError(err error) *connect.Error {
	switch {
	case errors.Is(err, calculator.ErrInsufficientParticipants),
		errors.Is(err, calculator.ErrInvalidAmount),
		errors.Is(err, calculator.ErrInvalidParticipant),
		errors.Is(err, calculator.ErrInvalidGroupName):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// errorKind is the metrics label for an engine failure.
func errorKind(err error) string {
	switch {
	case errors.Is(err, calculator.ErrInsufficientParticipants):
		return "insufficient_participants"
	case errors.Is(err, calculator.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, calculator.ErrInvalidParticipant):
		return "invalid_participant"
	case errors.Is(err, calculator.ErrInvalidGroupName):
		return "invalid_group_name"
	case errors.Is(err, calculator.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, calculator.ErrUnbalancedSettlement):
		return "unbalanced_settlement"
	default:
		return "unknown"
	}
}

func storageError(err error) *connect.Error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// contextError reports a caller that stopped waiting.
func contextError(err error) *connect.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeCanceled, err)
}

var errSplitIDRequired = errors.New("split_id is required")
