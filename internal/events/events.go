// Package events publishes domain events about recorded splits to a message
// broker. Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

// SplitCreatedType names the event in message headers.
const SplitCreatedType = "settleup.split.created"

// Publisher sends domain events to a broker.
type Publisher interface {
	PublishSplitCreated(ctx context.Context, event SplitCreated) error
	Close() error
}

// TransferPayload is the wire form of a transfer.
type TransferPayload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// SplitCreated is emitted after a split has been persisted.
type SplitCreated struct {
	SplitID        string            `json:"split_id"`
	GroupName      string            `json:"group_name"`
	TotalAmount    string            `json:"total_amount"`
	PerPersonShare string            `json:"per_person_share"`
	Transfers      []TransferPayload `json:"transfers"`
	OccurredAt     time.Time         `json:"occurred_at"`
}

// NewSplitCreated builds the event for a stored split.
func NewSplitCreated(split *models.Split) SplitCreated {
	transfers := make([]TransferPayload, len(split.Transfers))
	for i, t := range split.Transfers {
		transfers[i] = TransferPayload{From: t.From, To: t.To, Amount: t.Amount.StringFixed(calculator.CurrencyPlaces)}
	}
	return SplitCreated{
		SplitID:        split.ID,
		GroupName:      split.GroupName,
		TotalAmount:    split.TotalAmount.StringFixed(calculator.CurrencyPlaces),
		PerPersonShare: split.PerPersonShare.StringFixed(calculator.CurrencyPlaces),
		Transfers:      transfers,
		OccurredAt:     time.Unix(split.CreatedAt, 0).UTC(),
	}
}

// ToJSON encodes the event body.
func (e SplitCreated) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

var _ Publisher = Nop{}

// Nop discards every event.
type Nop struct{}

func (Nop) PublishSplitCreated(context.Context, SplitCreated) error { return nil }
func (Nop) Close() error                                            { return nil }
