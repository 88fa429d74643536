package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func TestNewSplitCreated(t *testing.T) {
	split := &models.Split{
		ID:             "abc",
		GroupName:      "Trip",
		TotalAmount:    decimal.RequireFromString("500"),
		PerPersonShare: decimal.RequireFromString("500").Div(decimal.NewFromInt(3)),
		Transfers: []models.Transfer{
			{From: "Bob", To: "Alice", Amount: decimal.RequireFromString("66.67")},
			{From: "Carol", To: "Alice", Amount: decimal.NewFromInt(10)},
		},
		CreatedAt: 1700000000,
	}

	event := NewSplitCreated(split)
	assert.Equal(t, "abc", event.SplitID)
	assert.Equal(t, "500.00", event.TotalAmount)
	assert.Equal(t, "166.67", event.PerPersonShare)
	assert.Equal(t, []TransferPayload{
		{From: "Bob", To: "Alice", Amount: "66.67"},
		{From: "Carol", To: "Alice", Amount: "10.00"},
	}, event.Transfers)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), event.OccurredAt)

	data, err := event.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"split_id":"abc"`)
}

type flakyPublisher struct {
	calls int
	err   error
}

func (f *flakyPublisher) PublishSplitCreated(context.Context, SplitCreated) error {
	f.calls++
	return f.err
}

func (f *flakyPublisher) Close() error { return nil }

func TestBreakerPublisher_OpensAfterFailures(t *testing.T) {
	next := &flakyPublisher{err: errors.New("broker down")}
	b := WithBreaker("test", next, BreakerConfig{ConsecutiveFailures: 3, Timeout: time.Hour})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := b.PublishSplitCreated(ctx, SplitCreated{})
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrCircuitOpen))
	}
	assert.Equal(t, "open", b.State())

	err := b.PublishSplitCreated(ctx, SplitCreated{})
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 3, next.calls, "open circuit must not reach the broker")
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	next := &flakyPublisher{}
	b := WithBreaker("test", next, DefaultBreakerConfig)

	require.NoError(t, b.PublishSplitCreated(context.Background(), SplitCreated{}))
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "closed", b.State())
	require.NoError(t, b.Close())
}
