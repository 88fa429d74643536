package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig tunes the circuit breaker around a Publisher.
type BreakerConfig struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// Timeout is how long the circuit stays open before a trial publish.
	Timeout time.Duration
}

// DefaultBreakerConfig opens after five straight failures and retries after 30s.
var DefaultBreakerConfig = BreakerConfig{ConsecutiveFailures: 5, Timeout: 30 * time.Second}

// ErrCircuitOpen is returned while the broker is considered unavailable.
var ErrCircuitOpen = errors.New("event publisher unavailable (circuit breaker open)")

var _ Publisher = (*BreakerPublisher)(nil)

// BreakerPublisher stops calling a failing broker for a while, so a dead
// broker does not add its timeout to every request.
type BreakerPublisher struct {
	next    Publisher
	breaker *gobreaker.CircuitBreaker
}

// WithBreaker wraps next in a circuit breaker named name.
func WithBreaker(name string, next Publisher, cfg BreakerConfig) *BreakerPublisher {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Event publisher circuit state changed", "publisher", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerPublisher{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

func (b *BreakerPublisher) PublishSplitCreated(ctx context.Context, event SplitCreated) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.PublishSplitCreated(ctx, event)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}
	return err
}

// State reports the breaker state ("closed", "half-open" or "open").
func (b *BreakerPublisher) State() string {
	return b.breaker.State().String()
}

func (b *BreakerPublisher) Close() error {
	return b.next.Close()
}
