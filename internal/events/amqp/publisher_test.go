package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/events"
)

type fakeChannel struct {
	mu          sync.Mutex
	declared    []string
	kind        string
	published   []amqp091.Publishing
	keys        []string
	declareErr  error
	publishErr  error
	closed      bool
	hasDeadline bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp091.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name)
	f.kind = kind
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.publishErr != nil {
		return f.publishErr
	}
	_, f.hasDeadline = ctx.Deadline()
	f.keys = append(f.keys, exchange+"/"+key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewPublisher_DeclaresDirectExchange(t *testing.T) {
	ch := &fakeChannel{}
	_, err := newPublisher(ch, "settleup.events", "split.created")
	require.NoError(t, err)
	assert.Equal(t, []string{"settleup.events"}, ch.declared)
	assert.Equal(t, "direct", ch.kind)
}

func TestNewPublisher_DeclareError(t *testing.T) {
	_, err := newPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declare exchange")
}

func TestPublisher_PublishSplitCreated(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "settleup.events", "split.created")
	require.NoError(t, err)

	occurred := time.Unix(1700000000, 0).UTC()
	event := events.SplitCreated{SplitID: "abc", GroupName: "Trip", TotalAmount: "10.00", OccurredAt: occurred}
	require.NoError(t, p.PublishSplitCreated(context.Background(), event))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "settleup.events/split.created", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp091.Persistent, msg.DeliveryMode)
	assert.Equal(t, events.SplitCreatedType, msg.Type)
	assert.Equal(t, "abc", msg.MessageId)
	assert.True(t, ch.hasDeadline, "publish should carry a timeout")

	var decoded events.SplitCreated
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_ConcurrentPublish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "e", "k")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = p.PublishSplitCreated(context.Background(), events.SplitCreated{SplitID: "x"})
		}()
	}
	wg.Wait()
	assert.Len(t, ch.published, 20)
}

func TestPublisher_PublishError(t *testing.T) {
	p, err := newPublisher(&fakeChannel{publishErr: amqp091.ErrClosed}, "e", "k")
	require.NoError(t, err)

	err = p.PublishSplitCreated(context.Background(), events.SplitCreated{SplitID: "x"})
	require.ErrorIs(t, err, amqp091.ErrClosed)
}
