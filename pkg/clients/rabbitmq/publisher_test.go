package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	declareErr error
	publishErr error
	exchange   string
	key        string
	msg        amqp.Publishing
	closed     bool
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if f.declareErr != nil {
		return f.declareErr
	}
	f.declared = append(f.declared, name+":"+kind)
	return nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newPublisher(ch, "rentaid.leads", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"rentaid.leads:direct"}, ch.declared)

	require.NoError(t, p.Publish(context.Background(), "lead.created", "12", []byte(`{"record_id":"12"}`)))

	assert.Equal(t, "rentaid.leads", ch.exchange)
	assert.Equal(t, "lead.created", ch.key)
	assert.Equal(t, "12", ch.msg.MessageId)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, "application/json", ch.msg.ContentType)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_Errors(t *testing.T) {
	_, err := newPublisher(&fakeChannel{declareErr: errors.New("access refused")}, "rentaid.leads", nil)
	assert.ErrorContains(t, err, "failed to declare exchange")

	p, err := newPublisher(&fakeChannel{publishErr: amqp.ErrClosed}, "rentaid.leads", nil)
	require.NoError(t, err)
	err = p.Publish(context.Background(), "lead.created", "1", nil)
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestNewPublishing(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 30, 0, 0, time.FixedZone("IST", 19800))
	msg := newPublishing("9", []byte("{}"), now)
	assert.Equal(t, now.UTC(), msg.Timestamp)
	assert.Equal(t, []byte("{}"), msg.Body)
}
