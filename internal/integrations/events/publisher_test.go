package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	"github.com/m04kA/SMC-SlotBookingService/pkg/logger"
	"github.com/m04kA/SMC-SlotBookingService/pkg/types"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent   []published
	err    error
	closed bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func testBooking() *domain.Booking {
	notes := "bring reports"
	return &domain.Booking{
		ID:           7,
		Subject:      domain.Subject{VisitorID: "visitor-1"},
		ContactName:  "Mona Adel",
		ContactPhone: "01012345678",
		Date:         types.NewDate(2025, time.October, 15),
		Slot:         types.MustParseTimeLabel("09:00 AM"),
		Category:     "consultation",
		Notes:        &notes,
	}
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "booking.events", log: logger.NewDiscard()}
	at := time.Date(2025, 10, 14, 8, 0, 0, 0, time.FixedZone("UTC+2", 7200))

	err := p.Publish(context.Background(), NewBookingEvent(TypeBookingCreated, testBooking(), at))
	require.NoError(t, err)
	require.Len(t, ch.sent, 1)

	sent := ch.sent[0]
	assert.Equal(t, "booking.events", sent.exchange)
	assert.Equal(t, "booking.created", sent.key)
	assert.Equal(t, "application/json", sent.msg.ContentType)
	assert.Equal(t, amqp.Persistent, sent.msg.DeliveryMode)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(sent.msg.Body, &body))
	assert.Equal(t, "booking.created", body["type"])
	assert.Equal(t, float64(7), body["bookingId"])
	assert.Equal(t, "visitor-1", body["visitorId"])
	assert.NotContains(t, body, "userId")
	assert.Equal(t, "2025-10-15", body["date"])
	assert.Equal(t, "09:00 AM", body["slot"])
	assert.Equal(t, "2025-10-14T06:00:00Z", body["occurredAt"])

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &Publisher{ch: ch, exchange: "booking.events", log: logger.NewDiscard()}

	err := p.Publish(context.Background(), NewBookingEvent(TypeBookingCancelled, testBooking(), time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNoop(t *testing.T) {
	var n Noop
	assert.NoError(t, n.Publish(context.Background(), BookingEvent{}))
	assert.NoError(t, n.Close())
}
