package service

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wonderland-tickets/internal/queue"
)

// silentBroker accepts TCP connections and never answers the AMQP handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	go func() {
		var held []net.Conn
		defer func() {
			for _, c := range held {
				_ = c.Close()
			}
		}()
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			held = append(held, c)
		}
	}()
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestAMQPPublisher_HandshakeBoundByContext(t *testing.T) {
	p := NewAMQPPublisher(silentBroker(t))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := p.PublishSeatsBooked(ctx, queue.SeatsBookedEvent{EventID: "e1", ShowingName: "Dune", Seats: 1})
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestAMQPPublisher_ExpiredContext(t *testing.T) {
	p := NewAMQPPublisher(silentBroker(t))

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)
	err := p.PublishSeatsBooked(ctx, queue.SeatsBookedEvent{EventID: "e2"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
