package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const paymentChannelPrefix = "shadowpay:payment:"

// PaymentChannel is the pub/sub channel carrying updates of one payment.
func PaymentChannel(paymentID string) string {
	return paymentChannelPrefix + paymentID
}

// Notifier implements ports.PaymentNotifier with Redis pub/sub.
type Notifier struct {
	client *goredis.Client
	log    zerolog.Logger
}

// NewNotifier creates a Redis-backed payment notifier.
func NewNotifier(client *goredis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{client: client, log: log}
}

// Publish sends the full payment row on its channel.
func (n *Notifier) Publish(ctx context.Context, p *domain.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payment update: %w", err)
	}
	if err := n.client.Publish(ctx, PaymentChannel(p.ID), data).Err(); err != nil {
		return fmt.Errorf("publish payment update: %w", err)
	}
	return nil
}

// Subscribe listens for updates of paymentID. ctx bounds only the subscribe
// handshake; delivery continues until Unsubscribe.
func (n *Notifier) Subscribe(ctx context.Context, paymentID string, handler func(domain.Payment)) (ports.Subscription, error) {
	pubsub := n.client.Subscribe(ctx, PaymentChannel(paymentID))

	// Wait for the subscription to be confirmed so no publish after return is missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", paymentID, err)
	}

	sub := &subscription{pubsub: pubsub, done: make(chan struct{})}
	ch := pubsub.Channel()

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var p domain.Payment
				if err := json.Unmarshal([]byte(msg.Payload), &p); err != nil {
					n.log.Error().Err(err).Str("payment_id", paymentID).Msg("failed to unmarshal payment update")
					continue
				}
				handler(p)
			}
		}
	}()

	return sub, nil
}

type subscription struct {
	pubsub *goredis.PubSub
	done   chan struct{}
	once   sync.Once
	err    error
}

// Unsubscribe closes the underlying pub/sub connection.
func (s *subscription) Unsubscribe() error {
	s.once.Do(func() {
		close(s.done)
		s.err = s.pubsub.Close()
	})
	return s.err
}
