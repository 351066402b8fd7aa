package memory

import (
	"context"
	"sync"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"

	"github.com/rs/zerolog"
)

const subscriberBuffer = 16

// Notifier fans payment updates out to in-process subscribers.
// Each subscriber receives updates in publish order on its own goroutine.
type Notifier struct {
	mu   sync.RWMutex
	subs map[string]map[*subscription]struct{}
	log  zerolog.Logger
}

// NewNotifier creates an in-process notifier.
func NewNotifier(log zerolog.Logger) *Notifier {
	return &Notifier{
		subs: make(map[string]map[*subscription]struct{}),
		log:  log,
	}
}

// Publish delivers p to every subscriber of p.ID. A subscriber whose buffer is
// full misses the update.
func (n *Notifier) Publish(_ context.Context, p *domain.Payment) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for sub := range n.subs[p.ID] {
		select {
		case sub.ch <- clonePayment(*p):
		default:
			n.log.Warn().Str("payment_id", p.ID).Msg("subscriber buffer full, dropping update")
		}
	}
	return nil
}

// Subscribe registers handler for updates of paymentID.
func (n *Notifier) Subscribe(_ context.Context, paymentID string, handler func(domain.Payment)) (ports.Subscription, error) {
	sub := &subscription{
		notifier:  n,
		paymentID: paymentID,
		ch:        make(chan domain.Payment, subscriberBuffer),
		done:      make(chan struct{}),
	}

	n.mu.Lock()
	if n.subs[paymentID] == nil {
		n.subs[paymentID] = make(map[*subscription]struct{})
	}
	n.subs[paymentID][sub] = struct{}{}
	n.mu.Unlock()

	go sub.run(handler)
	return sub, nil
}

// Close releases every subscription.
func (n *Notifier) Close() {
	n.mu.Lock()
	all := n.subs
	n.subs = make(map[string]map[*subscription]struct{})
	n.mu.Unlock()

	for _, set := range all {
		for sub := range set {
			sub.stop()
		}
	}
}

func (n *Notifier) remove(sub *subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if set, ok := n.subs[sub.paymentID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(n.subs, sub.paymentID)
		}
	}
}

type subscription struct {
	notifier  *Notifier
	paymentID string
	ch        chan domain.Payment
	done      chan struct{}
	once      sync.Once
}

func (s *subscription) run(handler func(domain.Payment)) {
	for {
		select {
		case <-s.done:
			return
		case p := <-s.ch:
			select {
			case <-s.done:
				return
			default:
			}
			handler(p)
		}
	}
}

func (s *subscription) stop() {
	s.once.Do(func() { close(s.done) })
}

// Unsubscribe stops delivery of further updates.
func (s *subscription) Unsubscribe() error {
	s.notifier.remove(s)
	s.stop()
	return nil
}
