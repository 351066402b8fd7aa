package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"shadowpay/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayment(id string, created time.Time) *domain.Payment {
	return &domain.Payment{
		ID:        id,
		Amount:    decimal.RequireFromString("1.5"),
		Token:     domain.TokenUSDC,
		Comment:   "lunch",
		Receiver:  "0xreceiver123",
		Status:    domain.PaymentStatusPending,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestPaymentRepo_CreateAndGet(t *testing.T) {
	repo := NewPaymentRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newPayment("a", time.Now())))
	assert.Error(t, repo.Create(ctx, newPayment("a", time.Now())), "duplicate id")

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "lunch", got.Comment)

	missing, err := repo.GetByID(ctx, "zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPaymentRepo_UpdateStatusOnlyFromPending(t *testing.T) {
	repo := NewPaymentRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPayment("a", time.Now())))

	at := time.Now().Add(time.Minute)
	paid, err := repo.UpdateStatus(ctx, "a", domain.StatusUpdate{Status: domain.PaymentStatusPaid, SenderAddress: "0xs", TxHash: "0xabc"}, at)
	require.NoError(t, err)
	require.NotNil(t, paid)
	assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
	assert.Equal(t, "0xabc", *paid.TxHash)
	assert.Equal(t, at, paid.UpdatedAt)

	again, err := repo.UpdateStatus(ctx, "a", domain.StatusUpdate{Status: domain.PaymentStatusPaid, SenderAddress: "0xs", TxHash: "0xdef"}, at)
	require.NoError(t, err)
	assert.Nil(t, again)

	stored, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, "0xabc", *stored.TxHash)
}

func TestPaymentRepo_ReturnsCopies(t *testing.T) {
	repo := NewPaymentRepo()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newPayment("a", time.Now())))

	got, _ := repo.GetByID(ctx, "a")
	got.Status = domain.PaymentStatusExpired

	again, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, domain.PaymentStatusPending, again.Status)
}

func TestPaymentRepo_ListNewestFirst(t *testing.T) {
	repo := NewPaymentRepo()
	ctx := context.Background()
	base := time.Now()
	require.NoError(t, repo.Create(ctx, newPayment("old", base)))
	require.NoError(t, repo.Create(ctx, newPayment("new", base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, newPayment("mid", base.Add(500*time.Millisecond))))

	list, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "mid", list[1].ID)
}

func TestKVStore(t *testing.T) {
	kv := NewKVStore()
	ctx := context.Background()

	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
	require.NoError(t, kv.Set(ctx, "k", []byte("v2")))
	v, _ = kv.Get(ctx, "k")
	assert.Equal(t, "v2", string(v))

	require.NoError(t, kv.Remove(ctx, "k"))
	v, _ = kv.Get(ctx, "k")
	assert.Nil(t, v)
}

func TestNotifier_DeliversInOrderUntilUnsubscribed(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	defer n.Close()
	ctx := context.Background()

	var mu sync.Mutex
	var got []domain.PaymentStatus
	received := make(chan struct{}, 4)

	sub, err := n.Subscribe(ctx, "a", func(p domain.Payment) {
		mu.Lock()
		got = append(got, p.Status)
		mu.Unlock()
		received <- struct{}{}
	})
	require.NoError(t, err)

	p := newPayment("a", time.Now())
	require.NoError(t, n.Publish(ctx, p))
	p.Status = domain.PaymentStatusPaid
	require.NoError(t, n.Publish(ctx, p))

	// Updates for other ids are not delivered.
	require.NoError(t, n.Publish(ctx, newPayment("b", time.Now())))

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(time.Second):
			t.Fatal("update not delivered")
		}
	}

	require.NoError(t, sub.Unsubscribe())
	require.NoError(t, n.Publish(ctx, p))

	select {
	case <-received:
		t.Fatal("update delivered after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.PaymentStatus{domain.PaymentStatusPending, domain.PaymentStatusPaid}, got)
}
