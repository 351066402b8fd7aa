package mongo

import (
	"context"
	"testing"
	"time"

	"shadowpay/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func paymentDoc(t *testing.T, id, amount, status string, created time.Time, txHash string) bson.D {
	t.Helper()
	dec, err := primitive.ParseDecimal128(amount)
	require.NoError(t, err)

	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "amount", Value: dec},
		{Key: "token", Value: "USDC"},
		{Key: "comment", Value: "lunch"},
		{Key: "receiver", Value: "0xreceiver1234567890"},
		{Key: "status", Value: status},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
	}
	if txHash != "" {
		doc = append(doc,
			bson.E{Key: "sender_address", Value: "0xsender"},
			bson.E{Key: "tx_hash", Value: txHash},
		)
	}
	return doc
}

func TestPaymentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ns := "shadowpay.payments"

	mt.Run("create", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &domain.Payment{
			ID:        "p1",
			Amount:    decimal.RequireFromString("1.5"),
			Token:     domain.TokenUSDC,
			Receiver:  "0xreceiver1234567890",
			Status:    domain.PaymentStatusPending,
			CreatedAt: created,
			UpdatedAt: created,
		})
		assert.NoError(mt, err)
	})

	mt.Run("create duplicate", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key error",
		}))

		err := repo.Create(context.Background(), &domain.Payment{ID: "p1", Amount: decimal.NewFromInt(1)})
		assert.ErrorContains(mt, err, "insert payment")
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			paymentDoc(mt.T, "p1", "1.5", "pending", created, "")))

		p, err := repo.GetByID(context.Background(), "p1")
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, "p1", p.ID)
		assert.True(mt, p.Amount.Equal(decimal.RequireFromString("1.5")))
		assert.Equal(mt, domain.TokenUSDC, p.Token)
		assert.Equal(mt, domain.PaymentStatusPending, p.Status)
		assert.Nil(mt, p.TxHash)
		assert.Equal(mt, created, p.CreatedAt)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		p, err := repo.GetByID(context.Background(), "missing")
		require.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("update status paid", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: paymentDoc(mt.T, "p1", "1.5", "paid", created, "0xabc")},
		))

		p, err := repo.UpdateStatus(context.Background(), "p1", domain.StatusUpdate{
			Status: domain.PaymentStatusPaid, SenderAddress: "0xsender", TxHash: "0xabc",
		}, created.Add(time.Minute))
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, domain.PaymentStatusPaid, p.Status)
		require.NotNil(mt, p.TxHash)
		assert.Equal(mt, "0xabc", *p.TxHash)
	})

	mt.Run("update status no pending match", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		p, err := repo.UpdateStatus(context.Background(), "p1", domain.StatusUpdate{
			Status: domain.PaymentStatusExpired,
		}, created)
		require.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewPaymentRepo(mt.Coll)
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			paymentDoc(mt.T, "newer", "2", "pending", created.Add(time.Hour), ""),
			paymentDoc(mt.T, "older", "0.25", "expired", created, ""))
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		list, err := repo.List(context.Background(), 10)
		require.NoError(mt, err)
		require.Len(mt, list, 2)
		assert.Equal(mt, "newer", list[0].ID)
		assert.Equal(mt, domain.PaymentStatusExpired, list[1].Status)
		assert.True(mt, list[1].Amount.Equal(decimal.RequireFromString("0.25")))
	})

	mt.Run("audit create", func(mt *mtest.T) {
		repo := NewAuditRepo(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &domain.AuditLog{
			ID:        uuid.New(),
			Action:    domain.AuditActionPaymentCreate,
			CreatedAt: created,
		})
		assert.NoError(mt, err)
	})
}
