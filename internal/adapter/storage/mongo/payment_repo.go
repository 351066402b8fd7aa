package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shadowpay/internal/core/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type paymentDocument struct {
	ID            string               `bson:"_id"`
	Amount        primitive.Decimal128 `bson:"amount"`
	Token         string               `bson:"token"`
	Comment       string               `bson:"comment"`
	Receiver      string               `bson:"receiver"`
	Status        string               `bson:"status"`
	SenderAddress *string              `bson:"sender_address,omitempty"`
	TxHash        *string              `bson:"tx_hash,omitempty"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at"`
}

func toDocument(p *domain.Payment) (*paymentDocument, error) {
	amount, err := primitive.ParseDecimal128(p.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("convert amount: %w", err)
	}
	return &paymentDocument{
		ID:            p.ID,
		Amount:        amount,
		Token:         string(p.Token),
		Comment:       p.Comment,
		Receiver:      p.Receiver,
		Status:        string(p.Status),
		SenderAddress: p.SenderAddress,
		TxHash:        p.TxHash,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func (d *paymentDocument) toDomain() (*domain.Payment, error) {
	amount, err := decimal.NewFromString(d.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("parse payment amount: %w", err)
	}
	return &domain.Payment{
		ID:            d.ID,
		Amount:        amount,
		Token:         domain.Token(d.Token),
		Comment:       d.Comment,
		Receiver:      d.Receiver,
		Status:        domain.PaymentStatus(d.Status),
		SenderAddress: d.SenderAddress,
		TxHash:        d.TxHash,
		CreatedAt:     d.CreatedAt.UTC(),
		UpdatedAt:     d.UpdatedAt.UTC(),
	}, nil
}

// PaymentRepo implements ports.PaymentRepository on a MongoDB collection.
type PaymentRepo struct {
	coll *mongo.Collection
}

// NewPaymentRepo creates a MongoDB-backed payment repository.
func NewPaymentRepo(coll *mongo.Collection) *PaymentRepo {
	return &PaymentRepo{coll: coll}
}

// Create inserts a new payment document.
func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	doc, err := toDocument(p)
	if err != nil {
		return err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	var doc paymentDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain()
}

// UpdateStatus changes the status of a pending payment with a single
// filtered findAndModify, so a concurrent second transition finds nothing.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate, at time.Time) (*domain.Payment, error) {
	set := bson.M{
		"status":     string(update.Status),
		"updated_at": at,
	}
	if update.SenderAddress != "" {
		set["sender_address"] = update.SenderAddress
	}
	if update.TxHash != "" {
		set["tx_hash"] = update.TxHash
	}

	filter := bson.M{"_id": id, "status": string(domain.PaymentStatusPending)}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc paymentDocument
	err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	return doc.toDomain()
}

// List returns payments newest first.
func (r *PaymentRepo) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []paymentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}

	payments := make([]domain.Payment, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, nil
}
