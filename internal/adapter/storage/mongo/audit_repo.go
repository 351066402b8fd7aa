package mongo

import (
	"context"
	"fmt"
	"time"

	"shadowpay/internal/core/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

type auditDocument struct {
	ID           string    `bson:"_id"`
	Action       string    `bson:"action"`
	ResourceType string    `bson:"resource_type"`
	ResourceID   string    `bson:"resource_id"`
	Details      string    `bson:"details,omitempty"`
	IPAddress    string    `bson:"ip_address,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

// AuditRepo implements ports.AuditRepository on a MongoDB collection.
type AuditRepo struct {
	coll *mongo.Collection
}

func NewAuditRepo(coll *mongo.Collection) *AuditRepo {
	return &AuditRepo{coll: coll}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	_, err := r.coll.InsertOne(ctx, auditDocument{
		ID:           log.ID.String(),
		Action:       string(log.Action),
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		Details:      log.Details,
		IPAddress:    log.IPAddress,
		CreatedAt:    log.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
