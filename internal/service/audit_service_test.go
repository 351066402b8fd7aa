package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestAuditService_Log_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, log *domain.AuditLog) error {
			if log.Action != domain.AuditActionPaymentCreate {
				t.Errorf("expected PAYMENT_CREATE, got %s", log.Action)
			}
			if log.ID == uuid.Nil || log.CreatedAt.IsZero() {
				t.Errorf("expected id and timestamp to be filled")
			}
			close(done)
			return nil
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{
		Action:       domain.AuditActionPaymentCreate,
		ResourceType: "payment",
		ResourceID:   "abc",
		IPAddress:    "127.0.0.1",
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not persisted in time")
	}
}

func TestAuditService_Log_RepoErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAuditRepository(ctrl)
	svc := NewAuditService(mockRepo, newTestLogger())

	done := make(chan struct{})
	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *domain.AuditLog) error {
			close(done)
			return errors.New("db down")
		},
	)

	svc.Log(context.Background(), &domain.AuditLog{Action: domain.AuditActionKioskLock})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("audit log not attempted in time")
	}
}

func TestAuditService_Log_NilRepo(t *testing.T) {
	svc := NewAuditService(nil, newTestLogger())

	svc.Log(context.Background(), &domain.AuditLog{
		Action:       domain.AuditActionWalletLogin,
		ResourceType: "wallet_session",
		IPAddress:    "127.0.0.1",
	})

	time.Sleep(50 * time.Millisecond) // let goroutine run
}

func TestNewAuditEntry_Details(t *testing.T) {
	entry := newAuditEntry(domain.AuditActionPaymentPaid, "payment", "abc", "1.2.3.4", map[string]any{"tx_hash": "0xabc"})

	assert.Equal(t, domain.AuditActionPaymentPaid, entry.Action)
	assert.JSONEq(t, `{"tx_hash":"0xabc"}`, entry.Details)

	entry = newAuditEntry(domain.AuditActionKioskUnlock, "merchant_session", "s1", "", nil)
	assert.Empty(t, entry.Details)
}
