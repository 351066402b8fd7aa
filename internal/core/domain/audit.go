package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionPaymentCreate AuditAction = "PAYMENT_CREATE"
	AuditActionPaymentPaid   AuditAction = "PAYMENT_PAID"
	AuditActionPaymentExpire AuditAction = "PAYMENT_EXPIRE"
	AuditActionKioskLock     AuditAction = "KIOSK_LOCK"
	AuditActionKioskUnlock   AuditAction = "KIOSK_UNLOCK"
	AuditActionWalletLogin   AuditAction = "WALLET_LOGIN"
	AuditActionWalletLogout  AuditAction = "WALLET_LOGOUT"
	AuditActionMockSend      AuditAction = "MOCK_SEND"

	AuditActionMerchantOpen   AuditAction = "MERCHANT_SESSION_OPEN"
	AuditActionCheckoutOpen   AuditAction = "CHECKOUT_SESSION_OPEN"
	AuditActionPaymentAttempt AuditAction = "PAYMENT_ATTEMPT"
	AuditActionScanOpen       AuditAction = "SCAN_SESSION_OPEN"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
