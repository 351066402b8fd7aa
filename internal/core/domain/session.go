package domain

import "time"

// MerchantState is the state of a merchant create flow.
type MerchantState string

const (
	MerchantStateCreating       MerchantState = "creating"
	MerchantStatePending        MerchantState = "pending"
	MerchantStatePaid           MerchantState = "paid"
	MerchantStateAutoGenerating MerchantState = "auto-generating"
)

// CheckoutState is the state of a payer pay flow.
type CheckoutState string

const (
	CheckoutStateIdle         CheckoutState = "idle"
	CheckoutStateSigning      CheckoutState = "signing"
	CheckoutStateBroadcasting CheckoutState = "broadcasting"
	CheckoutStateSuccess      CheckoutState = "success"
	CheckoutStateError        CheckoutState = "error"
)

// ScanState is the state of a QR scan flow.
type ScanState string

const (
	ScanStateIdle       ScanState = "idle"
	ScanStateScanning   ScanState = "scanning"
	ScanStateClassified ScanState = "classified"
	ScanStateError      ScanState = "error"
)

// KioskState is the state of the kiosk lock.
type KioskState string

const (
	KioskStateUnlocked KioskState = "unlocked"
	KioskStateLocked   KioskState = "locked"
	KioskStateCooldown KioskState = "cooldown"
)

// KioskPresentation lists advisory front end behaviour while locked.
// None of it is a security boundary.
type KioskPresentation struct {
	Fullscreen       bool     `json:"fullscreen"`
	BlockedShortcuts []string `json:"blocked_shortcuts"`
	WarnOnUnload     bool     `json:"warn_on_unload"`
}

// DefaultKioskPresentation returns the flags requested when kiosk mode starts.
func DefaultKioskPresentation() KioskPresentation {
	return KioskPresentation{
		Fullscreen:       true,
		BlockedShortcuts: []string{"F5", "Ctrl+R", "Ctrl+Shift+I", "Ctrl+U", "F12", "Alt+F4"},
		WarnOnUnload:     true,
	}
}

// KioskStatus is a snapshot of the kiosk lock.
type KioskStatus struct {
	Enabled       bool               `json:"enabled"`
	State         KioskState         `json:"state"`
	Attempts      int                `json:"failed_attempts"`
	CooldownUntil *time.Time         `json:"cooldown_until,omitempty"`
	Presentation  *KioskPresentation `json:"presentation,omitempty"`
}

// MerchantView is a snapshot of a merchant session.
type MerchantView struct {
	SessionID string        `json:"session_id"`
	State     MerchantState `json:"state"`
	Payment   *Payment      `json:"payment,omitempty"`
	PayLink   string        `json:"pay_link,omitempty"`
	Terms     *PaymentTerms `json:"terms,omitempty"`
	Countdown int           `json:"countdown,omitempty"`
	Error     string        `json:"error,omitempty"`
	Kiosk     KioskStatus   `json:"kiosk"`
}

// CheckoutView is a snapshot of a payer session.
type CheckoutView struct {
	SessionID string        `json:"session_id"`
	State     CheckoutState `json:"state"`
	Payment   *Payment      `json:"payment,omitempty"`
	TxHash    string        `json:"tx_hash,omitempty"`
	Fee       *TransferFee  `json:"fee,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// ScanView is a snapshot of a scan session.
type ScanView struct {
	SessionID string      `json:"session_id"`
	State     ScanState   `json:"state"`
	Result    *ScanResult `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	// Redirect is true once a payment link is ready to navigate.
	Redirect bool `json:"redirect"`
}
