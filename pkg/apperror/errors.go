package apperror

import (
	"fmt"
	"net/http"
	"time"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Please enter a valid amount", http.StatusBadRequest)
}

func ErrInvalidToken(symbol string) *AppError {
	return New("VAL_002", fmt.Sprintf("Unsupported token: %s", symbol), http.StatusBadRequest)
}

func ErrInvalidReceiver(receiver string) *AppError {
	return New("VAL_003", fmt.Sprintf("Invalid receiver address: %s", receiver), http.StatusBadRequest)
}

// Validation returns a generic validation error.
func Validation(message string) *AppError {
	return New("VAL_004", message, http.StatusBadRequest)
}

// ---- Payment lifecycle (PAY) ----

func ErrNotFound(entity string) *AppError {
	return New("PAY_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidTransition(from, to string) *AppError {
	return New("PAY_002", fmt.Sprintf("Cannot move payment from %s to %s", from, to), http.StatusConflict)
}

func ErrAlreadyPaid() *AppError {
	return New("PAY_003", "Payment has already been paid", http.StatusConflict)
}

// ErrPaymentFailed carries the user-facing message produced by error classification.
func ErrPaymentFailed(message string, err error) *AppError {
	return Wrap("PAY_004", message, http.StatusBadGateway, err)
}

func ErrInvalidState(message string) *AppError {
	return New("PAY_005", message, http.StatusConflict)
}

func ErrCreateFailed(err error) *AppError {
	return Wrap("PAY_006", "Failed to create payment. Please try again.", http.StatusBadGateway, err)
}

// ---- Wallet (WAL) ----

func ErrWalletNotConnected() *AppError {
	return New("WAL_001", "Wallet not connected", http.StatusUnauthorized)
}

func ErrInsufficientBalance(token string) *AppError {
	msg := "Insufficient balance"
	if token != "" {
		msg = fmt.Sprintf("Insufficient %s balance", token)
	}
	return New("WAL_002", msg, http.StatusPaymentRequired)
}

func ErrTokenNotFound(symbol string) *AppError {
	return New("WAL_003", fmt.Sprintf("Token %s not found", symbol), http.StatusUnprocessableEntity)
}

func ErrWalletGateway(err error) *AppError {
	return Wrap("WAL_004", "Wallet service unavailable", http.StatusBadGateway, err)
}

func ErrInsufficientFee(required string) *AppError {
	return New("WAL_005", fmt.Sprintf("Insufficient ETH for fees. You need at least %s ETH for transaction fees.", required), http.StatusPaymentRequired)
}

func ErrNetworkCongestion() *AppError {
	return New("WAL_006", "Transaction failed due to network congestion", http.StatusServiceUnavailable)
}

func ErrUnsupportedOperation(op string) *AppError {
	return New("WAL_007", fmt.Sprintf("Operation %s is not supported by this wallet", op), http.StatusBadRequest)
}

// ---- Kiosk (KIOSK) ----

func ErrKioskPasswordRequired() *AppError {
	return New("KIOSK_001", "Please set a password to enable kiosk mode", http.StatusBadRequest)
}

func ErrKioskPasswordTooShort(min int) *AppError {
	return New("KIOSK_002", fmt.Sprintf("Password must be at least %d characters long", min), http.StatusBadRequest)
}

func ErrKioskWrongPassword(remaining int) *AppError {
	return New("KIOSK_003", fmt.Sprintf("Incorrect password. %d attempts remaining.", remaining), http.StatusUnauthorized)
}

func ErrKioskCooldown(retryAfter time.Duration) *AppError {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	return New("KIOSK_004", fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", secs), http.StatusTooManyRequests)
}

func ErrKioskNotEnabled() *AppError {
	return New("KIOSK_005", "Kiosk mode is not enabled", http.StatusConflict)
}

func ErrKioskAlreadyEnabled() *AppError {
	return New("KIOSK_006", "Kiosk mode is already enabled", http.StatusConflict)
}

// ---- Scanning (SCAN) ----

func ErrCameraUnavailable(err error) *AppError {
	return Wrap("SCAN_001", "Failed to access camera. Please check permissions.", http.StatusForbidden, err)
}

func ErrNotScanning() *AppError {
	return New("SCAN_002", "Scanner is not running", http.StatusConflict)
}

func ErrScanProcessing(err error) *AppError {
	return Wrap("SCAN_003", "Failed to process QR code. Please try again.", http.StatusUnprocessableEntity, err)
}

// ---- Authentication (AUTH) ----

func ErrInvalidSessionToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrSessionNotFound(kind string) *AppError {
	return New("AUTH_002", fmt.Sprintf("%s session not found", kind), http.StatusNotFound)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_002", "Internal database error", http.StatusInternalServerError, err)
}

func ErrNotifierError(err error) *AppError {
	return Wrap("SYS_003", "Notification channel failure", http.StatusServiceUnavailable, err)
}
