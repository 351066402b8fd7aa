package service

import (
	"fmt"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"
)

// KioskOptions tunes the kiosk lock.
type KioskOptions struct {
	MinPasswordLength int
	MaxAttempts       int
	Cooldown          time.Duration
}

// DefaultKioskOptions: 4 character minimum, 3 attempts, 30s cooldown.
func DefaultKioskOptions() KioskOptions {
	return KioskOptions{MinPasswordLength: 4, MaxAttempts: 3, Cooldown: 30 * time.Second}
}

// KioskLock guards a merchant screen with a password. It never touches
// payment state. Callers serialise access.
type KioskLock struct {
	hash ports.HashService
	opts KioskOptions
	now  func() time.Time

	enabled       bool
	passwordHash  string
	attempts      int
	cooldownUntil time.Time
}

// NewKioskLock creates an unlocked kiosk lock.
func NewKioskLock(hash ports.HashService, opts KioskOptions) *KioskLock {
	def := DefaultKioskOptions()
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = def.MinPasswordLength
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = def.Cooldown
	}
	return &KioskLock{hash: hash, opts: opts, now: time.Now}
}

// Enable locks the screen behind password. A lock that is already enabled,
// including one in cooldown, only opens through Unlock.
func (k *KioskLock) Enable(password string) (domain.KioskStatus, error) {
	if k.enabled {
		return k.Status(), apperror.ErrKioskAlreadyEnabled()
	}
	if password == "" {
		return k.Status(), apperror.ErrKioskPasswordRequired()
	}
	if len([]rune(password)) < k.opts.MinPasswordLength {
		return k.Status(), apperror.ErrKioskPasswordTooShort(k.opts.MinPasswordLength)
	}

	hashed, err := k.hash.Hash(password)
	if err != nil {
		return k.Status(), apperror.InternalError(fmt.Errorf("hash kiosk password: %w", err))
	}

	k.enabled = true
	k.passwordHash = hashed
	k.attempts = 0
	k.cooldownUntil = time.Time{}

	status := k.Status()
	presentation := domain.DefaultKioskPresentation()
	status.Presentation = &presentation
	return status, nil
}

// Unlock exits kiosk mode when password matches. The last allowed mismatch
// starts a cooldown during which every attempt is rejected.
func (k *KioskLock) Unlock(password string) (domain.KioskStatus, error) {
	if !k.enabled {
		return k.Status(), apperror.ErrKioskNotEnabled()
	}

	now := k.now()
	if !k.cooldownUntil.IsZero() {
		if now.Before(k.cooldownUntil) {
			return k.Status(), apperror.ErrKioskCooldown(k.cooldownUntil.Sub(now))
		}
		k.attempts = 0
		k.cooldownUntil = time.Time{}
	}

	ok, err := k.hash.Verify(password, k.passwordHash)
	if err != nil {
		return k.Status(), apperror.InternalError(fmt.Errorf("verify kiosk password: %w", err))
	}

	if ok {
		k.enabled = false
		k.passwordHash = ""
		k.attempts = 0
		return k.Status(), nil
	}

	k.attempts++
	if k.attempts >= k.opts.MaxAttempts {
		k.cooldownUntil = now.Add(k.opts.Cooldown)
		return k.Status(), apperror.ErrKioskCooldown(k.opts.Cooldown)
	}
	return k.Status(), apperror.ErrKioskWrongPassword(k.opts.MaxAttempts - k.attempts)
}

// Locked reports whether the screen is currently behind the lock.
func (k *KioskLock) Locked() bool {
	return k.enabled
}

// Status returns a snapshot of the lock.
func (k *KioskLock) Status() domain.KioskStatus {
	s := domain.KioskStatus{
		Enabled:  k.enabled,
		State:    domain.KioskStateUnlocked,
		Attempts: k.attempts,
	}
	if !k.enabled {
		return s
	}
	s.State = domain.KioskStateLocked
	if !k.cooldownUntil.IsZero() && k.now().Before(k.cooldownUntil) {
		until := k.cooldownUntil
		s.State = domain.KioskStateCooldown
		s.CooldownUntil = &until
	}
	return s
}
