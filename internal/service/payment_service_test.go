package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/core/ports/mocks"
	"shadowpay/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type paymentTestDeps struct {
	svc      *PaymentServiceImpl
	repo     *mocks.MockPaymentRepository
	notifier *mocks.MockPaymentNotifier
	ctrl     *gomock.Controller
}

func setupPaymentService(t *testing.T) *paymentTestDeps {
	ctrl := gomock.NewController(t)
	d := &paymentTestDeps{
		repo:     mocks.NewMockPaymentRepository(ctrl),
		notifier: mocks.NewMockPaymentNotifier(ctrl),
		ctrl:     ctrl,
	}
	d.svc = NewPaymentService(d.repo, d.notifier, nil, newTestLogger())
	d.svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return d
}

func pendingPayment(id string) *domain.Payment {
	return &domain.Payment{
		ID:       id,
		Amount:   decimal.RequireFromString("1.5"),
		Token:    domain.TokenUSDC,
		Comment:  "lunch",
		Receiver: "0x1234567890abcdef",
		Status:   domain.PaymentStatusPending,
	}
}

func strPtr(s string) *string { return &s }

// ==================== Create ====================

func TestPaymentService_Create_Success(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	var stored *domain.Payment
	d.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *domain.Payment) error {
		stored = p
		return nil
	})

	p, err := d.svc.Create(ctx, ports.CreatePaymentRequest{
		Amount:   decimal.RequireFromString("1.5"),
		Token:    domain.TokenUSDC,
		Comment:  "lunch",
		Receiver: "0xreceiver123",
	})
	require.NoError(t, err)
	assert.Same(t, stored, p)
	assert.Len(t, p.ID, 32)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.Equal(t, domain.TokenUSDC, p.Token)
	assert.Equal(t, "lunch", p.Comment)
	assert.Equal(t, "0xreceiver123", p.Receiver)
	assert.Equal(t, domain.PaymentStatusPending, p.Status)
	assert.Nil(t, p.TxHash)
	assert.Nil(t, p.SenderAddress)
	assert.Equal(t, d.svc.now(), p.CreatedAt)
}

func TestPaymentService_Create_RejectsNonPositiveAmount(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	for _, amt := range []string{"0", "-1", "-0.0001"} {
		t.Run(amt, func(t *testing.T) {
			// No repo expectations: nothing may be persisted.
			_, err := d.svc.Create(context.Background(), ports.CreatePaymentRequest{
				Amount: decimal.RequireFromString(amt),
				Token:  domain.TokenETH,
			})
			assertAppError(t, err, "VAL_001")
		})
	}
}

func TestPaymentService_Create_RejectsUnknownToken(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Create(context.Background(), ports.CreatePaymentRequest{
		Amount: decimal.NewFromInt(1),
		Token:  domain.Token("DOGE"),
	})
	assertAppError(t, err, "VAL_002")
}

func TestPaymentService_Create_RepoError(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	_, err := d.svc.Create(context.Background(), ports.CreatePaymentRequest{
		Amount: decimal.NewFromInt(1),
		Token:  domain.TokenETH,
	})
	assertAppError(t, err, "PAY_006")
}

// ==================== GetByID ====================

func TestPaymentService_GetByID_Idempotent(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	p := pendingPayment("abc")
	d.repo.EXPECT().GetByID(gomock.Any(), "abc").Return(p, nil).Times(2)

	first, err := d.svc.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	second, err := d.svc.GetByID(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaymentService_GetByID_NotFound(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	p, err := d.svc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = d.svc.GetByID(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPaymentService_GetByID_RepoError(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().GetByID(gomock.Any(), "abc").Return(nil, errors.New("boom"))

	_, err := d.svc.GetByID(context.Background(), "abc")
	assertAppError(t, err, "SYS_002")
}

// ==================== UpdateStatus ====================

func TestPaymentService_UpdateStatus_PaidPublishes(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	update := domain.StatusUpdate{Status: domain.PaymentStatusPaid, SenderAddress: "0xsender", TxHash: "0xabc"}
	paid := pendingPayment("abc")
	paid.Status = domain.PaymentStatusPaid
	paid.SenderAddress = strPtr("0xsender")
	paid.TxHash = strPtr("0xabc")

	gomock.InOrder(
		d.repo.EXPECT().UpdateStatus(ctx, "abc", update, d.svc.now().UTC()).Return(paid, nil),
		d.notifier.EXPECT().Publish(ctx, paid).Return(nil),
	)

	got, err := d.svc.UpdateStatus(ctx, "abc", update)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", *got.TxHash)
}

func TestPaymentService_UpdateStatus_PublishFailureStillReturnsRow(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	expired := pendingPayment("abc")
	expired.Status = domain.PaymentStatusExpired

	d.repo.EXPECT().UpdateStatus(gomock.Any(), "abc", gomock.Any(), gomock.Any()).Return(expired, nil)
	d.notifier.EXPECT().Publish(gomock.Any(), expired).Return(errors.New("redis down"))

	got, err := d.svc.UpdateStatus(context.Background(), "abc", domain.StatusUpdate{Status: domain.PaymentStatusExpired})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusExpired, got.Status)
}

func TestPaymentService_UpdateStatus_SecondPaidRejected(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	paid := pendingPayment("abc")
	paid.Status = domain.PaymentStatusPaid
	paid.TxHash = strPtr("0xfirst")

	d.repo.EXPECT().UpdateStatus(gomock.Any(), "abc", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().GetByID(gomock.Any(), "abc").Return(paid, nil)

	_, err := d.svc.UpdateStatus(context.Background(), "abc", domain.StatusUpdate{
		Status: domain.PaymentStatusPaid, SenderAddress: "0xother", TxHash: "0xsecond",
	})
	assertAppError(t, err, "PAY_003")
}

func TestPaymentService_UpdateStatus_ExpiredCannotBePaid(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	expired := pendingPayment("abc")
	expired.Status = domain.PaymentStatusExpired

	d.repo.EXPECT().UpdateStatus(gomock.Any(), "abc", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().GetByID(gomock.Any(), "abc").Return(expired, nil)

	_, err := d.svc.UpdateStatus(context.Background(), "abc", domain.StatusUpdate{
		Status: domain.PaymentStatusPaid, SenderAddress: "0xs", TxHash: "0xt",
	})
	assertAppError(t, err, "PAY_002")
}

func TestPaymentService_UpdateStatus_NotFound(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().UpdateStatus(gomock.Any(), "missing", gomock.Any(), gomock.Any()).Return(nil, nil)
	d.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

	got, err := d.svc.UpdateStatus(context.Background(), "missing", domain.StatusUpdate{Status: domain.PaymentStatusExpired})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPaymentService_UpdateStatus_Validation(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	tests := []struct {
		name   string
		update domain.StatusUpdate
		code   string
	}{
		{"back to pending", domain.StatusUpdate{Status: domain.PaymentStatusPending}, "PAY_002"},
		{"paid without hash", domain.StatusUpdate{Status: domain.PaymentStatusPaid, SenderAddress: "0xs"}, "VAL_004"},
		{"paid without sender", domain.StatusUpdate{Status: domain.PaymentStatusPaid, TxHash: "0xt"}, "VAL_004"},
		{"expired with hash", domain.StatusUpdate{Status: domain.PaymentStatusExpired, TxHash: "0xt"}, "VAL_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.svc.UpdateStatus(context.Background(), "abc", tt.update)
			assertAppError(t, err, tt.code)
		})
	}
}

// ==================== Subscribe / List ====================

func TestPaymentService_Subscribe(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	sub := mocks.NewMockSubscription(d.ctrl)
	d.notifier.EXPECT().Subscribe(gomock.Any(), "abc", gomock.Any()).Return(sub, nil)

	got, err := d.svc.Subscribe(context.Background(), "abc", func(domain.Payment) {})
	require.NoError(t, err)
	assert.Equal(t, sub, got)

	d.notifier.EXPECT().Subscribe(gomock.Any(), "def", gomock.Any()).Return(nil, errors.New("closed"))
	_, err = d.svc.Subscribe(context.Background(), "def", func(domain.Payment) {})
	assertAppError(t, err, "SYS_003")
}

func TestPaymentService_List_ClampsLimit(t *testing.T) {
	d := setupPaymentService(t)
	defer d.ctrl.Finish()

	d.repo.EXPECT().List(gomock.Any(), defaultListLimit).Return([]domain.Payment{}, nil)
	d.repo.EXPECT().List(gomock.Any(), maxListLimit).Return([]domain.Payment{}, nil)

	_, err := d.svc.List(context.Background(), 0)
	require.NoError(t, err)
	_, err = d.svc.List(context.Background(), 10000)
	require.NoError(t, err)
}

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}
