package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"shadowpay/internal/adapter/storage/memory"
	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/core/ports/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const device = "device-1"

func newTestMockWallets(t *testing.T, remote ports.MockWalletService, roll float64) *MockWalletService {
	t.Helper()
	svc := NewMockWalletService(memory.NewKVStore(), remote, nil, MockOptions{FailureRate: 0.1}, newTestLogger())
	svc.rng = func() float64 { return roll }
	t.Cleanup(svc.Shutdown)
	return svc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMockWallet_ConnectCreatesOnce(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()

	w, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.True(t, w.IsConnected)
	assert.Len(t, w.Address, 42)
	assert.Len(t, w.PrivateKey, 66)
	assert.True(t, w.Balance(domain.TokenETH).Equal(dec("6")))

	again, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.Equal(t, w.Address, again.Address)
	assert.Equal(t, w.PrivateKey, again.PrivateKey)
}

func TestMockWallet_SimpleProfileBalances(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)

	w, err := svc.Connect(context.Background(), domain.MockProfileSimple, device)
	require.NoError(t, err)
	assert.True(t, w.Balance(domain.TokenETH).Equal(dec("3.5")))
	assert.True(t, w.Balance(domain.TokenUSDC).Equal(dec("600")))
}

func TestMockWallet_SendRequiresConnection(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()

	_, err := svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xto", Amount: dec("1")})
	assertAppError(t, err, "WAL_001")

	_, err = svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	require.NoError(t, svc.Disconnect(ctx, domain.MockProfileGeneric, device))

	_, err = svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xto", Amount: dec("1")})
	assertAppError(t, err, "WAL_001")
}

func TestMockWallet_SendSuccess(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()
	w, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)

	tx, err := svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{
		Recipient: "0xto", Amount: dec("2.5"), Comment: "coffee",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MockTxStatusPending, tx.Status)
	assert.Equal(t, w.Address, tx.From)
	assert.Equal(t, domain.TokenETH, tx.Token)
	assert.Len(t, tx.Hash, 66)

	after, err := svc.Wallet(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.True(t, after.Balance(domain.TokenETH).Equal(dec("3.5")))

	require.Eventually(t, func() bool {
		history, err := svc.Transactions(ctx, domain.MockProfileGeneric, device)
		return err == nil && len(history) == 1 && history[0].Status == domain.MockTxStatusConfirmed
	}, waitFor, tick)
}

func TestMockWallet_HistoryNewestFirst(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()
	_, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)

	first, err := svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xa", Amount: dec("1")})
	require.NoError(t, err)
	second, err := svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xb", Amount: dec("1")})
	require.NoError(t, err)

	history, err := svc.Transactions(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.Hash, history[0].Hash)
	assert.Equal(t, first.Hash, history[1].Hash)

	require.NoError(t, svc.ClearHistory(ctx, domain.MockProfileGeneric, device))
	history, err = svc.Transactions(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMockWallet_InsufficientBalanceLeavesStateUntouched(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()
	_, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)

	_, err = svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xto", Amount: dec("100")})
	assertAppError(t, err, "WAL_002")

	w, err := svc.Wallet(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.True(t, w.Balance(domain.TokenETH).Equal(dec("6")))
	history, err := svc.Transactions(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.Empty(t, history)
}

// failingHistoryStore fails reads or writes of transaction history keys.
type failingHistoryStore struct {
	ports.KVStore
	failGet bool
	failSet bool
}

func (f *failingHistoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet && strings.HasSuffix(key, ":transactions") {
		return nil, errors.New("history unavailable")
	}
	return f.KVStore.Get(ctx, key)
}

func (f *failingHistoryStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failSet && strings.HasSuffix(key, ":transactions") {
		return errors.New("history unavailable")
	}
	return f.KVStore.Set(ctx, key, value)
}

func TestMockWallet_HistoryFailureLeavesBalance(t *testing.T) {
	tests := []struct {
		name    string
		failGet bool
		failSet bool
	}{
		{"ReadFails", true, false},
		{"WriteFails", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &failingHistoryStore{KVStore: memory.NewKVStore()}
			svc := NewMockWalletService(store, nil, nil, MockOptions{FailureRate: 0.1}, newTestLogger())
			svc.rng = func() float64 { return 0.5 }
			t.Cleanup(svc.Shutdown)
			ctx := context.Background()

			_, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
			require.NoError(t, err)

			store.failGet, store.failSet = tt.failGet, tt.failSet
			_, err = svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xto", Amount: dec("1")})
			assertAppError(t, err, "SYS_001")

			store.failGet, store.failSet = false, false
			w, err := svc.Wallet(ctx, domain.MockProfileGeneric, device)
			require.NoError(t, err)
			assert.True(t, w.Balance(domain.TokenETH).Equal(dec("6")))
			history, err := svc.Transactions(ctx, domain.MockProfileGeneric, device)
			require.NoError(t, err)
			assert.Empty(t, history)
		})
	}
}

func TestMockWallet_SimulatedFailure(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.05)
	ctx := context.Background()
	w, err := svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	before := w.Balance(domain.TokenETH)

	_, err = svc.SendPayment(ctx, domain.MockProfileGeneric, device, MockSendRequest{Recipient: "0xto", Amount: dec("1")})
	assertAppError(t, err, "WAL_006")
	assert.Equal(t, "Transaction failed due to network congestion", errorMessage(err))

	after, err := svc.Wallet(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.True(t, after.Balance(domain.TokenETH).Equal(before))
	history, err := svc.Transactions(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestMockWallet_SendUSDCOnSimpleProfile(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()
	_, err := svc.Connect(ctx, domain.MockProfileSimple, device)
	require.NoError(t, err)

	_, err = svc.SendPayment(ctx, domain.MockProfileSimple, device, MockSendRequest{
		Recipient: "0xto", Amount: dec("700"), Token: domain.TokenUSDC,
	})
	assertAppError(t, err, "WAL_002")
	assert.Equal(t, "Insufficient USDC balance", errorMessage(err))

	tx, err := svc.SendPayment(ctx, domain.MockProfileSimple, device, MockSendRequest{
		Recipient: "0xto", Amount: dec("100"), Token: "usdc",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TokenUSDC, tx.Token)
}

func TestMockWallet_AddBalance(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()

	_, err := svc.AddBalance(ctx, domain.MockProfileGeneric, device, domain.TokenETH, dec("1"))
	assertAppError(t, err, "PAY_001")

	_, err = svc.Connect(ctx, domain.MockProfileGeneric, device)
	require.NoError(t, err)

	w, err := svc.AddBalance(ctx, domain.MockProfileGeneric, device, "", dec("4"))
	require.NoError(t, err)
	assert.True(t, w.Balance(domain.TokenETH).Equal(dec("10")))

	_, err = svc.AddBalance(ctx, domain.MockProfileGeneric, device, domain.TokenETH, dec("-1"))
	assertAppError(t, err, "VAL_001")
}

func TestMockWallet_DevicesAreIsolated(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	ctx := context.Background()

	a, err := svc.Connect(ctx, domain.MockProfileGeneric, "a")
	require.NoError(t, err)
	b, err := svc.Connect(ctx, domain.MockProfileGeneric, "b")
	require.NoError(t, err)
	assert.NotEqual(t, a.Address, b.Address)

	none, err := svc.Wallet(ctx, domain.MockProfileGeneric, "c")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMockWallet_ImportOnlyOnServerProfile(t *testing.T) {
	svc := newTestMockWallets(t, nil, 0.5)
	_, err := svc.Import(context.Background(), domain.MockProfileGeneric, device, "0xkey")
	assertAppError(t, err, "WAL_007")

	_, err = svc.Connect(context.Background(), domain.MockProfileServer, device)
	assertAppError(t, err, "WAL_007")

	_, err = svc.Connect(context.Background(), domain.MockProfile("bogus"), device)
	assertAppError(t, err, "VAL_004")
}

func TestMockWallet_ServerProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockMockWalletService(ctrl)
	svc := newTestMockWallets(t, remote, 0.5)
	ctx := context.Background()

	balances := []domain.TokenBalance{
		{Token: ethToken, Amount: dec("2000000000000000000")},
		{Token: usdcToken, Amount: dec("25000000")},
	}

	remote.EXPECT().CreateWallet(gomock.Any()).Return(&ports.RemoteWallet{Address: "0xremote", PrivateKey: "0xsecret"}, nil).Times(1)
	remote.EXPECT().Balances(gomock.Any(), "0xsecret").Return(balances, nil).AnyTimes()

	w, err := svc.Connect(ctx, domain.MockProfileServer, device)
	require.NoError(t, err)
	assert.Equal(t, "0xremote", w.Address)
	assert.True(t, w.Balance(domain.TokenETH).Equal(dec("2")))
	assert.True(t, w.Balance(domain.TokenUSDC).Equal(dec("25")))

	again, err := svc.Connect(ctx, domain.MockProfileServer, device)
	require.NoError(t, err)
	assert.Equal(t, "0xremote", again.Address)

	remote.EXPECT().Send(gomock.Any(), ports.RemoteSendRequest{
		PrivateKey:       "0xsecret",
		RecipientAddress: "0xto",
		Amount:           dec("1.25"),
		TokenAddress:     "0xa0b8",
	}).Return(&ports.RemoteTransfer{TxHash: "0xremotetx"}, nil)

	tx, err := svc.SendPayment(ctx, domain.MockProfileServer, device, MockSendRequest{
		Recipient: "0xto", Amount: dec("1.25"), Token: domain.TokenUSDC,
	})
	require.NoError(t, err)
	assert.Equal(t, "0xremotetx", tx.Hash)

	require.NoError(t, svc.Disconnect(ctx, domain.MockProfileServer, device))
	gone, err := svc.Wallet(ctx, domain.MockProfileServer, device)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMockWallet_ServerImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mocks.NewMockMockWalletService(ctrl)
	svc := newTestMockWallets(t, remote, 0.5)
	ctx := context.Background()

	remote.EXPECT().WalletInfo(gomock.Any(), "0xbad").Return(nil, errors.New("invalid key"))
	_, err := svc.Import(ctx, domain.MockProfileServer, device, "0xbad")
	assertAppError(t, err, "WAL_004")

	remote.EXPECT().WalletInfo(gomock.Any(), "0xgood").Return(&ports.RemoteWallet{Address: "0ximported"}, nil)
	remote.EXPECT().Balances(gomock.Any(), "0xgood").Return(nil, nil).AnyTimes()

	w, err := svc.Import(ctx, domain.MockProfileServer, device, "0xgood")
	require.NoError(t, err)
	assert.Equal(t, "0ximported", w.Address)
	assert.Equal(t, "0xgood", w.PrivateKey)
}
