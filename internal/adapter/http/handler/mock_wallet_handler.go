package handler

import (
	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/adapter/http/middleware"
	"shadowpay/internal/core/domain"
	"shadowpay/internal/service"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

// MockWalletHandler exposes the mock wallet simulator. Records are keyed by
// the X-Device-ID header.
type MockWalletHandler struct {
	svc *service.MockWalletService
}

// NewMockWalletHandler creates a new MockWalletHandler.
func NewMockWalletHandler(svc *service.MockWalletService) *MockWalletHandler {
	return &MockWalletHandler{svc: svc}
}

type mockTarget struct {
	profile domain.MockProfile
	device  string
}

func (h *MockWalletHandler) target(c *gin.Context) (mockTarget, bool) {
	profile, ok := domain.ParseMockProfile(c.Param("profile"))
	if !ok {
		response.Error(c, apperror.Validation("unknown mock wallet profile: "+c.Param("profile")))
		return mockTarget{}, false
	}
	device := c.GetHeader(middleware.HeaderDeviceID)
	if !dto.ValidID(device) {
		response.Error(c, apperror.Validation("X-Device-ID header is required"))
		return mockTarget{}, false
	}
	return mockTarget{profile: profile, device: device}, true
}

// Connect handles POST /api/v1/mock-wallets/:profile/connect.
func (h *MockWalletHandler) Connect(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	w, err := h.svc.Connect(c.Request.Context(), t.profile, t.device)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MockWalletResponse{Wallet: w})
}

// Import handles POST /api/v1/mock-wallets/:profile/import.
func (h *MockWalletHandler) Import(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.MockImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	w, err := h.svc.Import(c.Request.Context(), t.profile, t.device, req.PrivateKey)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MockWalletResponse{Wallet: w})
}

// Disconnect handles POST /api/v1/mock-wallets/:profile/disconnect.
func (h *MockWalletHandler) Disconnect(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.svc.Disconnect(c.Request.Context(), t.profile, t.device); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Get handles GET /api/v1/mock-wallets/:profile.
func (h *MockWalletHandler) Get(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	w, err := h.svc.Wallet(c.Request.Context(), t.profile, t.device)
	if err != nil {
		response.Error(c, err)
		return
	}
	txs, err := h.svc.Transactions(c.Request.Context(), t.profile, t.device)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MockWalletResponse{Wallet: w, Transactions: txs})
}

// Refresh handles POST /api/v1/mock-wallets/:profile/refresh.
func (h *MockWalletHandler) Refresh(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	w, err := h.svc.RefreshBalances(c.Request.Context(), t.profile, t.device)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MockWalletResponse{Wallet: w})
}

// Transactions handles GET /api/v1/mock-wallets/:profile/transactions.
func (h *MockWalletHandler) Transactions(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	txs, err := h.svc.Transactions(c.Request.Context(), t.profile, t.device)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txs == nil {
		txs = []domain.MockTransaction{}
	}
	response.OK(c, txs)
}

// ClearHistory handles DELETE /api/v1/mock-wallets/:profile/transactions.
func (h *MockWalletHandler) ClearHistory(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	if err := h.svc.ClearHistory(c.Request.Context(), t.profile, t.device); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Send handles POST /api/v1/mock-wallets/:profile/send.
func (h *MockWalletHandler) Send(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.MockSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req)

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	var token domain.Token
	if req.Token != "" {
		token, _ = domain.ParseToken(req.Token)
	}

	tx, err := h.svc.SendPayment(c.Request.Context(), t.profile, t.device, service.MockSendRequest{
		Recipient: req.Recipient,
		Amount:    amount,
		Token:     token,
		Comment:   req.Comment,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// AddBalance handles POST /api/v1/mock-wallets/:profile/balance.
func (h *MockWalletHandler) AddBalance(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.MockAddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	token, _ := domain.ParseToken(req.Token)

	w, err := h.svc.AddBalance(c.Request.Context(), t.profile, t.device, token, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.MockWalletResponse{Wallet: w})
}
