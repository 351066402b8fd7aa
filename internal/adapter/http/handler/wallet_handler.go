package handler

import (
	"errors"
	"io"

	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/adapter/http/middleware"
	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/internal/service"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet session endpoints.
type WalletHandler struct {
	sessions *service.WalletSessions
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(sessions *service.WalletSessions) *WalletHandler {
	return &WalletHandler{sessions: sessions}
}

// Login handles POST /api/v1/wallet/sessions. The body is optional.
func (h *WalletHandler) Login(c *gin.Context) {
	var req dto.WalletLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	login, err := h.sessions.Login(detached(c), ports.WalletCredentials{PrivateKey: req.PrivateKey}, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, login)
}

// Logout handles DELETE /api/v1/wallet/sessions.
func (h *WalletHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context(), middleware.WalletSessionID(c), c.ClientIP()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Me handles GET /api/v1/wallet/me.
func (h *WalletHandler) Me(c *gin.Context) {
	overview, err := h.sessions.Overview(c.Request.Context(), middleware.WalletSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, overview)
}

// PrivateKey handles GET /api/v1/wallet/private-key.
func (h *WalletHandler) PrivateKey(c *gin.Context) {
	key, err := h.sessions.PrivateKey(c.Request.Context(), middleware.WalletSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Private(c, dto.PrivateKeyResponse{PrivateKey: key})
}

// Sign handles POST /api/v1/wallet/sign.
func (h *WalletHandler) Sign(c *gin.Context) {
	var req dto.SignMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	signed, err := h.sessions.SignMessage(c.Request.Context(), middleware.WalletSessionID(c), req.Message)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, signed)
}

// Verify handles POST /api/v1/wallet/verify.
func (h *WalletHandler) Verify(c *gin.Context) {
	var req dto.VerifySignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	valid, err := h.sessions.VerifySignature(c.Request.Context(), middleware.WalletSessionID(c), domain.SignedMessage{
		Message:   req.Message,
		Signature: req.Signature,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.VerifySignatureResponse{Valid: valid})
}
