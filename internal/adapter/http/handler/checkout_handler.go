package handler

import (
	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/adapter/http/middleware"
	"shadowpay/internal/service"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler drives payer pay sessions.
type CheckoutHandler struct {
	sessions *service.CheckoutSessions
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(sessions *service.CheckoutSessions) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions}
}

// Open handles POST /api/v1/pay/:id/sessions.
func (h *CheckoutHandler) Open(c *gin.Context) {
	id := c.Param("id")
	if !dto.ValidID(id) {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return
	}
	s, err := h.sessions.Open(detached(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, s.View())
}

// View handles GET /api/v1/pay/:id/sessions/:session_id.
func (h *CheckoutHandler) View(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.View())
}

// Quote handles GET /api/v1/pay/:id/sessions/:session_id/quote.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Quote(c.Request.Context(), middleware.WalletSessionID(c))
	})
}

// Pay handles POST /api/v1/pay/:id/sessions/:session_id/pay. The transfer
// keeps running if the client goes away so a broadcast is always recorded.
func (h *CheckoutHandler) Pay(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Pay(detached(c), middleware.WalletSessionID(c))
	})
}

// Retry handles POST /api/v1/pay/:id/sessions/:session_id/retry.
func (h *CheckoutHandler) Retry(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Retry()
	})
}

// Close handles DELETE /api/v1/pay/:id/sessions/:session_id.
func (h *CheckoutHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("session_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// session resolves the session and checks it belongs to the payment in the path.
func (h *CheckoutHandler) session(c *gin.Context) (*service.CheckoutSession, bool) {
	s, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if v := s.View(); v.Payment == nil || v.Payment.ID != c.Param("id") {
		response.Error(c, apperror.ErrSessionNotFound("Checkout"))
		return nil, false
	}
	return s, true
}
