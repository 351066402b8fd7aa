package handler

import (
	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/core/domain"
	"shadowpay/internal/service"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// MerchantHandler drives merchant create sessions.
type MerchantHandler struct {
	sessions *service.MerchantSessions
}

// NewMerchantHandler creates a new MerchantHandler.
func NewMerchantHandler(sessions *service.MerchantSessions) *MerchantHandler {
	return &MerchantHandler{sessions: sessions}
}

// Open handles POST /api/v1/create/sessions.
func (h *MerchantHandler) Open(c *gin.Context) {
	s := h.sessions.Open()
	response.Created(c, s.View())
}

// View handles GET /api/v1/create/sessions/:session_id.
func (h *MerchantHandler) View(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.View())
}

// Submit handles POST /api/v1/create/sessions/:session_id/submit.
func (h *MerchantHandler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.TrimStrings(&req)

	// An unparsable amount goes through as zero so the session records the error.
	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		amount = decimal.Zero
	}

	respondView(c, func() (any, error) {
		return s.Submit(c.Request.Context(), service.PaymentForm{
			Amount:   amount,
			Token:    domain.Token(req.Token),
			Comment:  req.Comment,
			Receiver: req.Receiver,
			ClientIP: c.ClientIP(),
		})
	})
}

// Regenerate handles POST /api/v1/create/sessions/:session_id/regenerate.
func (h *MerchantHandler) Regenerate(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Regenerate(c.Request.Context())
	})
}

// Reset handles POST /api/v1/create/sessions/:session_id/reset.
func (h *MerchantHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Reset()
	})
}

// EnableKiosk handles POST /api/v1/create/sessions/:session_id/kiosk.
func (h *MerchantHandler) EnableKiosk(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.KioskPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	respondView(c, func() (any, error) {
		return s.EnableKiosk(c.Request.Context(), req.Password, c.ClientIP())
	})
}

// UnlockKiosk handles POST /api/v1/create/sessions/:session_id/kiosk/unlock.
func (h *MerchantHandler) UnlockKiosk(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.KioskPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	respondView(c, func() (any, error) {
		return s.UnlockKiosk(c.Request.Context(), req.Password, c.ClientIP())
	})
}

// Close handles DELETE /api/v1/create/sessions/:session_id.
func (h *MerchantHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("session_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *MerchantHandler) session(c *gin.Context) (*service.MerchantSession, bool) {
	s, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return s, true
}

// respondView writes the view returned by a session operation, or its error.
func respondView(c *gin.Context, op func() (any, error)) {
	view, err := op()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}
