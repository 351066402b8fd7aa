package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit  = 100
	defaultQRSize     = 256
	maxQRSize         = 1024
	sseHeartbeat      = 15 * time.Second
	sseUpdatesBacklog = 4
)

// PaymentHandler handles the payment record endpoints.
type PaymentHandler struct {
	payments  ports.PaymentService
	qr        ports.QREncoder
	baseURL   string
	heartbeat time.Duration
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments ports.PaymentService, qr ports.QREncoder, baseURL string) *PaymentHandler {
	return &PaymentHandler{
		payments:  payments,
		qr:        qr,
		baseURL:   baseURL,
		heartbeat: sseHeartbeat,
	}
}

// Create handles POST /api/v1/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
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

	p, err := h.payments.Create(c.Request.Context(), ports.CreatePaymentRequest{
		Amount:   amount,
		Token:    domain.Token(req.Token),
		Comment:  req.Comment,
		Receiver: req.Receiver,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, h.toResponse(p))
}

// List handles GET /api/v1/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	var q dto.ListPaymentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	payments, err := h.payments.List(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		items[i] = h.toResponse(&payments[i])
	}
	response.OK(c, dto.PaymentListResponse{Items: items, Count: len(items)})
}

// Get handles GET /api/v1/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	response.OK(c, h.toResponse(p))
}

// UpdateStatus handles PATCH /api/v1/payments/:id/status.
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if !dto.ValidID(id) {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	status, _ := domain.ParsePaymentStatus(req.Status)
	p, err := h.payments.UpdateStatus(c.Request.Context(), id, domain.StatusUpdate{
		Status:        status,
		SenderAddress: req.SenderAddress,
		TxHash:        req.TxHash,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	if p == nil {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return
	}

	response.OK(c, h.toResponse(p))
}

// Events handles GET /api/v1/payments/:id/events. It streams the current
// payment, then every update, and ends once the payment is terminal.
func (h *PaymentHandler) Events(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	updates := make(chan domain.Payment, sseUpdatesBacklog)

	var sub ports.Subscription
	if !p.IsTerminal() {
		var err error
		sub, err = h.payments.Subscribe(ctx, p.ID, func(u domain.Payment) {
			select {
			case updates <- u:
			case <-ctx.Done():
			}
		})
		if err != nil {
			response.Error(c, apperror.ErrNotifierError(err))
			return
		}
		defer func() { _ = sub.Unsubscribe() }()
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	h.sendEvent(c, p)
	if p.IsTerminal() {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case u := <-updates:
			h.sendEvent(c, &u)
			if u.IsTerminal() {
				return
			}
		case t := <-heartbeat.C:
			c.SSEvent("ping", t.Unix())
			c.Writer.Flush()
		}
	}
}

func (h *PaymentHandler) sendEvent(c *gin.Context, p *domain.Payment) {
	c.SSEvent("payment", h.toResponse(p))
	c.Writer.Flush()
}

// QR handles GET /api/v1/payments/:id/qr and renders the pay link as PNG.
func (h *PaymentHandler) QR(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 64 || n > maxQRSize {
			response.Error(c, apperror.Validation("size must be between 64 and 1024"))
			return
		}
		size = n
	}

	png, err := h.qr.EncodePNG(domain.PayLink(h.baseURL, p.ID), size)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	if c.Query("download") == "1" {
		c.Header("Content-Disposition", `attachment; filename="payment-`+p.ID+`.png"`)
	}
	c.Data(http.StatusOK, "image/png", png)
}

// load fetches the payment named by the :id param, writing a 404 when absent.
func (h *PaymentHandler) load(c *gin.Context) (*domain.Payment, bool) {
	id := c.Param("id")
	if !dto.ValidID(id) {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return nil, false
	}
	p, err := h.payments.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if p == nil {
		response.Error(c, apperror.ErrNotFound("Payment"))
		return nil, false
	}
	return p, true
}

func (h *PaymentHandler) toResponse(p *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{Payment: p, PayLink: domain.PayLink(h.baseURL, p.ID)}
}

// detached returns a context that survives the request for work whose
// lifetime belongs to a session rather than to one call.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
