package handler

import (
	"errors"
	"io"

	"shadowpay/internal/adapter/camera"
	"shadowpay/internal/adapter/http/dto"
	"shadowpay/internal/service"
	"shadowpay/pkg/apperror"
	"shadowpay/pkg/response"

	"github.com/gin-gonic/gin"
)

// FrameSink accepts encoded camera frames pushed by the client.
type FrameSink interface {
	PushFrame(sessionID string, data []byte) error
}

// ScanHandler drives QR scan sessions.
type ScanHandler struct {
	sessions *service.ScanSessions
	frames   FrameSink
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(sessions *service.ScanSessions, frames FrameSink) *ScanHandler {
	return &ScanHandler{sessions: sessions, frames: frames}
}

// Open handles POST /api/v1/scan/sessions.
func (h *ScanHandler) Open(c *gin.Context) {
	response.Created(c, h.sessions.Open().View())
}

// View handles GET /api/v1/scan/sessions/:session_id.
func (h *ScanHandler) View(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.View())
}

// Start handles POST /api/v1/scan/sessions/:session_id/start.
func (h *ScanHandler) Start(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	respondView(c, func() (any, error) {
		return s.Start(c.Request.Context())
	})
}

// Frame handles POST /api/v1/scan/sessions/:session_id/frames with a PNG
// or JPEG body.
func (h *ScanHandler) Frame(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("frame too large or unreadable"))
		return
	}
	if len(data) == 0 {
		response.Error(c, apperror.Validation("frame is empty"))
		return
	}

	if err := h.frames.PushFrame(s.ID(), data); err != nil {
		if errors.Is(err, camera.ErrNotScanning) {
			response.Error(c, apperror.ErrNotScanning())
			return
		}
		response.Error(c, apperror.ErrScanProcessing(err))
		return
	}
	response.Accepted(c)
}

// CameraError handles POST /api/v1/scan/sessions/:session_id/camera-error.
func (h *ScanHandler) CameraError(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.CameraErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	respondView(c, func() (any, error) {
		return s.CameraFailed(req.Reason)
	})
}

// Detected handles POST /api/v1/scan/sessions/:session_id/detected for
// codes decoded on the client.
func (h *ScanHandler) Detected(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req dto.ScanTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	respondView(c, func() (any, error) {
		return s.Detected(req.Text)
	})
}

// Stop handles POST /api/v1/scan/sessions/:session_id/stop.
func (h *ScanHandler) Stop(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.Stop())
}

// Reset handles POST /api/v1/scan/sessions/:session_id/reset.
func (h *ScanHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	response.OK(c, s.Reset())
}

// Proceed handles POST /api/v1/scan/sessions/:session_id/proceed.
func (h *ScanHandler) Proceed(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	path, err := s.Proceed()
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ProceedResponse{RedirectPath: path})
}

// Close handles DELETE /api/v1/scan/sessions/:session_id.
func (h *ScanHandler) Close(c *gin.Context) {
	if err := h.sessions.Close(c.Param("session_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Classify handles POST /api/v1/scan/classify.
func (h *ScanHandler) Classify(c *gin.Context) {
	var req dto.ScanTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	response.OK(c, service.Classify(req.Text))
}

func (h *ScanHandler) session(c *gin.Context) (*service.ScanSession, bool) {
	s, err := h.sessions.Get(c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return s, true
}
