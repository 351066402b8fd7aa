package service

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"shadowpay/internal/core/domain"
	"shadowpay/internal/core/ports"
	"shadowpay/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const rearCamera = "environment"

// ScanOptions tunes the QR scan loop.
type ScanOptions struct {
	FPS           int
	RegionSize    int
	RedirectDelay time.Duration
	IdleTTL       time.Duration
}

// Classify is the pure classification of decoded QR text.
func Classify(text string) domain.ScanResult {
	return domain.ClassifyScan(text)
}

// ScanSessions is the registry of QR scan flows.
type ScanSessions struct {
	cameras ports.CameraProvider
	decoder ports.QRDecoder
	opts    ScanOptions
	log     zerolog.Logger
	reg     *registry[*ScanSession]
}

// NewScanSessions creates an empty scan session registry.
func NewScanSessions(cameras ports.CameraProvider, decoder ports.QRDecoder, opts ScanOptions, log zerolog.Logger) *ScanSessions {
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.RegionSize <= 0 {
		opts.RegionSize = 250
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = 2 * time.Second
	}
	return &ScanSessions{
		cameras: cameras,
		decoder: decoder,
		opts:    opts,
		log:     log,
		reg:     newRegistry[*ScanSession](opts.IdleTTL),
	}
}

// Open creates an idle scan session.
func (m *ScanSessions) Open() *ScanSession {
	id := uuid.NewString()
	s := &ScanSession{
		id:      id,
		cameras: m.cameras,
		decoder: m.decoder,
		opts:    m.opts,
		log:     m.log.With().Str("session_id", id).Logger(),
		now:     time.Now,
		state:   domain.ScanStateIdle,
	}
	m.reg.put(id, s)
	return s
}

// Get returns a live session.
func (m *ScanSessions) Get(id string) (*ScanSession, error) {
	s, ok := m.reg.get(id)
	if !ok {
		return nil, apperror.ErrSessionNotFound("Scan")
	}
	return s, nil
}

// Close stops the camera and forgets the session.
func (m *ScanSessions) Close(id string) error {
	s, ok := m.reg.remove(id)
	if !ok {
		return apperror.ErrSessionNotFound("Scan")
	}
	s.Close()
	return nil
}

// Run expires idle sessions until ctx is done.
func (m *ScanSessions) Run(ctx context.Context, interval time.Duration) {
	m.reg.janitor(ctx, interval, func(n int) {
		m.log.Info().Int("count", n).Msg("expired idle scan sessions")
	})
}

// Shutdown closes every session.
func (m *ScanSessions) Shutdown() {
	m.reg.closeAll()
}

// ScanSession drives one scanner: idle → scanning → classified | error.
type ScanSession struct {
	id      string
	cameras ports.CameraProvider
	decoder ports.QRDecoder
	opts    ScanOptions
	log     zerolog.Logger
	now     func() time.Time

	mu         sync.Mutex
	state      domain.ScanState
	result     *domain.ScanResult
	errMsg     string
	camera     ports.Camera
	gen        uint64
	redirectAt time.Time
	closed     bool
}

// ID returns the session id.
func (s *ScanSession) ID() string { return s.id }

// Start acquires the rear camera and begins decoding frames.
func (s *ScanSession) Start(ctx context.Context) (domain.ScanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.viewLocked(), apperror.ErrSessionNotFound("Scan")
	}
	if s.state == domain.ScanStateScanning {
		return s.viewLocked(), nil
	}
	if s.state == domain.ScanStateClassified {
		return s.viewLocked(), apperror.ErrInvalidState("Reset the scanner before scanning again")
	}

	s.errMsg = ""
	camera, err := s.cameras.Open(ctx, s.id, ports.CameraConstraints{FacingMode: rearCamera})
	if err != nil {
		appErr := apperror.ErrCameraUnavailable(err)
		s.state = domain.ScanStateIdle
		s.errMsg = appErr.Message
		s.log.Warn().Err(err).Msg("camera unavailable")
		return s.viewLocked(), appErr
	}

	s.gen++
	s.camera = camera
	s.state = domain.ScanStateScanning
	go s.loop(s.gen, camera)
	return s.viewLocked(), nil
}

// CameraFailed records a camera failure reported by the client.
func (s *ScanSession) CameraFailed(reason string) (domain.ScanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopCameraLocked()
	appErr := apperror.ErrCameraUnavailable(errors.New(reason))
	s.state = domain.ScanStateIdle
	s.errMsg = appErr.Message
	return s.viewLocked(), appErr
}

// Detected feeds text decoded on the client as if the loop had decoded it.
func (s *ScanSession) Detected(text string) (domain.ScanView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.ScanStateScanning {
		return s.viewLocked(), apperror.ErrNotScanning()
	}
	s.acceptLocked(text)
	return s.viewLocked(), nil
}

// Stop halts scanning without a result.
func (s *ScanSession) Stop() domain.ScanView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.ScanStateScanning {
		s.stopCameraLocked()
		s.state = domain.ScanStateIdle
	}
	return s.viewLocked()
}

// Reset clears the result and any error. A new Start is required.
func (s *ScanSession) Reset() domain.ScanView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCameraLocked()
	s.state = domain.ScanStateIdle
	s.result = nil
	s.errMsg = ""
	s.redirectAt = time.Time{}
	return s.viewLocked()
}

// Proceed returns the pay path of a classified payment link.
func (s *ScanSession) Proceed() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != domain.ScanStateClassified || s.result == nil || s.result.Kind != domain.ScanKindPayment {
		return "", apperror.ErrInvalidState("No payment link has been scanned")
	}
	return s.result.RedirectPath, nil
}

// View returns a snapshot of the session.
func (s *ScanSession) View() domain.ScanView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Close stops the camera. Safe to call twice.
func (s *ScanSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopCameraLocked()
}

func (s *ScanSession) stopCameraLocked() {
	s.gen++
	if s.camera != nil {
		s.camera.Stop()
		s.camera = nil
	}
}

// acceptLocked stops the scanner and classifies text.
func (s *ScanSession) acceptLocked(text string) {
	s.stopCameraLocked()
	result := domain.ClassifyScan(text)
	s.result = &result
	s.state = domain.ScanStateClassified
	if result.Kind == domain.ScanKindPayment {
		s.redirectAt = s.now().Add(s.opts.RedirectDelay)
	}
	s.log.Info().Str("kind", string(result.Kind)).Str("payment_id", result.PaymentID).Msg("QR code scanned")
}

// loop decodes the most recent frame at the configured rate. Frames that
// hold no code are noise.
func (s *ScanSession) loop(gen uint64, camera ports.Camera) {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.FPS))
	defer ticker.Stop()

	frames := camera.Frames()
	var latest image.Image

	for {
		select {
		case img, ok := <-frames:
			if !ok {
				s.streamEnded(gen)
				return
			}
			latest = img
			continue
		case <-ticker.C:
		}

		if !s.current(gen) {
			return
		}
		if latest == nil {
			continue
		}
		frame := latest
		latest = nil

		text, err := s.decoder.Decode(cropCenter(frame, s.opts.RegionSize))
		if err != nil {
			if !errors.Is(err, ports.ErrNoCode) {
				s.log.Debug().Err(err).Msg("frame decode failed")
			}
			continue
		}

		s.mu.Lock()
		if s.gen == gen && s.state == domain.ScanStateScanning {
			s.acceptLocked(text)
		}
		s.mu.Unlock()
		return
	}
}

func (s *ScanSession) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen && s.state == domain.ScanStateScanning
}

// streamEnded handles a frame source that closed while still scanning.
func (s *ScanSession) streamEnded(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.state != domain.ScanStateScanning {
		return
	}
	s.camera = nil
	s.gen++
	s.state = domain.ScanStateError
	s.errMsg = apperror.ErrScanProcessing(nil).Message
	s.log.Warn().Msg("camera stream ended while scanning")
}

func (s *ScanSession) viewLocked() domain.ScanView {
	v := domain.ScanView{
		SessionID: s.id,
		State:     s.state,
		Error:     s.errMsg,
	}
	if s.result != nil {
		r := *s.result
		v.Result = &r
		v.Redirect = r.Kind == domain.ScanKindPayment && !s.now().Before(s.redirectAt)
	}
	return v
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropCenter returns the centred size×size region of img, or img itself
// when it is smaller or cannot be cropped.
func cropCenter(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || b.Dx() <= size || b.Dy() <= size {
		return img
	}
	si, ok := img.(subImager)
	if !ok {
		return img
	}
	x0 := b.Min.X + (b.Dx()-size)/2
	y0 := b.Min.Y + (b.Dy()-size)/2
	return si.SubImage(image.Rect(x0, y0, x0+size, y0+size))
}
