package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG frames
	_ "image/png"  // register PNG frames
	"sync"

	"shadowpay/internal/core/ports"
)

// ErrNotScanning is returned when a frame arrives for a session with no open camera.
var ErrNotScanning = errors.New("no camera open for session")

const frameBuffer = 2

// PushProvider is a camera whose frames are pushed by the client over HTTP.
// One camera is open per scan session at a time.
type PushProvider struct {
	mu      sync.Mutex
	cameras map[string]*pushCamera
}

// NewPushProvider creates an empty provider.
func NewPushProvider() *PushProvider {
	return &PushProvider{cameras: make(map[string]*pushCamera)}
}

// Open implements ports.CameraProvider. Only the rear camera is available.
func (p *PushProvider) Open(_ context.Context, sessionID string, constraints ports.CameraConstraints) (ports.Camera, error) {
	if constraints.FacingMode != "" && constraints.FacingMode != "environment" {
		return nil, fmt.Errorf("facing mode %q not available", constraints.FacingMode)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.cameras[sessionID]; ok {
		old.close()
	}
	cam := &pushCamera{
		provider:  p,
		sessionID: sessionID,
		frames:    make(chan image.Image, frameBuffer),
	}
	p.cameras[sessionID] = cam
	return cam, nil
}

// PushFrame decodes an encoded PNG or JPEG frame and delivers it to the
// session's camera, dropping the oldest buffered frame when full.
func (p *PushProvider) PushFrame(sessionID string, data []byte) error {
	if !p.IsOpen(sessionID) {
		return ErrNotScanning
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode frame: %w", err)
	}
	return p.Push(sessionID, img)
}

// Push delivers a decoded frame.
func (p *PushProvider) Push(sessionID string, img image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cam, ok := p.cameras[sessionID]
	if !ok {
		return ErrNotScanning
	}
	for {
		select {
		case cam.frames <- img:
			return nil
		default:
		}
		select {
		case <-cam.frames:
		default:
		}
	}
}

// IsOpen reports whether a camera is open for the session.
func (p *PushProvider) IsOpen(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.cameras[sessionID]
	return ok
}

type pushCamera struct {
	provider  *PushProvider
	sessionID string
	frames    chan image.Image
	once      sync.Once
}

func (c *pushCamera) Frames() <-chan image.Image { return c.frames }

// Stop releases the camera. The frame channel is left open so a stopped
// scan loop is not mistaken for a lost stream.
func (c *pushCamera) Stop() {
	c.provider.mu.Lock()
	defer c.provider.mu.Unlock()
	if cur, ok := c.provider.cameras[c.sessionID]; ok && cur == c {
		delete(c.provider.cameras, c.sessionID)
	}
}

// close ends the stream of a camera replaced by a newer Open. Caller holds
// the provider lock.
func (c *pushCamera) close() {
	c.once.Do(func() { close(c.frames) })
}
