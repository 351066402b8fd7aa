package ports

//go:generate mockgen -source=scanner.go -destination=mocks/scanner_mock.go -package=mocks

import (
	"context"
	"errors"
	"image"
)

// ErrNoCode is returned by a QRDecoder when a frame holds no readable code.
var ErrNoCode = errors.New("no QR code in frame")

// QREncoder renders text as a QR code image.
type QREncoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}

// QRDecoder extracts the text of a QR code from an image.
type QRDecoder interface {
	Decode(img image.Image) (string, error)
}

// CameraConstraints selects the camera to open.
type CameraConstraints struct {
	FacingMode string // "environment" for the rear camera
}

// Camera delivers frames until stopped.
type Camera interface {
	Frames() <-chan image.Image
	Stop()
}

// CameraProvider acquires cameras for scan sessions.
type CameraProvider interface {
	Open(ctx context.Context, sessionID string, constraints CameraConstraints) (Camera, error)
}
