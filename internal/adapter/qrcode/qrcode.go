package qrcode

import (
	"errors"
	"fmt"
	"image"

	"shadowpay/internal/core/ports"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of rendered pay-link codes.
const DefaultSize = 256

// Codec encodes pay links as PNG QR codes and decodes camera frames.
type Codec struct {
	level goqrcode.RecoveryLevel
}

// NewCodec returns a codec using medium error correction.
func NewCodec() *Codec {
	return &Codec{level: goqrcode.Medium}
}

// EncodePNG implements ports.QREncoder.
func (c *Codec) EncodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr content is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := goqrcode.Encode(content, c.level, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// Decode implements ports.QRDecoder. Frames without a readable code return
// ports.ErrNoCode.
func (c *Codec) Decode(img image.Image) (string, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize frame: %w", err)
	}

	result, err := zxingqr.NewQRCodeReader().Decode(bmp, map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	})
	if err != nil {
		// Not found, checksum and format failures all mean the frame is unusable.
		var readErr gozxing.ReaderException
		if errors.As(err, &readErr) {
			return "", ports.ErrNoCode
		}
		return "", fmt.Errorf("decode qr: %w", err)
	}
	return result.GetText(), nil
}

var (
	_ ports.QREncoder = (*Codec)(nil)
	_ ports.QRDecoder = (*Codec)(nil)
)
