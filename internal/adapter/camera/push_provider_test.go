package camera

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"shadowpay/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rear = ports.CameraConstraints{FacingMode: "environment"}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPushProvider_PushFrame(t *testing.T) {
	p := NewPushProvider()
	cam, err := p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)
	assert.True(t, p.IsOpen("s1"))

	require.NoError(t, p.PushFrame("s1", encodePNG(t, image.NewGray(image.Rect(0, 0, 8, 6)))))

	img := <-cam.Frames()
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())
}

func TestPushProvider_DropsOldestFrame(t *testing.T) {
	p := NewPushProvider()
	cam, err := p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, p.Push("s1", image.NewGray(image.Rect(0, 0, i, i))))
	}

	assert.Equal(t, 2, (<-cam.Frames()).Bounds().Dx())
	assert.Equal(t, 3, (<-cam.Frames()).Bounds().Dx())
}

func TestPushProvider_NotScanning(t *testing.T) {
	p := NewPushProvider()
	assert.ErrorIs(t, p.Push("missing", image.NewGray(image.Rect(0, 0, 1, 1))), ErrNotScanning)

	cam, err := p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)
	cam.Stop()
	assert.False(t, p.IsOpen("s1"))
	assert.ErrorIs(t, p.Push("s1", image.NewGray(image.Rect(0, 0, 1, 1))), ErrNotScanning)
}

func TestPushProvider_BadFrame(t *testing.T) {
	p := NewPushProvider()
	_, err := p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)

	assert.Error(t, p.PushFrame("s1", []byte("not an image")))
}

func TestPushProvider_ReopenEndsOldStream(t *testing.T) {
	p := NewPushProvider()
	old, err := p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)
	_, err = p.Open(context.Background(), "s1", rear)
	require.NoError(t, err)

	_, ok := <-old.Frames()
	assert.False(t, ok)

	// Stopping the replaced camera leaves the new one registered.
	old.Stop()
	assert.True(t, p.IsOpen("s1"))
}

func TestPushProvider_FrontCameraUnavailable(t *testing.T) {
	p := NewPushProvider()
	_, err := p.Open(context.Background(), "s1", ports.CameraConstraints{FacingMode: "user"})
	assert.Error(t, err)
}

func TestPushProvider_PushFrameNotScanning(t *testing.T) {
	p := NewPushProvider()
	assert.ErrorIs(t, p.PushFrame("missing", []byte("not an image")), ErrNotScanning)
}
